package schema

import "strings"

// TableObject is the capability set a table exposes to the object model
// and the diff engine. Dialect variants wrap a base Table and override a
// subset of the rendering methods.
type TableObject interface {
	Named
	Name() QualifiedID
	Base() *Table
	CreateStmt() (string, error)
	DropStmt() string
	AlterTableStmt(fragments []string) string
	AddConstraintsStmt() string
	DropConstraintsStmt() string
}

// Table holds a table definition: an ordered set of columns, a primary
// key, and named constraints. Deferred constraints (foreign keys, checks)
// are excluded from CreateStmt and rendered by AddConstraintsStmt once
// sibling tables exist.
type Table struct {
	TableName   QualifiedID
	Columns     *ObjectMap[ColumnObject]
	PrimaryKey  []LocalID
	Constraints []*Constraint
	Description string
}

// Name returns the qualified table identifier.
func (t *Table) Name() QualifiedID {
	return t.TableName
}

// LocalName returns the unquoted table name.
func (t *Table) LocalName() string {
	return t.TableName.Name
}

// Base returns the underlying table definition.
func (t *Table) Base() *Table {
	return t
}

// CreateStmt renders the CREATE TABLE statement with column definitions,
// the primary key, and inline (non-deferred) constraints.
func (t *Table) CreateStmt() (string, error) {
	defs, err := t.createDefs()
	if err != nil {
		return "", err
	}
	return "CREATE TABLE " + t.TableName.String() + " (\n" + strings.Join(defs, ",\n") + "\n);", nil
}

// createDefs builds the comma-joined body of CREATE TABLE; shared with
// dialect variants that only change the statement around it.
func (t *Table) createDefs() ([]string, error) {
	var defs []string
	for _, column := range t.Columns.Values() {
		spec, err := column.Spec()
		if err != nil {
			return nil, &TableFormationError{Table: t.TableName, Err: err}
		}
		defs = append(defs, spec)
	}
	if len(t.PrimaryKey) > 0 {
		defs = append(defs, "PRIMARY KEY ("+joinIDs(t.PrimaryKey)+")")
	}
	for _, constraint := range t.Constraints {
		if !constraint.Deferred() {
			defs = append(defs, constraint.Spec())
		}
	}
	return defs, nil
}

// DropStmt renders the DROP TABLE statement.
func (t *Table) DropStmt() string {
	return "DROP TABLE " + t.TableName.String() + ";"
}

// AlterTableStmt wraps alteration fragments in a single ALTER TABLE
// statement. Dialects that do not accept comma-joined alterations
// override this with a multi-statement form.
func (t *Table) AlterTableStmt(fragments []string) string {
	return "ALTER TABLE " + t.TableName.String() + "\n" + strings.Join(fragments, ",\n") + ";"
}

// AddConstraintsStmt renders the deferred constraint additions, or an
// empty string when the table has none.
func (t *Table) AddConstraintsStmt() string {
	var fragments []string
	for _, constraint := range t.Constraints {
		if constraint.Deferred() {
			fragments = append(fragments, "ADD "+constraint.Spec())
		}
	}
	if len(fragments) == 0 {
		return ""
	}
	return t.AlterTableStmt(fragments)
}

// DropConstraintsStmt renders the inverse of AddConstraintsStmt, used
// before dropping tables so no dangling references remain.
func (t *Table) DropConstraintsStmt() string {
	var fragments []string
	for _, constraint := range t.Constraints {
		if constraint.Deferred() {
			fragments = append(fragments, "DROP CONSTRAINT "+constraint.ConstraintName.String())
		}
	}
	if len(fragments) == 0 {
		return ""
	}
	return t.AlterTableStmt(fragments)
}
