package dialect

import (
	"strings"

	"github.com/Datahenge/schemasync/diff"
	"github.com/Datahenge/schemasync/schema"
)

// maxColumnCommentLength is MySQL's limit on column comments.
const maxColumnCommentLength = 1024

// mysqlDialect assumes ANSI_QUOTES mode so identifiers keep the standard
// double-quote form. Descriptions travel inline as COMMENT clauses, and
// column mutation collapses into MODIFY COLUMN with the full target spec.
type mysqlDialect struct{}

func (mysqlDialect) Kind() Kind { return MySQL }

func (mysqlDialect) Table(def *schema.Table) schema.TableObject {
	return &mysqlTable{Table: def}
}

func (mysqlDialect) Column(def *schema.Column) schema.ColumnObject {
	return &mysqlColumn{Column: def}
}

func (mysqlDialect) Struct(def *schema.StructType) schema.StructObject {
	return def
}

func (mysqlDialect) Mutator() *diff.Mutator {
	return diff.New(mysqlHooks{})
}

type mysqlTable struct {
	*schema.Table
}

// CreateStmt names the primary key constraint explicitly and appends the
// table comment, truncated to its first line.
func (t *mysqlTable) CreateStmt() (string, error) {
	var defs []string
	for _, column := range t.Columns.Values() {
		spec, err := column.Spec()
		if err != nil {
			return "", &schema.TableFormationError{Table: t.TableName, Err: err}
		}
		defs = append(defs, spec)
	}
	if len(t.PrimaryKey) > 0 {
		pk := schema.LocalID{Name: "pk_" + t.TableName.Name}
		defs = append(defs, "CONSTRAINT "+pk.String()+" PRIMARY KEY ("+joinLocalIDs(t.PrimaryKey)+")")
	}
	for _, constraint := range t.Constraints {
		if !constraint.Deferred() {
			defs = append(defs, constraint.Spec())
		}
	}
	stmt := "CREATE TABLE " + t.TableName.String() + " (\n" + strings.Join(defs, ",\n") + "\n)"
	if desc := firstLine(t.Description); desc != "" {
		stmt += "\nCOMMENT = " + schema.QuoteString(desc)
	}
	return stmt + ";", nil
}

type mysqlColumn struct {
	*schema.Column
}

func (c *mysqlColumn) Base() *schema.Column {
	return c.Column
}

func (c *mysqlColumn) Spec() (string, error) {
	spec, err := c.DataSpec()
	if err != nil {
		return "", err
	}
	return c.ColumnName.String() + " " + spec, nil
}

// DataSpec renders the MySQL column body: enumeration references get a
// binary ASCII collation so value comparison stays byte-exact, identity
// becomes AUTO_INCREMENT, and descriptions become COMMENT clauses.
func (c *mysqlColumn) DataSpec() (string, error) {
	spec := c.Type.String()
	if _, ok := c.Type.(schema.EnumRefType); ok {
		spec += " CHARACTER SET ascii COLLATE ascii_bin"
	}
	if !c.Nullable {
		spec += " NOT NULL"
	}
	if c.Default != "" {
		spec += " DEFAULT " + c.Default
	}
	if c.Identity {
		spec += " AUTO_INCREMENT"
	}
	comment, err := c.comment()
	if err != nil {
		return "", err
	}
	if comment != "" {
		spec += " COMMENT " + comment
	}
	return spec, nil
}

// comment returns the quoted first line of the description, or an error
// when it exceeds the engine limit.
func (c *mysqlColumn) comment() (string, error) {
	desc := firstLine(c.Description)
	if desc == "" {
		return "", nil
	}
	if len(desc) > maxColumnCommentLength {
		return "", &schema.ColumnFormationError{
			Column: c.ColumnName,
			Err: schema.Formationf("comment too long, expected: maximum %d; got: %d",
				maxColumnCommentLength, len(desc)),
		}
	}
	return schema.QuoteString(desc), nil
}

type mysqlHooks struct{}

// MutateColumn rewrites the whole column with MODIFY COLUMN whenever any
// attribute differs; MySQL has no per-attribute ALTER COLUMN form.
func (mysqlHooks) MutateColumn(source, target schema.ColumnObject) (string, error) {
	if source.Base().Equal(target.Base()) {
		return "", nil
	}
	spec, err := target.DataSpec()
	if err != nil {
		return "", err
	}
	return "MODIFY COLUMN " + target.Name().String() + " " + spec, nil
}

// MutateTableExtra reconciles the table comment, which lives outside the
// ALTER TABLE alteration list.
func (mysqlHooks) MutateTableExtra(source, target schema.TableObject) ([]string, error) {
	sourceDesc := firstLine(source.Base().Description)
	targetDesc := firstLine(target.Base().Description)
	if sourceDesc == targetDesc {
		return nil, nil
	}
	return []string{
		"ALTER TABLE " + target.Name().String() + " COMMENT = " + schema.QuoteString(targetDesc) + ";",
	}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func joinLocalIDs(ids []schema.LocalID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
