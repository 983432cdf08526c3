package dialect

import (
	"strings"

	"github.com/Datahenge/schemasync/diff"
	"github.com/Datahenge/schemasync/schema"
)

// oracleDialect emits one ALTER TABLE statement per alteration fragment;
// Oracle does not accept a comma-joined alteration list. Column changes
// collapse into a single MODIFY clause.
type oracleDialect struct{}

func (oracleDialect) Kind() Kind { return Oracle }

func (oracleDialect) Table(def *schema.Table) schema.TableObject {
	return &oracleTable{Table: def}
}

func (oracleDialect) Column(def *schema.Column) schema.ColumnObject {
	return def
}

func (oracleDialect) Struct(def *schema.StructType) schema.StructObject {
	return def
}

func (oracleDialect) Mutator() *diff.Mutator {
	return diff.New(oracleHooks{})
}

type oracleTable struct {
	*schema.Table
}

func (t *oracleTable) AlterTableStmt(fragments []string) string {
	statements := make([]string, len(fragments))
	for i, fragment := range fragments {
		statements[i] = "ALTER TABLE " + t.TableName.String() + " " + fragment + ";"
	}
	return strings.Join(statements, "\n")
}

// AddConstraintsStmt re-routes through the per-statement alteration form.
func (t *oracleTable) AddConstraintsStmt() string {
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

func (t *oracleTable) DropConstraintsStmt() string {
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

type oracleHooks struct{}

// MutateColumn joins the changed attributes into one MODIFY clause.
func (oracleHooks) MutateColumn(source, target schema.ColumnObject) (string, error) {
	s, t := source.Base(), target.Base()

	var changes []string
	if s.Type != t.Type {
		changes = append(changes, t.Type.String())
	}
	if s.Default != t.Default {
		if t.Default != "" {
			changes = append(changes, "DEFAULT "+t.Default)
		} else {
			changes = append(changes, "DEFAULT NULL")
		}
	}
	if s.Nullable != t.Nullable {
		if !t.Nullable {
			changes = append(changes, "NOT NULL")
		} else {
			changes = append(changes, "NULL")
		}
	}
	if s.Identity != t.Identity {
		if t.Identity {
			changes = append(changes, "GENERATED BY DEFAULT AS IDENTITY")
		} else {
			changes = append(changes, "DROP IDENTITY")
		}
	}

	if len(changes) == 0 {
		return "", nil
	}
	return "MODIFY " + t.ColumnName.String() + " " + strings.Join(changes, " "), nil
}

func (oracleHooks) MutateTableExtra(source, target schema.TableObject) ([]string, error) {
	return nil, nil
}
