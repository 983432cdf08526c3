package dialect

import (
	"github.com/Datahenge/schemasync/diff"
	"github.com/Datahenge/schemasync/schema"
)

// mssqlDialect assumes QUOTED_IDENTIFIER ON, so identifiers keep the
// standard double-quote form. Identity columns use the IDENTITY keyword
// and cannot be toggled after creation.
type mssqlDialect struct{}

func (mssqlDialect) Kind() Kind { return MSSQL }

func (mssqlDialect) Table(def *schema.Table) schema.TableObject {
	return def
}

func (mssqlDialect) Column(def *schema.Column) schema.ColumnObject {
	return &mssqlColumn{Column: def}
}

func (mssqlDialect) Struct(def *schema.StructType) schema.StructObject {
	return def
}

func (mssqlDialect) Mutator() *diff.Mutator {
	return diff.New(mssqlHooks{})
}

type mssqlColumn struct {
	*schema.Column
}

func (c *mssqlColumn) Base() *schema.Column {
	return c.Column
}

func (c *mssqlColumn) Spec() (string, error) {
	spec, err := c.DataSpec()
	if err != nil {
		return "", err
	}
	return c.ColumnName.String() + " " + spec, nil
}

func (c *mssqlColumn) DataSpec() (string, error) {
	spec := c.Type.String()
	if !c.Nullable {
		spec += " NOT NULL"
	}
	if c.Default != "" {
		spec += " DEFAULT " + c.Default
	}
	if c.Identity {
		spec += " IDENTITY"
	}
	return spec, nil
}

type mssqlHooks struct{}

// MutateColumn rewrites the column with a single ALTER COLUMN spec.
// Adding or removing the identity property is not expressible in T-SQL
// and fails with an attributable error.
func (mssqlHooks) MutateColumn(source, target schema.ColumnObject) (string, error) {
	s, t := source.Base(), target.Base()
	if s.Identity != t.Identity {
		return "", &schema.ColumnFormationError{
			Column: s.ColumnName,
			Err:    schema.Formationf("operation not permitted; cannot add or drop identity property"),
		}
	}
	if s.Type == t.Type && s.Nullable == t.Nullable && s.Default == t.Default {
		return "", nil
	}
	spec, err := target.DataSpec()
	if err != nil {
		return "", err
	}
	return "ALTER COLUMN " + t.ColumnName.String() + " " + spec, nil
}

func (mssqlHooks) MutateTableExtra(source, target schema.TableObject) ([]string, error) {
	return nil, nil
}
