package dialect

import (
	"github.com/Datahenge/schemasync/diff"
	"github.com/Datahenge/schemasync/schema"
)

// sqliteDialect uses the base model throughout. SQLite has no schemas or
// named types, so namespaces are expected to carry an empty name and the
// enum/struct maps stay empty in practice.
type sqliteDialect struct{}

func (sqliteDialect) Kind() Kind { return SQLite }

func (sqliteDialect) Table(def *schema.Table) schema.TableObject {
	return def
}

func (sqliteDialect) Column(def *schema.Column) schema.ColumnObject {
	return def
}

func (sqliteDialect) Struct(def *schema.StructType) schema.StructObject {
	return def
}

func (sqliteDialect) Mutator() *diff.Mutator {
	return diff.New(nil)
}
