// Package dialect selects the concrete object variants and mutation rules
// for each supported database family. Adding a dialect means implementing
// the Dialect interface plus the subset of rendering methods that differ
// from the base model; the diff algorithm is never touched.
package dialect

import (
	"fmt"
	"strings"

	"github.com/Datahenge/schemasync/diff"
	"github.com/Datahenge/schemasync/schema"
)

// Kind is the closed enumeration of supported database families.
type Kind int

const (
	Postgres Kind = iota
	MySQL
	MSSQL
	Oracle
	SQLite
)

func (k Kind) String() string {
	switch k {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case MSSQL:
		return "mssql"
	case Oracle:
		return "oracle"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a dialect name onto its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	case "oracle":
		return Oracle, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unsupported dialect: %s", name)
	}
}

// Dialect is the per-family object factory: it wraps base definitions in
// the variant types that carry dialect-specific rendering, and supplies
// the matching diff engine.
type Dialect interface {
	Kind() Kind
	Table(def *schema.Table) schema.TableObject
	Column(def *schema.Column) schema.ColumnObject
	Struct(def *schema.StructType) schema.StructObject
	Mutator() *diff.Mutator
}

// For returns the Dialect for a database family.
func For(kind Kind) Dialect {
	switch kind {
	case MySQL:
		return mysqlDialect{}
	case MSSQL:
		return mssqlDialect{}
	case Oracle:
		return oracleDialect{}
	case SQLite:
		return sqliteDialect{}
	default:
		return postgresDialect{}
	}
}
