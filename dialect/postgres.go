package dialect

import (
	"strings"

	"github.com/Datahenge/schemasync/diff"
	"github.com/Datahenge/schemasync/schema"
)

// postgresDialect uses the base column model; tables and structs gain
// secondary COMMENT ON statements, since PostgreSQL keeps descriptions
// outside the object definition.
type postgresDialect struct{}

func (postgresDialect) Kind() Kind { return Postgres }

func (postgresDialect) Table(def *schema.Table) schema.TableObject {
	return &postgresTable{Table: def}
}

func (postgresDialect) Column(def *schema.Column) schema.ColumnObject {
	return def
}

func (postgresDialect) Struct(def *schema.StructType) schema.StructObject {
	return &postgresStruct{StructType: def}
}

func (postgresDialect) Mutator() *diff.Mutator {
	return diff.New(nil)
}

type postgresTable struct {
	*schema.Table
}

func (t *postgresTable) CreateStmt() (string, error) {
	stmt, err := t.Table.CreateStmt()
	if err != nil {
		return "", err
	}
	statements := []string{stmt}
	if t.Description != "" {
		statements = append(statements,
			"COMMENT ON TABLE "+t.TableName.String()+" IS "+schema.QuoteLiteral(t.Description)+";")
	}
	for _, column := range t.Columns.Values() {
		if desc := column.Base().Description; desc != "" {
			statements = append(statements,
				"COMMENT ON COLUMN "+t.TableName.String()+"."+column.Name().String()+
					" IS "+schema.QuoteLiteral(desc)+";")
		}
	}
	return strings.Join(statements, "\n"), nil
}

type postgresStruct struct {
	*schema.StructType
}

func (s *postgresStruct) CreateStmt() string {
	statements := []string{s.StructType.CreateStmt()}
	if s.Description != "" {
		statements = append(statements,
			"COMMENT ON TYPE "+s.TypeName.String()+" IS "+schema.QuoteLiteral(s.Description)+";")
	}
	for _, member := range s.Members.Values() {
		if member.Description != "" {
			statements = append(statements,
				"COMMENT ON COLUMN "+s.TypeName.String()+"."+member.MemberName.String()+
					" IS "+schema.QuoteLiteral(member.Description)+";")
		}
	}
	return strings.Join(statements, "\n")
}
