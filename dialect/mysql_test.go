package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Datahenge/schemasync/schema"
)

func TestMySQLCreateTable(t *testing.T) {
	d := For(MySQL)
	table := d.Table(&schema.Table{
		TableName: schema.QualifiedID{Namespace: "shop", Name: "users"},
		Columns: schema.NewObjectMap(
			d.Column(&schema.Column{
				ColumnName: schema.LocalID{Name: "id"},
				Type:       schema.IntegerType{Width: 8},
				Identity:   true,
			}),
			d.Column(&schema.Column{
				ColumnName:  schema.LocalID{Name: "name"},
				Type:        schema.CharacterType{Limit: 255},
				Description: "display name",
			}),
			d.Column(&schema.Column{
				ColumnName: schema.LocalID{Name: "status"},
				Type:       schema.EnumRefType{Ref: schema.QualifiedID{Namespace: "shop", Name: "status"}},
			}),
		),
		PrimaryKey:  []schema.LocalID{{Name: "id"}},
		Description: "registered users",
	})

	stmt, err := table.CreateStmt()
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "shop"."users" (
"id" bigint NOT NULL AUTO_INCREMENT,
"name" varchar(255) NOT NULL COMMENT 'display name',
"status" "shop"."status" CHARACTER SET ascii COLLATE ascii_bin NOT NULL,
CONSTRAINT "pk_users" PRIMARY KEY ("id")
)
COMMENT = 'registered users';`, stmt)
}

func TestMySQLCommentTruncatesToFirstLine(t *testing.T) {
	d := For(MySQL)
	column := d.Column(&schema.Column{
		ColumnName:  schema.LocalID{Name: "note"},
		Type:        schema.CharacterType{},
		Nullable:    true,
		Description: "first line\nsecond line",
	})

	spec, err := column.Spec()
	require.NoError(t, err)
	assert.Equal(t, `"note" text COMMENT 'first line'`, spec)
}

func TestMySQLCommentTooLong(t *testing.T) {
	d := For(MySQL)
	column := d.Column(&schema.Column{
		ColumnName:  schema.LocalID{Name: "note"},
		Type:        schema.CharacterType{},
		Description: strings.Repeat("x", 1025),
	})

	_, err := column.Spec()
	require.Error(t, err)

	var columnErr *schema.ColumnFormationError
	require.ErrorAs(t, err, &columnErr)
	assert.Equal(t, schema.LocalID{Name: "note"}, columnErr.Column)
	assert.Contains(t, err.Error(), "comment too long, expected: maximum 1024; got: 1025")
}

func TestMySQLModifyColumn(t *testing.T) {
	d := For(MySQL)
	m := d.Mutator()

	source := d.Table(&schema.Table{
		TableName: schema.QualifiedID{Namespace: "shop", Name: "users"},
		Columns: schema.NewObjectMap(
			d.Column(&schema.Column{ColumnName: schema.LocalID{Name: "name"}, Type: schema.CharacterType{}, Nullable: true}),
		),
	})
	target := d.Table(&schema.Table{
		TableName: schema.QualifiedID{Namespace: "shop", Name: "users"},
		Columns: schema.NewObjectMap(
			d.Column(&schema.Column{ColumnName: schema.LocalID{Name: "name"}, Type: schema.CharacterType{Limit: 100}}),
		),
	})

	stmt, err := m.MutateTable(source, target)
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE \"shop\".\"users\"\nMODIFY COLUMN \"name\" varchar(100) NOT NULL;", stmt)
}

func TestMySQLTableCommentChange(t *testing.T) {
	d := For(MySQL)
	m := d.Mutator()

	source := d.Table(&schema.Table{
		TableName: schema.QualifiedID{Namespace: "shop", Name: "users"},
		Columns: schema.NewObjectMap(
			d.Column(&schema.Column{ColumnName: schema.LocalID{Name: "id"}, Type: schema.IntegerType{Width: 8}}),
		),
		Description: "old",
	})
	target := d.Table(&schema.Table{
		TableName: schema.QualifiedID{Namespace: "shop", Name: "users"},
		Columns: schema.NewObjectMap(
			d.Column(&schema.Column{ColumnName: schema.LocalID{Name: "id"}, Type: schema.IntegerType{Width: 8}}),
		),
		Description: "registered users",
	})

	stmt, err := m.MutateTable(source, target)
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "shop"."users" COMMENT = 'registered users';`, stmt)
}
