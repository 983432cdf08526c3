package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Datahenge/schemasync/dialect"
	"github.com/Datahenge/schemasync/schema"
)

// SQLiteExtractor introspects a SQLite database into a namespace tree.
// SQLite has no schema concept, so the namespace name is empty.
type SQLiteExtractor struct {
	client  *SQLiteClient
	dialect dialect.Dialect
}

// NewSQLiteExtractor creates a new SQLite schema extractor
func NewSQLiteExtractor(client *SQLiteClient) *SQLiteExtractor {
	return &SQLiteExtractor{
		client:  client,
		dialect: dialect.For(dialect.SQLite),
	}
}

// ExtractNamespace extracts the database's tables.
// If tables is empty, all tables in the database are extracted.
func (e *SQLiteExtractor) ExtractNamespace(ctx context.Context, tables []string) (*schema.Namespace, error) {
	ns := schema.NewNamespace("")

	tableNames, err := e.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	for _, tableName := range tableNames {
		table, err := e.extractTable(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", tableName, err)
		}
		if err := ns.Tables.Add(table); err != nil {
			return nil, err
		}
	}

	return ns, nil
}

// getTableNames returns the list of tables to extract
func (e *SQLiteExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := e.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableList []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tableList = append(tableList, tableName)
	}

	return tableList, rows.Err()
}

// extractTable extracts one table with its columns, primary key and
// foreign keys
func (e *SQLiteExtractor) extractTable(ctx context.Context, tableName string) (schema.TableObject, error) {
	columns, pk, err := e.extractColumns(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}

	constraints, err := e.extractForeignKeys(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract foreign keys: %w", err)
	}

	return e.dialect.Table(&schema.Table{
		TableName:   schema.QualifiedID{Name: tableName},
		Columns:     schema.NewObjectMap(columns...),
		PrimaryKey:  pk,
		Constraints: constraints,
	}), nil
}

// extractColumns extracts column information and the primary key from
// PRAGMA table_info
func (e *SQLiteExtractor) extractColumns(ctx context.Context, tableName string) ([]schema.ColumnObject, []schema.LocalID, error) {
	query := fmt.Sprintf("PRAGMA table_info(%q)", tableName)

	rows, err := e.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnObject
	var pk []schema.LocalID

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pkPos int
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pkPos); err != nil {
			return nil, nil, err
		}

		column := &schema.Column{
			ColumnName: schema.LocalID{Name: name},
			Type:       schema.ParseDataType(schema.TypeSpec{Name: strings.ToLower(colType)}),
			Nullable:   notNull == 0,
		}
		if defaultValue.Valid {
			column.Default = defaultValue.String
		}

		if pkPos > 0 {
			pk = append(pk, schema.LocalID{Name: name})
		}

		columns = append(columns, e.dialect.Column(column))
	}

	return columns, pk, rows.Err()
}

// extractForeignKeys extracts foreign key constraints. SQLite foreign
// keys are unnamed, so names are synthesized from the table and the
// PRAGMA id; rows sharing an id are one composite key.
func (e *SQLiteExtractor) extractForeignKeys(ctx context.Context, tableName string) ([]*schema.Constraint, error) {
	query := fmt.Sprintf("PRAGMA foreign_key_list(%q)", tableName)

	rows, err := e.client.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fkRows []foreignKeyRow
	for rows.Next() {
		var id, seq int
		var foreignTable, from, to, onUpdate, onDelete, match string

		if err := rows.Scan(&id, &seq, &foreignTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}

		fkRows = append(fkRows, foreignKeyRow{
			name:      fmt.Sprintf("fk_%s_%d", tableName, id),
			column:    from,
			refTable:  foreignTable,
			refColumn: to,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groupForeignKeys("", fkRows), nil
}
