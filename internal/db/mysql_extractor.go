package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/Datahenge/schemasync/dialect"
	"github.com/Datahenge/schemasync/schema"
)

// MySQLExtractor introspects a MySQL database into a namespace tree
type MySQLExtractor struct {
	client     *MySQLClient
	schemaName string
	dialect    dialect.Dialect
}

// NewMySQLExtractor creates a new MySQL schema extractor
func NewMySQLExtractor(client *MySQLClient, schemaName string) *MySQLExtractor {
	return &MySQLExtractor{
		client:     client,
		schemaName: schemaName,
		dialect:    dialect.For(dialect.MySQL),
	}
}

// ExtractNamespace extracts the database's tables.
// If tables is empty, all tables in the database are extracted.
func (e *MySQLExtractor) ExtractNamespace(ctx context.Context, tables []string) (*schema.Namespace, error) {
	ns := schema.NewNamespace(e.schemaName)

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
func (e *MySQLExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := e.client.GetDB().QueryContext(ctx, query, e.schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

// extractTable extracts one table with its columns, primary key and
// foreign keys
func (e *MySQLExtractor) extractTable(ctx context.Context, tableName string) (schema.TableObject, error) {
	columns, err := e.extractColumns(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract columns: %w", err)
	}

	pk, err := e.extractPrimaryKey(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract primary key: %w", err)
	}

	constraints, err := e.extractForeignKeys(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to extract foreign keys: %w", err)
	}

	return e.dialect.Table(&schema.Table{
		TableName:   schema.QualifiedID{Namespace: e.schemaName, Name: tableName},
		Columns:     schema.NewObjectMap(columns...),
		PrimaryKey:  pk,
		Constraints: constraints,
	}), nil
}

// extractColumns extracts column information for a table
func (e *MySQLExtractor) extractColumns(ctx context.Context, tableName string) ([]schema.ColumnObject, error) {
	query := `
		SELECT
			column_name,
			column_type,
			is_nullable,
			column_default,
			extra,
			column_comment
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := e.client.GetDB().QueryContext(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnObject
	for rows.Next() {
		var name, columnType, nullable, extra, comment string
		var defaultValue sql.NullString

		if err := rows.Scan(&name, &columnType, &nullable, &defaultValue, &extra, &comment); err != nil {
			return nil, err
		}

		column := &schema.Column{
			ColumnName:  schema.LocalID{Name: name},
			Type:        parseMySQLType(columnType),
			Nullable:    nullable == "YES",
			Identity:    strings.Contains(extra, "auto_increment"),
			Description: comment,
		}
		if defaultValue.Valid {
			column.Default = defaultValue.String
		}
		columns = append(columns, e.dialect.Column(column))
	}

	return columns, rows.Err()
}

// parseMySQLType maps a MySQL column_type value like "varchar(255)" or
// "decimal(10,2)" onto the data type model; anything without a structured
// mapping is carried verbatim.
func parseMySQLType(columnType string) schema.DataType {
	name := columnType
	var args []int
	if i := strings.IndexByte(columnType, '('); i >= 0 && strings.HasSuffix(columnType, ")") {
		name = columnType[:i]
		for _, part := range strings.Split(columnType[i+1:len(columnType)-1], ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return schema.RawType{Spec: columnType}
			}
			args = append(args, n)
		}
	}

	switch strings.ToLower(name) {
	case "tinyint":
		if len(args) == 1 && args[0] == 1 {
			return schema.BooleanType{}
		}
		return schema.RawType{Spec: columnType}
	case "smallint":
		return schema.IntegerType{Width: 2}
	case "int", "integer":
		return schema.IntegerType{Width: 4}
	case "bigint":
		return schema.IntegerType{Width: 8}
	case "float":
		return schema.FloatType{}
	case "double":
		return schema.DoubleType{}
	case "decimal":
		t := schema.DecimalType{}
		if len(args) > 0 {
			t.Precision = args[0]
		}
		if len(args) > 1 {
			t.Scale = args[1]
		}
		return t
	case "varchar":
		if len(args) == 1 {
			return schema.CharacterType{Limit: args[0]}
		}
		return schema.CharacterType{}
	case "text", "mediumtext", "longtext":
		return schema.CharacterType{}
	case "date":
		return schema.DateType{}
	case "time":
		return schema.TimeType{Precision: firstArg(args)}
	case "datetime", "timestamp":
		return schema.TimestampType{Precision: firstArg(args)}
	default:
		return schema.RawType{Spec: columnType}
	}
}

func firstArg(args []int) int {
	if len(args) > 0 {
		return args[0]
	}
	return 0
}

// extractPrimaryKey extracts primary key columns
func (e *MySQLExtractor) extractPrimaryKey(ctx context.Context, tableName string) ([]schema.LocalID, error) {
	query := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ? AND table_name = ? AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position
	`

	rows, err := e.client.GetDB().QueryContext(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk []schema.LocalID
	for rows.Next() {
		var colName string
		if err := rows.Scan(&colName); err != nil {
			return nil, err
		}
		pk = append(pk, schema.LocalID{Name: colName})
	}

	return pk, rows.Err()
}

// extractForeignKeys extracts foreign key constraints, one per name with
// composite keys carrying every column pairing.
func (e *MySQLExtractor) extractForeignKeys(ctx context.Context, tableName string) ([]*schema.Constraint, error) {
	query := `
		SELECT
			constraint_name,
			column_name,
			referenced_table_name,
			referenced_column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ?
			AND table_name = ?
			AND referenced_table_name IS NOT NULL
		ORDER BY constraint_name, ordinal_position
	`

	rows, err := e.client.GetDB().QueryContext(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fkRows []foreignKeyRow
	for rows.Next() {
		var constraintName, columnName, foreignTable, foreignColumn string
		if err := rows.Scan(&constraintName, &columnName, &foreignTable, &foreignColumn); err != nil {
			return nil, err
		}

		fkRows = append(fkRows, foreignKeyRow{
			name:      constraintName,
			column:    columnName,
			refTable:  foreignTable,
			refColumn: foreignColumn,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groupForeignKeys(e.schemaName, fkRows), nil
}

// ParseDatabaseName extracts the database name from a MySQL DSN like
// "user:pass@tcp(host:port)/dbname?params".
func ParseDatabaseName(connString string) (string, error) {
	i := strings.LastIndexByte(connString, '/')
	if i < 0 {
		return "", fmt.Errorf("no database name in connection string")
	}
	name := connString[i+1:]
	if j := strings.IndexByte(name, '?'); j >= 0 {
		name = name[:j]
	}
	if name == "" {
		return "", fmt.Errorf("no database name in connection string")
	}
	return name, nil
}
