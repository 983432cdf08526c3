package db

import (
	"context"
	"fmt"

	"github.com/Datahenge/schemasync/dialect"
	"github.com/Datahenge/schemasync/schema"
)

// PostgresExtractor introspects a PostgreSQL schema into a namespace tree
type PostgresExtractor struct {
	client     *PostgresClient
	schemaName string
	dialect    dialect.Dialect
}

// NewPostgresExtractor creates a new PostgreSQL schema extractor
func NewPostgresExtractor(client *PostgresClient, schemaName string) *PostgresExtractor {
	return &PostgresExtractor{
		client:     client,
		schemaName: schemaName,
		dialect:    dialect.For(dialect.Postgres),
	}
}

// ExtractNamespace extracts the schema's enumeration types and tables.
// If tables is empty, all tables in the schema are extracted.
func (e *PostgresExtractor) ExtractNamespace(ctx context.Context, tables []string) (*schema.Namespace, error) {
	ns := schema.NewNamespace(e.schemaName)

	enums, err := e.extractEnums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract enum types: %w", err)
	}
	enumNames := make(map[string]bool)
	for _, enum := range enums {
		if err := ns.Enums.Add(enum); err != nil {
			return nil, err
		}
		enumNames[enum.LocalName()] = true
	}

	tableNames, err := e.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	for _, tableName := range tableNames {
		table, err := e.extractTable(ctx, tableName, enumNames)
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
func (e *PostgresExtractor) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := e.client.GetConnection().Query(ctx, query, e.schemaName)
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
// foreign keys; foreign keys land in the table's deferred constraint set.
func (e *PostgresExtractor) extractTable(ctx context.Context, tableName string, enumNames map[string]bool) (schema.TableObject, error) {
	columns, err := e.extractColumns(ctx, tableName, enumNames)
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
func (e *PostgresExtractor) extractColumns(ctx context.Context, tableName string, enumNames map[string]bool) ([]schema.ColumnObject, error) {
	query := `
		SELECT
			column_name,
			data_type,
			udt_name,
			is_nullable,
			column_default,
			is_identity,
			character_maximum_length,
			numeric_precision,
			numeric_scale,
			datetime_precision
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := e.client.GetConnection().Query(ctx, query, e.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnObject
	for rows.Next() {
		var name, dataType, udtName, nullable, identity string
		var defaultValue *string
		var charLimit, precision, scale, timePrecision *int

		if err := rows.Scan(&name, &dataType, &udtName, &nullable, &defaultValue,
			&identity, &charLimit, &precision, &scale, &timePrecision); err != nil {
			return nil, err
		}

		column := &schema.Column{
			ColumnName: schema.LocalID{Name: name},
			Type: e.columnType(dataType, udtName, enumNames, schema.TypeSpec{
				Name:           dataType,
				CharacterLimit: charLimit,
				Precision:      precision,
				Scale:          scale,
				TimePrecision:  timePrecision,
			}),
			Nullable: nullable == "YES",
			Identity: identity == "YES",
		}
		if defaultValue != nil {
			column.Default = *defaultValue
		}
		columns = append(columns, e.dialect.Column(column))
	}

	return columns, rows.Err()
}

// columnType resolves user-defined column types against the schema's
// enumeration types; everything else goes through the generic mapping.
func (e *PostgresExtractor) columnType(dataType, udtName string, enumNames map[string]bool, spec schema.TypeSpec) schema.DataType {
	if dataType == "USER-DEFINED" {
		ref := schema.QualifiedID{Namespace: e.schemaName, Name: udtName}
		if enumNames[udtName] {
			return schema.EnumRefType{Ref: ref}
		}
		return schema.NamedType{Ref: ref}
	}
	return schema.ParseDataType(spec)
}

// extractPrimaryKey extracts primary key columns
func (e *PostgresExtractor) extractPrimaryKey(ctx context.Context, tableName string) ([]schema.LocalID, error) {
	query := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = $1
			AND table_name = $2
			AND constraint_name IN (
				SELECT constraint_name
				FROM information_schema.table_constraints
				WHERE table_schema = $1
					AND table_name = $2
					AND constraint_type = 'PRIMARY KEY'
			)
		ORDER BY ordinal_position
	`

	rows, err := e.client.GetConnection().Query(ctx, query, e.schemaName, tableName)
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
// composite keys carrying every column pairing. The referenced column is
// matched by its position in the referenced unique constraint, which keeps
// composite keys aligned column-for-column.
func (e *PostgresExtractor) extractForeignKeys(ctx context.Context, tableName string) ([]*schema.Constraint, error) {
	query := `
		SELECT
			tc.constraint_name,
			kcu.column_name,
			ref.table_name AS foreign_table_name,
			ref.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		JOIN information_schema.referential_constraints AS rc
			ON rc.constraint_name = tc.constraint_name
			AND rc.constraint_schema = tc.table_schema
		JOIN information_schema.key_column_usage AS ref
			ON ref.constraint_name = rc.unique_constraint_name
			AND ref.constraint_schema = rc.unique_constraint_schema
			AND ref.ordinal_position = kcu.position_in_unique_constraint
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY tc.constraint_name, kcu.ordinal_position
	`

	rows, err := e.client.GetConnection().Query(ctx, query, e.schemaName, tableName)
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

// extractEnums extracts the schema's enumeration types with their values
// in declared order.
func (e *PostgresExtractor) extractEnums(ctx context.Context) ([]*schema.EnumType, error) {
	query := `
		SELECT t.typname, e.enumlabel
		FROM pg_type t
		JOIN pg_enum e ON e.enumtypid = t.oid
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = $1
		ORDER BY t.typname, e.enumsortorder
	`

	rows, err := e.client.GetConnection().Query(ctx, query, e.schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enums []*schema.EnumType
	byName := make(map[string]*schema.EnumType)
	for rows.Next() {
		var typeName, label string
		if err := rows.Scan(&typeName, &label); err != nil {
			return nil, err
		}
		enum, ok := byName[typeName]
		if !ok {
			enum = &schema.EnumType{
				TypeName: schema.QualifiedID{Namespace: e.schemaName, Name: typeName},
			}
			byName[typeName] = enum
			enums = append(enums, enum)
		}
		enum.Values = append(enum.Values, label)
	}

	return enums, rows.Err()
}
