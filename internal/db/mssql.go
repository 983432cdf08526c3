package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"
)

// MSSQLClient manages the connection to SQL Server. The client executes
// statement batches and bulk DML; SQL Server introspection is not
// implemented, so source trees must come from another extractor or from a
// schema description.
type MSSQLClient struct {
	db *sql.DB
}

// NewMSSQLClient creates a new SQL Server client
func NewMSSQLClient(ctx context.Context, connString string) (*MSSQLClient, error) {
	db, err := sql.Open("sqlserver", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MSSQLClient{db: db}, nil
}

// Close closes the database connection
func (c *MSSQLClient) Close() error {
	return c.db.Close()
}

// GetDB returns the underlying database connection
func (c *MSSQLClient) GetDB() *sql.DB {
	return c.db
}

// Execute runs a DDL statement batch.
func (c *MSSQLClient) Execute(ctx context.Context, statement string) error {
	if _, err := c.db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// ExecuteBulk runs one parameterized statement against many rows.
func (c *MSSQLClient) ExecuteBulk(ctx context.Context, statement string, rows [][]any) error {
	return execBulk(ctx, c.db, statement, rows)
}
