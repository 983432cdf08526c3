package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLClient manages the connection to MySQL
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient creates a new MySQL client. The DSN is amended to allow
// multi-statement execution, since schema batches arrive newline-joined.
func NewMySQLClient(ctx context.Context, connString string) (*MySQLClient, error) {
	db, err := sql.Open("mysql", withMultiStatements(connString))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLClient{db: db}, nil
}

func withMultiStatements(connString string) string {
	if strings.Contains(connString, "multiStatements=") {
		return connString
	}
	if strings.Contains(connString, "?") {
		return connString + "&multiStatements=true"
	}
	return connString + "?multiStatements=true"
}

// Close closes the database connection
func (c *MySQLClient) Close() error {
	return c.db.Close()
}

// GetDB returns the underlying database connection
func (c *MySQLClient) GetDB() *sql.DB {
	return c.db
}

// Execute runs a DDL statement batch.
func (c *MySQLClient) Execute(ctx context.Context, statement string) error {
	if _, err := c.db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// ExecuteBulk runs one parameterized statement against many rows.
func (c *MySQLClient) ExecuteBulk(ctx context.Context, statement string, rows [][]any) error {
	return execBulk(ctx, c.db, statement, rows)
}
