// Package db holds the database connection layer: per-engine clients that
// execute DDL batches and bulk DML, and extractors that introspect a live
// database into a schema tree for diffing.
package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Executor runs statements produced by the diff engine. Statement order
// must be preserved; batches are executed front-to-back.
type Executor interface {
	// Execute runs a DDL statement or newline-joined statement batch.
	Execute(ctx context.Context, statement string) error

	// ExecuteBulk runs one parameterized DML statement against many rows.
	ExecuteBulk(ctx context.Context, statement string, rows [][]any) error
}

// execBulk prepares a statement once and applies it to every row inside a
// single transaction.
func execBulk(ctx context.Context, db *sql.DB, statement string, rows [][]any) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, statement)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}
	}
	return tx.Commit()
}
