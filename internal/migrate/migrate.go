// Package migrate creates the job board schema. Statements are idempotent so
// Apply can run on every deploy.
package migrate

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Abraxas-365/devjobs/pkg/logx"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// Schema returns the DDL applied by Apply.
func Schema() string {
	return schema
}

// Apply runs the schema in a single transaction.
func Apply(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	logx.Info("database schema is up to date")
	return nil
}
