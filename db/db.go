// Package db holds the postgres schema of the ledger
package db

import (
	"context"
	_ "embed"
	"fmt"

	"gorm.io/gorm"
)

//go:embed init_pg_db.sql
var schemaSQL string

// Migrate applies the schema. Every statement is idempotent so it is safe to run on each bring-up.
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	if err := gdb.WithContext(ctx).Exec(schemaSQL).Error; err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
