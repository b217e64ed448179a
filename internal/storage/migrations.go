package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Catalog tables",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS products (
					sku TEXT PRIMARY KEY,
					depth REAL NOT NULL DEFAULT 0,
					height REAL NOT NULL DEFAULT 0,
					width REAL NOT NULL DEFAULT 0,
					weight REAL NOT NULL DEFAULT 0,
					cost REAL NOT NULL DEFAULT 0,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS shipping_groups (
					seller_sku TEXT PRIMARY KEY,
					merchant_shipping_group TEXT NOT NULL,
					item_name TEXT,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_shipping_groups_group
					ON shipping_groups(merchant_shipping_group)`,

				`CREATE TABLE IF NOT EXISTS compositions (
					parent_sku TEXT PRIMARY KEY,
					total_qty INTEGER NOT NULL DEFAULT 1,
					total_value REAL NOT NULL DEFAULT 0,
					child_vat_total REAL NOT NULL DEFAULT 0,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 1: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Metric observations",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS observations (
					metric TEXT NOT NULL,
					period_start DATETIME NOT NULL,
					value REAL NOT NULL,
					recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (metric, period_start)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_observations_metric
					ON observations(metric, period_start)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("migration 2: %w", err)
				}
			}
			return nil
		},
	},
}

// runMigrations applies any pending migrations inside transactions, tracking
// the schema version with PRAGMA user_version.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", m.Version,
			"description", m.Description,
		)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		// PRAGMA doesn't support placeholders.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
