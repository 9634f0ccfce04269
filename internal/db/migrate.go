package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/migrations"
)

// Migrate applies the embedded migrations for the handle's dialect
func (d *DB) Migrate(ctx context.Context) (int, error) {
	files, err := migrations.ForDialect(string(d.Dialect))
	if err != nil {
		return 0, err
	}
	return d.RunMigrations(ctx, files)
}

// RunMigrations applies every pending *.sql file in name order and returns
// how many were applied.
func (d *DB) RunMigrations(ctx context.Context, migrationsFS fs.FS) (int, error) {
	_, err := d.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	applied, err := d.appliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") || applied[entry.Name()] {
			continue
		}
		pending = append(pending, entry.Name())
	}
	sort.Strings(pending)

	for _, filename := range pending {
		content, err := fs.ReadFile(migrationsFS, filename)
		if err != nil {
			return 0, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		tx, err := d.BeginTx(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("failed to start transaction for %s: %w", filename, err)
		}

		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		if _, err := tx.ExecContext(ctx, d.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), filename); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to record migration %s: %w", filename, err)
		}

		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("failed to commit migration %s: %w", filename, err)
		}

		logger.Info("Applied migration: " + filename)
	}

	return len(pending), nil
}

func (d *DB) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := d.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
