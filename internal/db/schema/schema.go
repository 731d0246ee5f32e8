// Package schema applies the embedded SQL schema migrations.
package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migration is a single versioned schema change.
type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// Migrator applies migrations over a pgx pool, recording applied versions in
// a schema_migrations table.
type Migrator struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewMigrator creates a migrator.
func NewMigrator(pool *pgxpool.Pool, logger *zap.Logger) *Migrator {
	return &Migrator{pool: pool, logger: logger}
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := m.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// AppliedMigrations returns the versions already applied.
func (m *Migrator) AppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.pool.Query(ctx,
		`SELECT version, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = appliedAt
	}
	return applied, nil
}

// Apply runs every pending migration in version order.
func (m *Migrator) Apply(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := m.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, migration := range All() {
		if _, ok := applied[migration.Version]; ok {
			continue
		}

		m.logger.Info("applying migration",
			zap.Int("version", migration.Version),
			zap.String("description", migration.Description))

		if _, err := m.pool.Exec(ctx, migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
		if _, err := m.pool.Exec(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			migration.Version, migration.Description); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
