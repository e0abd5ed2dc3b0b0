// Package migrations manages the PostgreSQL schema.
package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
)

// Migration is one ordered schema change.
type Migration struct {
	Version string
	SQL     string
}

// All returns the full ordered migration set.
func All() []Migration {
	return []Migration{
		{
			Version: "001_assessments",
			SQL: `
				CREATE TABLE IF NOT EXISTS assessments (
					id UUID PRIMARY KEY,
					quiz JSONB NOT NULL,
					report JSONB NOT NULL,
					trainer_name TEXT,
					used_fallback BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_assessments_created_at
					ON assessments (created_at DESC);
			`,
		},
		{
			Version: "002_weigh_ins",
			SQL: `
				CREATE TABLE IF NOT EXISTS weigh_ins (
					id UUID PRIMARY KEY,
					assessment_id UUID NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
					weight_kg DOUBLE PRECISION NOT NULL,
					recorded_at TIMESTAMPTZ NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_weigh_ins_assessment
					ON weigh_ins (assessment_id, recorded_at);
			`,
		},
	}
}

// Migrator applies pending migrations
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Up executes all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, mig := range All() {
		if applied[mig.Version] {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", mig.Version, err)
		}
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	checksum := fmt.Sprintf("%x", sha256.Sum256([]byte(mig.SQL)))
	_, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)",
		mig.Version, checksum)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}
