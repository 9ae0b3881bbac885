// File: migration/migration.go
package migration

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// schema creates the audit trail. Column names follow the gorm naming of
// model.AnalysisAuditLog.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS analysis_audit_logs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		operation TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		source_bytes INT NOT NULL DEFAULT 0,
		source_digest TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL DEFAULT 0,
		cache_hit BOOLEAN NOT NULL DEFAULT FALSE,
		stats JSONB,
		error_message TEXT,
		request_id TEXT,
		client_ip TEXT,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_analysis_audit_logs_timestamp ON analysis_audit_logs(timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_audit_logs_operation ON analysis_audit_logs(operation)`,
}

// Migrator handles database migrations for the audit trail
type Migrator struct {
	DB *sql.DB
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{DB: db}
}

// Open connects to a PostgreSQL database through lib/pq
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// InitializeSchema creates the tables and indexes that do not exist yet, in
// a single transaction
func (m *Migrator) InitializeSchema(ctx context.Context) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// AuditLogCount returns the number of stored audit entries
func (m *Migrator) AuditLogCount(ctx context.Context) (int64, error) {
	var count int64
	err := m.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_audit_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return count, nil
}
