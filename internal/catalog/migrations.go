package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS job_postings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		company_name TEXT,
		location TEXT,
		job_type TEXT,
		experience_level TEXT,
		industry TEXT,
		salary_min REAL,
		salary_max REAL,
		currency TEXT,
		skills_required TEXT NOT NULL DEFAULT '[]',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id INTEGER PRIMARY KEY,
		skills TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
		user_id INTEGER NOT NULL,
		job_posting_id INTEGER NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, job_posting_id)
	)`,
	`CREATE TABLE IF NOT EXISTS saved_jobs (
		user_id INTEGER NOT NULL,
		job_posting_id INTEGER NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
		saved_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, job_posting_id)
	)`,
	`CREATE TABLE IF NOT EXISTS job_views (
		user_id INTEGER NOT NULL,
		job_posting_id INTEGER NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
		viewed_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_postings_active ON job_postings(is_active, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_job_views_user ON job_views(user_id, viewed_at)`,
}

// Migrate creates missing tables and indexes. It is safe to run repeatedly.
func (c *Catalog) Migrate(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	c.logger.Debug("schema is up to date", zap.Int("statements", len(schema)))
	return nil
}
