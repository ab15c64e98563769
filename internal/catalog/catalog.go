// Package catalog loads job postings and user behaviour from a SQLite
// database into the shapes the recommender consumes.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/jobmatch/internal/logger"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// ErrJobNotFound is returned when a requested job posting doesn't exist.
var ErrJobNotFound = errors.New("job not found")

// Catalog reads jobs and user activity from SQLite.
type Catalog struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens the database at path and applies the schema.
func Open(ctx context.Context, path string, log *zap.Logger) (*Catalog, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	c := &Catalog{db: db, logger: logger.WithFields(log, zap.String("catalog", path))}
	if err := c.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}
