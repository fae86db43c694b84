package repositories

import (
	"context"

	"github.com/poofware/widget-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type WidgetRepository interface {
	// Create assigns ID, RowVersion=1 and timestamps on w.
	Create(ctx context.Context, w *models.Widget) error

	// GetByID returns (nil, nil) when no widget has that id.
	GetByID(ctx context.Context, id int64) (*models.Widget, error)
	ListAll(ctx context.Context) ([]*models.Widget, error)
	Count(ctx context.Context) (int64, error)

	// UpdateIfVersion replaces name/description and bumps row_version in one
	// atomic step, only if the stored row_version equals expected. On
	// success w carries the new row_version and updated_at.
	UpdateIfVersion(ctx context.Context, w *models.Widget, expected int64) error

	Ping(ctx context.Context) error
	Close()
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

const (
	postgresWidgetsSchema = `
CREATE TABLE IF NOT EXISTS widgets (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    row_version BIGINT NOT NULL DEFAULT 1
)`

	// Timestamps are RFC3339Nano text in SQLite.
	sqliteWidgetsSchema = `
CREATE TABLE IF NOT EXISTS widgets (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL,
    row_version INTEGER NOT NULL DEFAULT 1
)`
)

// Migrator is implemented by the SQL-backed repositories.
type Migrator interface {
	Migrate(ctx context.Context) error
}
