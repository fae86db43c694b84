package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/poofware/widget-service/internal/models"
)

type sqliteWidgetRepo struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteWidgetRepository opens (creating if needed) a SQLite file and
// ensures the widgets table exists.
func NewSQLiteWidgetRepository(ctx context.Context, path string) (WidgetRepository, error) {
	if path == "" {
		path = "widgets.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; the conditional UPDATE is still the CAS.
	db.SetMaxOpenConns(1)

	r := &sqliteWidgetRepo{
		db:   db,
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}
	if err := r.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *sqliteWidgetRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteWidgetsSchema); err != nil {
		return fmt.Errorf("create widgets table: %w", err)
	}
	return nil
}

func (r *sqliteWidgetRepo) Create(ctx context.Context, w *models.Widget) error {
	ts := r.now()
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO widgets (name, description, created_at, updated_at, row_version)
        VALUES (?, ?, ?, ?, 1)
    `,
		w.Name, w.Description, formatTS(ts), formatTS(ts),
	)
	if err != nil {
		return fmt.Errorf("insert widget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = id
	w.RowVersion = 1
	w.CreatedAt = ts
	w.UpdatedAt = ts
	return nil
}

func (r *sqliteWidgetRepo) GetByID(ctx context.Context, id int64) (*models.Widget, error) {
	row := r.db.QueryRowContext(ctx, baseSelectWidget()+" WHERE id=?", id)
	w, err := scanSQLiteWidget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

func (r *sqliteWidgetRepo) ListAll(ctx context.Context) ([]*models.Widget, error) {
	rows, err := r.db.QueryContext(ctx, baseSelectWidget()+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*models.Widget{}
	for rows.Next() {
		w, err := scanSQLiteWidget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *sqliteWidgetRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM widgets`).Scan(&n)
	return n, err
}

func (r *sqliteWidgetRepo) UpdateIfVersion(ctx context.Context, w *models.Widget, expected int64) error {
	row := r.db.QueryRowContext(ctx, `
        UPDATE widgets SET
            name=?, description=?, updated_at=?,
            row_version=row_version+1
        WHERE id=? AND row_version=?
        RETURNING id, name, description, created_at, updated_at, row_version
    `,
		w.Name, w.Description, formatTS(r.now()), w.ID, expected,
	)
	updated, err := scanSQLiteWidget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ResolveVersionMiss(ctx, w.ID, r.GetByID)
	}
	if err != nil {
		return fmt.Errorf("update widget: %w", err)
	}
	*w = *updated
	return nil
}

func (r *sqliteWidgetRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteWidgetRepo) Close() {
	_ = r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteWidget(row rowScanner) (*models.Widget, error) {
	var (
		w                models.Widget
		created, updated string
	)
	if err := row.Scan(&w.ID, &w.Name, &w.Description, &created, &updated, &w.RowVersion); err != nil {
		return nil, err
	}
	var err error
	if w.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &w, nil
}

func formatTS(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
