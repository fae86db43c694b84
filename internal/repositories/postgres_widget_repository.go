package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/poofware/widget-service/internal/models"
)

type postgresWidgetRepo struct {
	db DB
}

func NewPostgresWidgetRepository(db DB) WidgetRepository {
	return &postgresWidgetRepo{db: db}
}

func (r *postgresWidgetRepo) Create(ctx context.Context, w *models.Widget) error {
	row := r.db.QueryRow(ctx, `
        INSERT INTO widgets (
            name, description, created_at, updated_at, row_version
        ) VALUES ($1, $2, NOW(), NOW(), 1)
        RETURNING id, created_at, updated_at, row_version
    `,
		w.Name,
		w.Description,
	)
	return row.Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt, &w.RowVersion)
}

func (r *postgresWidgetRepo) GetByID(ctx context.Context, id int64) (*models.Widget, error) {
	row := r.db.QueryRow(ctx, baseSelectWidget()+" WHERE id=$1", id)
	return scanWidget(row)
}

func (r *postgresWidgetRepo) ListAll(ctx context.Context) ([]*models.Widget, error) {
	rows, err := r.db.Query(ctx, baseSelectWidget()+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Widget{}
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *postgresWidgetRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM widgets`).Scan(&n)
	return n, err
}

func (r *postgresWidgetRepo) UpdateIfVersion(ctx context.Context, w *models.Widget, expected int64) error {
	row := r.db.QueryRow(ctx, `
        UPDATE widgets SET
            name=$1, description=$2, updated_at=NOW(),
            row_version=row_version+1
        WHERE id=$3 AND row_version=$4
        RETURNING id, name, description, created_at, updated_at, row_version
    `,
		w.Name, w.Description, w.ID, expected,
	)
	updated, err := scanWidget(row)
	if err != nil {
		return err
	}
	if updated == nil {
		return ResolveVersionMiss(ctx, w.ID, r.GetByID)
	}
	*w = *updated
	return nil
}

// Migrate applies the widgets DDL.
func (r *postgresWidgetRepo) Migrate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, postgresWidgetsSchema)
	return err
}

func (r *postgresWidgetRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *postgresWidgetRepo) Close() {
	if c, ok := r.db.(interface{ Close() }); ok {
		c.Close()
	}
}

func baseSelectWidget() string {
	return `
        SELECT
            id, name, description,
            created_at, updated_at, row_version
        FROM widgets
    `
}

func scanWidget(row pgx.Row) (*models.Widget, error) {
	var w models.Widget
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Description,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}
