package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poofware/widget-service/internal/models"
	"github.com/poofware/widget-service/internal/utils"
)

func TestResolveVersionMiss(t *testing.T) {
	ctx := context.Background()

	missing := func(context.Context, int64) (*models.Widget, error) { return nil, nil }
	present := func(_ context.Context, id int64) (*models.Widget, error) {
		w := &models.Widget{ID: id}
		w.RowVersion = 3
		return w, nil
	}
	broken := func(context.Context, int64) (*models.Widget, error) { return nil, errors.New("db down") }

	assert.ErrorIs(t, ResolveVersionMiss(ctx, 1, missing), utils.ErrWidgetNotFound)
	assert.ErrorIs(t, ResolveVersionMiss(ctx, 1, present), utils.ErrRowVersionConflict)
	assert.EqualError(t, ResolveVersionMiss(ctx, 1, broken), "db down")
}
