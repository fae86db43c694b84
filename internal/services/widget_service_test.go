package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/widget-service/internal/models"
	"github.com/poofware/widget-service/internal/repositories"
	"github.com/poofware/widget-service/internal/utils"
)

// failingRepo wraps a real repository and injects a storage error.
type failingRepo struct {
	repositories.WidgetRepository
	err error
}

func (r failingRepo) ListAll(context.Context) ([]*models.Widget, error)            { return nil, r.err }
func (r failingRepo) GetByID(context.Context, int64) (*models.Widget, error)       { return nil, r.err }
func (r failingRepo) Create(context.Context, *models.Widget) error                 { return r.err }
func (r failingRepo) UpdateIfVersion(context.Context, *models.Widget, int64) error { return r.err }

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, status, appErr.StatusCode)
	assert.Equal(t, code, appErr.Code)
}

func TestWidgetService_CreateStartsAtVersionOne(t *testing.T) {
	svc := NewWidgetService(repositories.NewMemoryWidgetRepository())
	ctx := context.Background()

	in := &models.Widget{Name: "New Widget", Description: "This is my widget"}
	require.False(t, in.Persisted())
	created, err := svc.Save(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(1), created.RowVersion)
	assert.Equal(t, "New Widget", created.Name)
	assert.Equal(t, "This is my widget", created.Description)
	assert.Zero(t, in.ID, "caller's widget must not be mutated")

	got, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.RowVersion, got.RowVersion)
}

func TestWidgetService_UpdateBumpsVersion(t *testing.T) {
	svc := NewWidgetService(repositories.NewMemoryWidgetRepository())
	ctx := context.Background()

	created, err := svc.Save(ctx, &models.Widget{Name: "New Widget", Description: "This is my widget"})
	require.NoError(t, err)

	edit := created.Clone()
	edit.Name = "Edit Widget"
	edit.Description = "This is my widget edit"
	updated, err := svc.Save(ctx, edit)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, int64(2), updated.RowVersion)
	assert.Equal(t, "Edit Widget", updated.Name)
	assert.Equal(t, "This is my widget edit", updated.Description)
}

func TestWidgetService_StaleUpdateConflicts(t *testing.T) {
	svc := NewWidgetService(repositories.NewMemoryWidgetRepository())
	ctx := context.Background()

	created, err := svc.Save(ctx, &models.Widget{Name: "New Widget"})
	require.NoError(t, err)

	_, err = svc.Save(ctx, created.Clone())
	require.NoError(t, err)

	_, err = svc.Save(ctx, created.Clone())
	requireAppError(t, err, http.StatusConflict, utils.ErrCodeRowVersionConflict)
	assert.ErrorIs(t, err, utils.ErrRowVersionConflict)
}

func TestWidgetService_UpdateUnknownIsNotFound(t *testing.T) {
	repo := repositories.NewMemoryWidgetRepository()
	svc := NewWidgetService(repo)
	ctx := context.Background()

	ghost := &models.Widget{ID: 12, Name: "ghost"}
	ghost.RowVersion = 1
	_, err := svc.Save(ctx, ghost)
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestWidgetService_FindByIDMissing(t *testing.T) {
	svc := NewWidgetService(repositories.NewMemoryWidgetRepository())

	got, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWidgetService_ConcurrentSaveOneWinner(t *testing.T) {
	const writers = 5
	svc := NewWidgetService(repositories.NewMemoryWidgetRepository())
	ctx := context.Background()

	created, err := svc.Save(ctx, &models.Widget{Name: "Contended"})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Save(ctx, created.Clone())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, utils.ErrRowVersionConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, conflicts)
}

func TestWidgetService_StorageErrorsAreInternal(t *testing.T) {
	repo := failingRepo{WidgetRepository: repositories.NewMemoryWidgetRepository(), err: errors.New("disk full")}
	svc := NewWidgetService(repo)
	ctx := context.Background()

	_, err := svc.FindAll(ctx)
	requireAppError(t, err, http.StatusInternalServerError, utils.ErrCodeInternal)

	_, err = svc.FindByID(ctx, 1)
	requireAppError(t, err, http.StatusInternalServerError, utils.ErrCodeInternal)

	_, err = svc.Save(ctx, &models.Widget{Name: "x"})
	requireAppError(t, err, http.StatusInternalServerError, utils.ErrCodeInternal)

	existing := &models.Widget{ID: 1, Name: "x"}
	existing.RowVersion = 1
	_, err = svc.Save(ctx, existing)
	requireAppError(t, err, http.StatusInternalServerError, utils.ErrCodeInternal)
}
