package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/poofware/widget-service/internal/models"
	"github.com/poofware/widget-service/internal/utils"
)

// memoryWidgetRepo keeps widgets in process. A single mutex makes the
// version compare and the write one step.
type memoryWidgetRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.Widget
	order  []int64
	now    func() time.Time
}

func NewMemoryWidgetRepository() WidgetRepository {
	return &memoryWidgetRepo{
		nextID: 1,
		byID:   make(map[int64]*models.Widget),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryWidgetRepo) Create(_ context.Context, w *models.Widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now()
	w.ID = r.nextID
	w.RowVersion = 1
	w.CreatedAt = ts
	w.UpdatedAt = ts
	r.nextID++

	r.byID[w.ID] = w.Clone()
	r.order = append(r.order, w.ID)
	return nil
}

func (r *memoryWidgetRepo) GetByID(_ context.Context, id int64) (*models.Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id].Clone(), nil
}

func (r *memoryWidgetRepo) ListAll(_ context.Context) ([]*models.Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Widget, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *memoryWidgetRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.order)), nil
}

func (r *memoryWidgetRepo) UpdateIfVersion(_ context.Context, w *models.Widget, expected int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[w.ID]
	if !ok {
		return utils.ErrWidgetNotFound
	}
	if stored.RowVersion != expected {
		return utils.ErrRowVersionConflict
	}

	stored.Name = w.Name
	stored.Description = w.Description
	stored.RowVersion++
	stored.UpdatedAt = r.now()

	*w = *stored.Clone()
	return nil
}

func (r *memoryWidgetRepo) Ping(context.Context) error { return nil }

func (r *memoryWidgetRepo) Close() {}
