package models

import "time"

// Widget is the only resource served. ID 0 means "not yet persisted".
type Widget struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Versioned
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Widget) GetID() int64 { return w.ID }

// Persisted reports whether the store has assigned this widget an identity.
func (w *Widget) Persisted() bool { return w.ID != 0 }

// Clone returns a detached copy so callers cannot mutate stored state.
func (w *Widget) Clone() *Widget {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}
