package dtos

import (
	"github.com/poofware/widget-service/internal/models"
)

// Widget is the wire shape of a stored widget.
type Widget struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     int64  `json:"version"`
}

func NewWidgetFromModel(w models.Widget) Widget {
	return Widget{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Version:     w.RowVersion,
	}
}

func NewWidgetsFromModels(ws []*models.Widget) []Widget {
	out := make([]Widget, 0, len(ws))
	for _, w := range ws {
		out = append(out, NewWidgetFromModel(*w))
	}
	return out
}

// WidgetRequest is the body of POST /rest/widget and PUT /rest/widget/{id}.
// Any id or version sent by the client is ignored.
type WidgetRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}
