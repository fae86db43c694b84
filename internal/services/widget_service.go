package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/poofware/widget-service/internal/metrics"
	"github.com/poofware/widget-service/internal/models"
	"github.com/poofware/widget-service/internal/repositories"
	"github.com/poofware/widget-service/internal/utils"
)

// WidgetService is the persistence collaborator behind the widget handlers.
type WidgetService interface {
	FindAll(ctx context.Context) ([]*models.Widget, error)
	// FindByID returns (nil, nil) when the widget does not exist.
	FindByID(ctx context.Context, id int64) (*models.Widget, error)
	// Save creates w when it has no ID, otherwise replaces name/description
	// if the stored version still equals w.RowVersion.
	Save(ctx context.Context, w *models.Widget) (*models.Widget, error)
}

type widgetService struct {
	repo repositories.WidgetRepository
}

func NewWidgetService(repo repositories.WidgetRepository) WidgetService {
	return &widgetService{repo: repo}
}

func (s *widgetService) FindAll(ctx context.Context) ([]*models.Widget, error) {
	widgets, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to list widgets", Err: err}
	}
	return widgets, nil
}

func (s *widgetService) FindByID(ctx context.Context, id int64) (*models.Widget, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to load widget", Err: err}
	}
	return w, nil
}

func (s *widgetService) Save(ctx context.Context, w *models.Widget) (*models.Widget, error) {
	toSave := w.Clone()

	if !toSave.Persisted() {
		if err := s.repo.Create(ctx, toSave); err != nil {
			metrics.WidgetWrites.WithLabelValues("create", "error").Inc()
			return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create widget", Err: err}
		}
		metrics.WidgetWrites.WithLabelValues("create", "ok").Inc()
		utils.Logger.WithFields(logrus.Fields{
			"widget_id": toSave.ID,
			"version":   toSave.RowVersion,
		}).Info("Widget created")
		return toSave, nil
	}

	expected := toSave.RowVersion
	err := s.repo.UpdateIfVersion(ctx, toSave, expected)
	switch {
	case err == nil:
		metrics.WidgetWrites.WithLabelValues("update", "ok").Inc()
		utils.Logger.WithFields(logrus.Fields{
			"widget_id": toSave.ID,
			"version":   toSave.RowVersion,
		}).Info("Widget updated")
		return toSave, nil
	case errors.Is(err, utils.ErrRowVersionConflict):
		metrics.WidgetWrites.WithLabelValues("update", "conflict").Inc()
		return nil, &utils.AppError{StatusCode: http.StatusConflict, Code: utils.ErrCodeRowVersionConflict, Message: "Widget was modified by another request", Err: err}
	case errors.Is(err, utils.ErrWidgetNotFound):
		metrics.WidgetWrites.WithLabelValues("update", "not_found").Inc()
		return nil, &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: "Widget not found", Err: err}
	default:
		metrics.WidgetWrites.WithLabelValues("update", "error").Inc()
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to update widget", Err: err}
	}
}
