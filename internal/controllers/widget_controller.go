package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/poofware/widget-service/internal/dtos"
	"github.com/poofware/widget-service/internal/middleware"
	"github.com/poofware/widget-service/internal/models"
	"github.com/poofware/widget-service/internal/routes"
	"github.com/poofware/widget-service/internal/services"
	"github.com/poofware/widget-service/internal/utils"
)

type WidgetController struct {
	svc      services.WidgetService
	validate *validator.Validate
}

func NewWidgetController(s services.WidgetService) *WidgetController {
	return &WidgetController{
		svc:      s,
		validate: validator.New(),
	}
}

// GET /rest/widgets
func (c *WidgetController) ListWidgetsHandler(w http.ResponseWriter, r *http.Request) {
	widgets, err := c.svc.FindAll(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.Header().Set("Location", routes.Widgets)
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewWidgetsFromModels(widgets))
}

// GET /rest/widget/{id}
func (c *WidgetController) GetWidgetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := c.widgetID(w, r)
	if !ok {
		return
	}

	widget, err := c.svc.FindByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if widget == nil {
		respondWidgetNotFound(w)
		return
	}

	w.Header().Set("ETag", utils.FormatVersionETag(widget.RowVersion))
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewWidgetFromModel(*widget))
}

// POST /rest/widget
func (c *WidgetController) CreateWidgetHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeWidgetRequest(w, r)
	if !ok {
		return
	}

	created, err := c.svc.Save(r.Context(), &models.Widget{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	c.respondWithWidget(w, http.StatusCreated, created)
}

// PUT /rest/widget/{id}
//
// Unknown ids are 404 before any header or body checks. The caller's If-Match
// version is forwarded to Save untouched; the store decides whether it is stale.
func (c *WidgetController) UpdateWidgetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := c.widgetID(w, r)
	if !ok {
		return
	}

	existing, err := c.svc.FindByID(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	if existing == nil {
		respondWidgetNotFound(w)
		return
	}

	ifMatch := r.Header.Get("If-Match")
	if ifMatch == "" {
		utils.RespondErrorWithCode(w, http.StatusPreconditionRequired, utils.ErrCodePreconditionRequired, "If-Match header required", nil)
		return
	}
	expected, err := utils.ParseVersionETag(ifMatch)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "If-Match must carry a widget version", nil, err)
		return
	}

	req, ok := c.decodeWidgetRequest(w, r)
	if !ok {
		return
	}

	replacement := existing.Clone()
	replacement.Name = req.Name
	replacement.Description = req.Description
	replacement.RowVersion = expected

	updated, err := c.svc.Save(r.Context(), replacement)
	if err != nil {
		utils.Logger.WithField("request_id", middleware.RequestIDFrom(r.Context())).
			Debugf("Update of widget %d with If-Match %d rejected", id, expected)
		utils.HandleAppError(w, err)
		return
	}

	c.respondWithWidget(w, http.StatusOK, updated)
}

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func (c *WidgetController) widgetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Widget not found", nil, err)
		return 0, false
	}
	return id, true
}

func (c *WidgetController) decodeWidgetRequest(w http.ResponseWriter, r *http.Request) (dtos.WidgetRequest, bool) {
	var req dtos.WidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return req, false
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return req, false
	}
	return req, true
}

func (c *WidgetController) respondWithWidget(w http.ResponseWriter, status int, widget *models.Widget) {
	w.Header().Set("Location", routes.Widget+"/"+strconv.FormatInt(widget.ID, 10))
	w.Header().Set("ETag", utils.FormatVersionETag(widget.RowVersion))
	utils.RespondWithJSON(w, status, dtos.NewWidgetFromModel(*widget))
}

func respondWidgetNotFound(w http.ResponseWriter) {
	utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Widget not found", nil)
}
