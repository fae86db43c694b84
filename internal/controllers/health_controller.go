package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/poofware/widget-service/internal/dtos"
	"github.com/poofware/widget-service/internal/repositories"
	"github.com/poofware/widget-service/internal/utils"
)

const healthCheckTimeout = 2 * time.Second

type HealthController struct {
	repo repositories.WidgetRepository
}

func NewHealthController(repo repositories.WidgetRepository) *HealthController {
	return &HealthController{repo: repo}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := c.repo.Ping(ctx); err != nil {
		utils.Logger.WithError(err).Error("widget-service store unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Store unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
