package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/poofware/widget-service/internal/controllers"
	"github.com/poofware/widget-service/internal/middleware"
	"github.com/poofware/widget-service/internal/routes"
	"github.com/poofware/widget-service/internal/services"
	"github.com/poofware/widget-service/internal/utils"
)

// NewRouter wires services, controllers and middleware into one handler.
// gatherer backs /metrics; pass prometheus.DefaultGatherer in production.
func NewRouter(a *App, gatherer prometheus.Gatherer) http.Handler {
	widgetSvc := services.NewWidgetService(a.WidgetRepo)

	healthCtrl := controllers.NewHealthController(a.WidgetRepo)
	widgetCtrl := controllers.NewWidgetController(widgetSvc)

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.Metrics)

	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	router.HandleFunc(routes.Widgets, widgetCtrl.ListWidgetsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Widget, widgetCtrl.CreateWidgetHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.WidgetByID, widgetCtrl.GetWidgetHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.WidgetByID, widgetCtrl.UpdateWidgetHandler).Methods(http.MethodPut)

	allowedOrigins := []string{a.Config.AppUrl}
	if !a.Config.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "If-Match", utils.HeaderRequestID},
		ExposedHeaders:   []string{"ETag", "Location", utils.HeaderRequestID},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
