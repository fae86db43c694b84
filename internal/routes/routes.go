package routes

const (
	// Health
	Health  = "/health"
	Metrics = "/metrics"

	// Widget endpoints
	Widgets    = "/rest/widgets"
	Widget     = "/rest/widget"
	WidgetByID = "/rest/widget/{id:[0-9]+}"
)
