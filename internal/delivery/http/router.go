package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agriempower/backend/internal/service"
)

// Dependencies are the services the HTTP layer serves
type Dependencies struct {
	Advisory       *service.AdvisoryService
	Monitoring     *service.MonitoringService
	Directory      *service.DirectoryService
	Repo           service.AuditRepository
	Gatherer       prometheus.Gatherer
	MaxUploadBytes int64
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	handler := NewHandler(deps)

	// Health check
	app.Get("/health", handler.HealthCheck)

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Soil fertility advisory
		api.Get("/soil/samples", handler.GetSoilSamples)
		api.Post("/soil/predict", handler.PredictFertility)
		api.Get("/soil/predictions", handler.GetRecentPredictions)

		// Crop monitoring
		api.Get("/crop/series", handler.GetCropSeries)
		api.Post("/crop/analyze", handler.AnalyzeCropImage)

		// Directory content
		api.Get("/schemes", handler.GetSchemes)
		api.Get("/resources", handler.GetResources)
		api.Get("/regions", handler.GetRegions)
		api.Get("/reports", handler.GetReports)
		api.Post("/reports", handler.SubmitReport)
	}
}
