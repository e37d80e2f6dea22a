package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agriempower/backend/internal/domain"
	"github.com/agriempower/backend/internal/service"
	"github.com/agriempower/backend/pkg/utils"
)

const maxSoilSamples = 1000

// Handler contains all HTTP handlers
type Handler struct {
	advisorySvc    *service.AdvisoryService
	monitoringSvc  *service.MonitoringService
	directorySvc   *service.DirectoryService
	repo           service.AuditRepository
	maxUploadBytes int64
}

// NewHandler creates a new handler
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		advisorySvc:    deps.Advisory,
		monitoringSvc:  deps.Monitoring,
		directorySvc:   deps.Directory,
		repo:           deps.Repo,
		maxUploadBytes: deps.MaxUploadBytes,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if err := h.repo.Health(c.Context()); err != nil {
		storage = "unavailable"
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "agriempower-backend",
		"version": "1.0.0",
		"storage": storage,
	})
}

// GetSoilSamples returns a freshly generated labeled soil batch
func (h *Handler) GetSoilSamples(c *fiber.Ctx) error {
	n := utils.ClampInt(c.QueryInt("n", 100), 1, maxSoilSamples)
	samples := h.advisorySvc.SoilSamples(n)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    samples,
		"count":   len(samples),
	})
}

// PredictFertility trains the forest and classifies the submitted soil parameters
func (h *Handler) PredictFertility(c *fiber.Ctx) error {
	var req predictRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	prediction, err := h.advisorySvc.Predict(c.Context(), req.features())
	if err != nil {
		return domainError(err, "Failed to predict soil fertility")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    prediction,
	})
}

// GetRecentPredictions returns audited predictions, newest first
func (h *Handler) GetRecentPredictions(c *fiber.Ctx) error {
	limit := utils.ClampInt(c.QueryInt("limit", 20), 1, 100)

	logs, err := h.advisorySvc.RecentPredictions(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch prediction history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    logs,
		"count":   len(logs),
	})
}

// GetCropSeries returns the crop trend series with summary statistics
func (h *Handler) GetCropSeries(c *fiber.Ctx) error {
	region, ok := domain.ParseRegion(c.Query("region"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown region; use All, North, South, East or West")
	}

	// days omitted uses the configured series length
	days := 0
	if c.Query("days") != "" {
		days = c.QueryInt("days", 0)
		if days < 1 || days > 365 {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 365")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.monitoringSvc.CropSeries(days, region),
	})
}

// AnalyzeCropImage classifies an uploaded crop photo
func (h *Handler) AnalyzeCropImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing image file field")
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image is too large")
	}

	f, err := file.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not open uploaded image")
	}
	defer f.Close()

	result, err := h.monitoringSvc.AnalyzeImage(c.Context(), f, file.Filename)
	if err != nil {
		return domainError(err, "Failed to analyze crop image")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetSchemes lists government support schemes
func (h *Handler) GetSchemes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.directorySvc.Schemes()})
}

// GetResources lists mental-health resources
func (h *Handler) GetResources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.directorySvc.Resources()})
}

// GetRegions returns the regional overview for the map view
func (h *Handler) GetRegions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.directorySvc.Regions()})
}

// GetReports returns recent community reports
func (h *Handler) GetReports(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.directorySvc.RecentReports()})
}

// SubmitReport validates a community report and echoes it back
func (h *Handler) SubmitReport(c *fiber.Ctx) error {
	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report := h.directorySvc.SubmitReport(req.report())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    report,
	})
}
