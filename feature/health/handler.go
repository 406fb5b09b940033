package health

import (
	"dataset-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealth)
	group.Get("/storage", h.HandleStorage)
	group.Get("/database", h.HandleDatabase)
}

// HandleHealth runs all dependency checks.
// @Summary Health Check
// @Description Checks object storage and the database. Unconfigured dependencies report "disabled".
// @Tags health
// @Produce json
// @Success 200 {object} Report "All configured dependencies are healthy"
// @Failure 503 {object} Report "A configured dependency failed"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.UserContext())
	if report.Status != StatusOK {
		logger.WithRayID(h.service.logger, c).Warn("Health check failed",
			zap.String("storage", report.Storage.Status),
			zap.String("database", report.Database.Status),
		)
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleStorage checks object storage.
// @Summary Storage Health
// @Description Verifies the default bucket exists and counts its datasets.
// @Tags health
// @Produce json
// @Success 200 {object} CheckResult "Storage reachable"
// @Failure 503 {object} CheckResult "Storage check failed"
// @Router /health/storage [get]
func (h *Handler) HandleStorage(c *fiber.Ctx) error {
	return respond(c, CheckStorage(c.UserContext(), h.service.client, h.service.bucket))
}

// HandleDatabase checks the database connection.
// @Summary Database Health
// @Description Pings the configured database.
// @Tags health
// @Produce json
// @Success 200 {object} CheckResult "Database reachable"
// @Failure 503 {object} CheckResult "Database check failed"
// @Router /health/database [get]
func (h *Handler) HandleDatabase(c *fiber.Ctx) error {
	return respond(c, CheckDatabase(c.UserContext(), h.service.db))
}

func respond(c *fiber.Ctx, r CheckResult) error {
	if r.Status == StatusError {
		return c.Status(fiber.StatusServiceUnavailable).JSON(r)
	}
	return c.JSON(r)
}
