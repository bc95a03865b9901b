package integrity

import (
	"errors"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check and returns a combined report.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if schemaReport, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schemaReport
	}

	storageReport, err := h.service.CheckStorage(c.Context())
	switch {
	case errors.Is(err, ErrStorageDisabled):
		report["storage"] = map[string]interface{}{"status": "skipped"}
	case err != nil:
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	default:
		report["storage"] = storageReport
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the sync tables.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if !report.Matched {
		l.Warn("Schema mismatch detected", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally creates the snapshot bucket.
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckStorage(c.Context())
	if errors.Is(err, ErrStorageDisabled) {
		return c.JSON(fiber.Map{"status": "skipped"})
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Exists {
		l.Warn("Snapshot bucket missing", zap.String("bucket", report.Bucket))

		if fix {
			if err := h.service.FixStorage(c.Context()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create bucket",
					"details": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"bucket": report.Bucket,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"bucket": report.Bucket,
		"exists": report.Exists,
	})
}
