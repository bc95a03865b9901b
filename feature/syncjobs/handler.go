package syncjobs

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/core/schedule"
	"catalog-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the sync ops endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/:job/trigger", h.HandleTrigger)
}

// HandleStatus returns the state of both jobs.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.GetStatus())
}

// HandleTrigger runs a job now. With ?async=true it returns 202 immediately.
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	job := c.Params("job")
	l := logger.WithRayID(h.logger, c).With(zap.String("job", job))

	if _, err := h.service.scheduler.State(job); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	if utils.ToBool(c.Query("async")) {
		l.Info("Triggering sync in background")
		h.service.TriggerAsync(job)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted", "job": job})
	}

	l.Info("Triggering sync")
	result, err := h.service.Trigger(c.UserContext(), job)
	switch {
	case errors.Is(err, schedule.ErrUnknownJob):
		return c.Status(fiber.StatusNotFound).JSON(result)
	case IsRefusal(err):
		return c.Status(fiber.StatusConflict).JSON(result)
	}
	return c.JSON(result)
}
