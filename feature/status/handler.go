package status

import (
	"context"

	"cloud-sync/core/logger"
	"cloud-sync/core/syncer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Runner triggers a single synchronization pass.
type Runner interface {
	Sync(ctx context.Context, progress syncer.ProgressFunc) error
}

// Handler handles HTTP requests for sync status and manual triggers.
type Handler struct {
	service *Service
	runner  Runner
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, runner Runner) *Handler {
	return &Handler{service: service, runner: runner}
}

// RegisterRoutes registers the sync status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Get("/events", h.HandleEvents)
	group.Post("/run", h.HandleRun)
}

// HandleStatus returns the aggregate sync summary.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Debug("Serving sync status")
	return c.JSON(h.service.Snapshot())
}

// HandleEvents returns the recent state transitions, oldest first.
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Debug("Serving sync events")
	return c.JSON(fiber.Map{"events": h.service.Events()})
}

// HandleRun triggers a sync pass in the background. A pass that is
// already running is not interrupted; the engine reports the rejection
// through the progress callback instead.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Manual sync triggered")

	go func() {
		if err := h.runner.Sync(context.Background(), h.service.Progress()); err != nil {
			h.service.logger.Error("Manual sync failed", zap.Error(err))
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "started"})
}
