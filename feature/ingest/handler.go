package ingest

import (
	"context"
	"errors"
	"time"

	"moneyball/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Handler exposes ingestion triggers over HTTP. Calls run synchronously
// and report the reconciliation counts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ingestion routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/ingest")
	group.Post("/teams", h.HandleTeams)
	group.Post("/schedule", h.HandleSchedule)
	group.Post("/stats", h.HandleStatistics)
	group.Post("/odds", h.HandleOdds)
	group.Post("/full", h.HandleFull)
	group.Post("/update", h.HandleUpdate)
}

// HandleTeams reconciles the league roster.
func (h *Handler) HandleTeams(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	counts, err := h.service.IngestTeams(c.Context(), c.Query("sport", "nba"))
	if err != nil {
		l.Error("Team ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(counts)
}

// HandleSchedule reconciles the schedule for a date range.
func (h *Handler) HandleSchedule(c *fiber.Ctx) error {
	return h.rangedOp(c, h.service.IngestSchedule)
}

// HandleStatistics refreshes box scores for completed games in a range.
func (h *Handler) HandleStatistics(c *fiber.Ctx) error {
	return h.rangedOp(c, h.service.IngestStatistics)
}

// HandleOdds records current odds snapshots for games in a date range.
func (h *Handler) HandleOdds(c *fiber.Ctx) error {
	return h.rangedOp(c, h.service.IngestOdds)
}

// HandleFull runs the sequential full ingestion for a date range.
func (h *Handler) HandleFull(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sport, start, end, err := ingestParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.RunFullIngestion(c.Context(), sport, start, end); err != nil {
		l.Error("Full ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleUpdate runs one scheduled update cycle immediately.
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.RunScheduledUpdate(c.Context()); err != nil {
		l.Error("Update cycle failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) rangedOp(c *fiber.Ctx, op func(ctx context.Context, sport string, start, end time.Time) (Counts, error)) error {
	l := logger.WithRayID(h.service.logger, c)

	sport, start, end, err := ingestParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	counts, err := op(c.Context(), sport, start, end)
	if err != nil {
		l.Error("Ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(counts)
}

func ingestParams(c *fiber.Ctx) (sport string, start, end time.Time, err error) {
	sport = c.Query("sport", "nba")

	start, err = time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		return "", time.Time{}, time.Time{}, errors.New("start must be YYYY-MM-DD")
	}
	end, err = time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		return "", time.Time{}, time.Time{}, errors.New("end must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return "", time.Time{}, time.Time{}, errors.New("end must not be before start")
	}
	return sport, start, end, nil
}
