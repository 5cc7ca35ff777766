package sports

import (
	"errors"
	"time"

	"moneyball/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Handler handles HTTP requests for sports data queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sports query routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Get("/games/by-date-range", h.HandleGamesByDateRange)
	api.Get("/teams/stats/by-date-range", h.HandleStatsByDateRange)
	api.Get("/odds/by-date-range", h.HandleOddsByDateRange)
}

// HandleGamesByDateRange returns games for a sport between two dates.
func (h *Handler) HandleGamesByDateRange(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sport, start, end, err := rangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	games, err := h.service.GamesByDateRange(c.Context(), sport, start, end)
	if err != nil {
		return h.queryError(c, l, "games query failed", err)
	}

	return c.JSON(fiber.Map{"count": len(games), "games": games})
}

// HandleStatsByDateRange returns per-team box scores grouped by game.
func (h *Handler) HandleStatsByDateRange(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sport, start, end, err := rangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	stats, err := h.service.StatisticsByDateRange(c.Context(), sport, start, end)
	if err != nil {
		return h.queryError(c, l, "statistics query failed", err)
	}

	return c.JSON(fiber.Map{"count": len(stats), "games": stats})
}

// HandleOddsByDateRange returns odds snapshots grouped by game.
func (h *Handler) HandleOddsByDateRange(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sport, start, end, err := rangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	odds, err := h.service.OddsByDateRange(c.Context(), sport, start, end)
	if err != nil {
		return h.queryError(c, l, "odds query failed", err)
	}

	return c.JSON(fiber.Map{"count": len(odds), "games": odds})
}

func (h *Handler) queryError(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	if errors.Is(err, ErrSportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func rangeParams(c *fiber.Ctx) (sport string, start, end time.Time, err error) {
	sport = c.Query("sport", "nba")

	start, err = time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		return "", time.Time{}, time.Time{}, errors.New("startDate must be YYYY-MM-DD")
	}
	end, err = time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		return "", time.Time{}, time.Time{}, errors.New("endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return "", time.Time{}, time.Time{}, errors.New("endDate must not be before startDate")
	}
	return sport, start, end, nil
}
