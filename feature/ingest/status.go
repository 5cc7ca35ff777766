package ingest

import (
	"strings"

	"moneyball/feature/sports/models"
)

// statusAliases maps normalized provider status strings to internal states.
var statusAliases = map[string]models.GameStatus{
	"scheduled":   models.StatusScheduled,
	"created":     models.StatusScheduled,
	"time-tbd":    models.StatusScheduled,
	"inprogress":  models.StatusInProgress,
	"in progress": models.StatusInProgress,
	"live":        models.StatusInProgress,
	"halftime":    models.StatusInProgress,
	"closed":      models.StatusFinal,
	"complete":    models.StatusFinal,
	"final":       models.StatusFinal,
	"postponed":   models.StatusPostponed,
	"delayed":     models.StatusPostponed,
	"suspended":   models.StatusPostponed,
	"cancelled":   models.StatusCancelled,
	"canceled":    models.StatusCancelled,
}

// MapStatus converts a provider status string to the internal game state.
// Matching is case-insensitive and whitespace-tolerant. Anything
// unrecognized maps to Unknown, never to Scheduled: an unknown state must
// not look like an upcoming game.
func MapStatus(raw string) models.GameStatus {
	if status, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return models.StatusUnknown
}

// IsTerminal reports whether a provider status marks the game as played to
// completion. Postponed and cancelled games are not terminal; they may be
// rescheduled.
func IsTerminal(raw string) bool {
	return MapStatus(raw) == models.StatusFinal
}
