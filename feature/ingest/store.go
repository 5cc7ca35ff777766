package ingest

import (
	"context"
	"time"

	"moneyball/feature/sports/models"
)

// Store is the persistence surface a reconciliation pass works against.
// Lookups read committed state only; Create and Update buffer mutations
// until the single Flush at the end of the pass. *sports.Store implements
// this.
type Store interface {
	SportByKey(ctx context.Context, key string) (*models.Sport, error)
	Sports(ctx context.Context) ([]models.Sport, error)
	TeamByExternalID(ctx context.Context, sportID uint, externalID string) (*models.Team, error)
	CountTeams(ctx context.Context, sportID uint) (int64, error)
	GameByExternalID(ctx context.Context, sportID uint, externalID string) (*models.Game, error)
	GamesByDateRange(ctx context.Context, sportID uint, start, end time.Time) ([]models.Game, error)
	GamesAround(ctx context.Context, sportID uint, at time.Time, window time.Duration) ([]models.Game, error)
	StatisticByGameTeam(ctx context.Context, gameID, teamID uint) (*models.TeamStatistic, error)

	Create(value any)
	Update(value any)
	Pending() int
	Flush(ctx context.Context) (int, error)
}
