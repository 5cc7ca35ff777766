package sports

import (
	"context"
	"time"

	"moneyball/feature/sports/models"

	"go.uber.org/zap"
)

// GameStatistics pairs a game with its per-team box score rows.
type GameStatistics struct {
	Game       models.Game            `json:"game"`
	Statistics []models.TeamStatistic `json:"statistics"`
}

// GameOdds pairs a game with its odds snapshots, newest first per bookmaker.
type GameOdds struct {
	Game models.Game   `json:"game"`
	Odds []models.Odds `json:"odds"`
}

// Service answers date-range queries against the local store.
type Service struct {
	stores func() *Store
	logger *zap.Logger
}

// NewService creates a new sports query service. Each call gets a fresh
// store from the factory.
func NewService(stores func() *Store, logger *zap.Logger) *Service {
	return &Service{stores: stores, logger: logger}
}

// GamesByDateRange returns all games for a sport with dates in [start, end],
// end inclusive to the whole day.
func (s *Service) GamesByDateRange(ctx context.Context, sportKey string, start, end time.Time) ([]models.Game, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return nil, err
	}
	return store.GamesByDateRange(ctx, sport.ID, start, endOfDay(end))
}

// StatisticsByDateRange returns box scores grouped by game for the range.
// Games without statistics yet are omitted.
func (s *Service) StatisticsByDateRange(ctx context.Context, sportKey string, start, end time.Time) ([]GameStatistics, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	games, err := store.GamesByDateRange(ctx, sport.ID, start, endOfDay(end))
	if err != nil {
		return nil, err
	}

	stats, err := store.StatisticsByGameIDs(ctx, gameIDs(games))
	if err != nil {
		return nil, err
	}

	byGame := make(map[uint][]models.TeamStatistic, len(games))
	for _, st := range stats {
		byGame[st.GameID] = append(byGame[st.GameID], st)
	}

	var out []GameStatistics
	for _, g := range games {
		if rows, ok := byGame[g.ID]; ok {
			out = append(out, GameStatistics{Game: g, Statistics: rows})
		}
	}
	return out, nil
}

// OddsByDateRange returns odds snapshots grouped by game for the range.
// Games without quotes are omitted.
func (s *Service) OddsByDateRange(ctx context.Context, sportKey string, start, end time.Time) ([]GameOdds, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	games, err := store.GamesByDateRange(ctx, sport.ID, start, endOfDay(end))
	if err != nil {
		return nil, err
	}

	odds, err := store.OddsByGameIDs(ctx, gameIDs(games))
	if err != nil {
		return nil, err
	}

	byGame := make(map[uint][]models.Odds, len(games))
	for _, o := range odds {
		byGame[o.GameID] = append(byGame[o.GameID], o)
	}

	var out []GameOdds
	for _, g := range games {
		if rows, ok := byGame[g.ID]; ok {
			out = append(out, GameOdds{Game: g, Odds: rows})
		}
	}
	return out, nil
}

func gameIDs(games []models.Game) []uint {
	ids := make([]uint, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	return ids
}

func endOfDay(d time.Time) time.Time {
	return d.Add(24*time.Hour - time.Nanosecond)
}
