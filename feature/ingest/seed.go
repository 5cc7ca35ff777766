package ingest

import (
	"context"
	"errors"

	"moneyball/feature/sports"
	"moneyball/feature/sports/models"

	"go.uber.org/zap"
)

// defaultSports are the reference rows ingestion depends on. Seeding is
// idempotent; existing rows are left untouched.
var defaultSports = []models.Sport{
	{Key: "nba", Name: "National Basketball Association", ExpectedTeamCount: 30},
}

// SeedSports creates any missing sport reference rows.
func (s *Service) SeedSports(ctx context.Context) error {
	store := s.stores()

	created := 0
	for _, sport := range defaultSports {
		_, err := store.SportByKey(ctx, sport.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, sports.ErrSportNotFound) {
			return err
		}
		row := sport
		store.Create(&row)
		created++
	}

	if created > 0 {
		if _, err := store.Flush(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("Sports seeded", zap.Int("created", created))
	return nil
}
