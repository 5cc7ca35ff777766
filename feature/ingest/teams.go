package ingest

import (
	"context"
	"fmt"
	"strings"

	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports/models"

	"go.uber.org/zap"
)

// IngestTeams reconciles the league hierarchy into local team rows. New
// teams are created; existing teams are updated field by field only when an
// attribute actually differs. Teams are never deleted.
func (s *Service) IngestTeams(ctx context.Context, sportKey string) (Counts, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return Counts{}, err
	}

	records, err := s.teams.Teams(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to fetch teams: %w", err)
	}
	if len(records) == 0 {
		s.logger.Warn("Provider returned no teams", zap.String("sport", sportKey))
		return Counts{}, nil
	}

	counts, err := s.reconcileTeams(ctx, store, sport, records)
	if err != nil {
		return Counts{}, err
	}

	if _, err := store.Flush(ctx); err != nil {
		return Counts{}, err
	}

	s.checkTeamCount(ctx, store, sport)
	return counts, nil
}

func (s *Service) reconcileTeams(ctx context.Context, store Store, sport *models.Sport, records []provider.TeamRecord) (Counts, error) {
	var counts Counts

	for _, rec := range records {
		if rec.ID == "" || rec.Name == "" {
			s.logger.Warn("Skipping malformed team record",
				zap.String("external_id", rec.ID),
				zap.String("name", rec.Name))
			counts.Skipped++
			continue
		}

		existing, err := store.TeamByExternalID(ctx, sport.ID, rec.ID)
		if err != nil {
			return Counts{}, err
		}

		name := fullTeamName(rec)
		if existing == nil {
			store.Create(&models.Team{
				SportID:      sport.ID,
				ExternalID:   rec.ID,
				Name:         name,
				Abbreviation: rec.Alias,
				City:         rec.Market,
			})
			counts.Added++
			continue
		}

		changed := false
		if existing.Name != name {
			existing.Name = name
			changed = true
		}
		if existing.Abbreviation != rec.Alias {
			existing.Abbreviation = rec.Alias
			changed = true
		}
		if existing.City != rec.Market {
			existing.City = rec.Market
			changed = true
		}

		// A team with several changed fields still counts once.
		if changed {
			store.Update(existing)
			counts.Updated++
		} else {
			counts.Unchanged++
		}
	}

	return counts, nil
}

// checkTeamCount warns when the local roster disagrees with the expected
// league size. Advisory only; feeds shrink during provider outages.
func (s *Service) checkTeamCount(ctx context.Context, store Store, sport *models.Sport) {
	if sport.ExpectedTeamCount <= 0 {
		return
	}
	count, err := store.CountTeams(ctx, sport.ID)
	if err != nil {
		s.logger.Warn("Failed to count teams", zap.Error(err))
		return
	}
	if int(count) != sport.ExpectedTeamCount {
		s.logger.Warn("Unexpected team count",
			zap.String("sport", sport.Key),
			zap.Int64("have", count),
			zap.Int("want", sport.ExpectedTeamCount))
	}
}

func fullTeamName(rec provider.TeamRecord) string {
	return strings.TrimSpace(rec.Market + " " + rec.Name)
}
