package ingest

import (
	"context"
	"fmt"
	"time"

	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports/models"

	"go.uber.org/zap"
)

// IngestSchedule reconciles the provider schedule for [start, end] into
// local game rows. Games whose teams are not known locally are skipped with
// a warning rather than failing the pass; the next run picks them up once
// the roster catches up.
func (s *Service) IngestSchedule(ctx context.Context, sportKey string, start, end time.Time) (Counts, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return Counts{}, err
	}

	records, err := s.schedule.Schedule(ctx, start, end)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	counts, err := s.reconcileGames(ctx, store, sport, records)
	if err != nil {
		return Counts{}, err
	}

	if _, err := store.Flush(ctx); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *Service) reconcileGames(ctx context.Context, store Store, sport *models.Sport, records []provider.GameRecord) (Counts, error) {
	var counts Counts

	for _, rec := range records {
		if rec.ID == "" || rec.Home.ID == "" || rec.Away.ID == "" {
			s.logger.Warn("Skipping malformed game record", zap.String("external_id", rec.ID))
			counts.Skipped++
			continue
		}

		home, err := store.TeamByExternalID(ctx, sport.ID, rec.Home.ID)
		if err != nil {
			return Counts{}, err
		}
		away, err := store.TeamByExternalID(ctx, sport.ID, rec.Away.ID)
		if err != nil {
			return Counts{}, err
		}
		if home == nil || away == nil {
			s.logger.Warn("Skipping game with unknown team",
				zap.String("external_id", rec.ID),
				zap.String("home", rec.Home.ID),
				zap.String("away", rec.Away.ID))
			counts.Skipped++
			continue
		}

		existing, err := store.GameByExternalID(ctx, sport.ID, rec.ID)
		if err != nil {
			return Counts{}, err
		}

		if existing == nil {
			store.Create(&models.Game{
				SportID:    sport.ID,
				ExternalID: rec.ID,
				HomeTeamID: home.ID,
				AwayTeamID: away.ID,
				GameDate:   rec.Scheduled,
				HomeScore:  rec.HomePoints,
				AwayScore:  rec.AwayPoints,
				Status:     MapStatus(rec.Status),
				IsComplete: IsTerminal(rec.Status),
			})
			counts.Added++
			continue
		}

		if s.applyGameRecord(existing, rec) {
			store.Update(existing)
			counts.Updated++
		} else {
			counts.Unchanged++
		}
	}

	return counts, nil
}

// applyGameRecord merges a schedule record into an existing game and
// reports whether anything changed. Completion only moves forward: a
// settled game keeps its final status whatever later feeds claim, though
// score corrections still land.
func (s *Service) applyGameRecord(game *models.Game, rec provider.GameRecord) bool {
	changed := false

	if !rec.Scheduled.IsZero() && !game.GameDate.Equal(rec.Scheduled) {
		game.GameDate = rec.Scheduled
		changed = true
	}

	if rec.HomePoints != nil && (game.HomeScore == nil || *game.HomeScore != *rec.HomePoints) {
		game.HomeScore = rec.HomePoints
		changed = true
	}
	if rec.AwayPoints != nil && (game.AwayScore == nil || *game.AwayScore != *rec.AwayPoints) {
		game.AwayScore = rec.AwayPoints
		changed = true
	}

	status := MapStatus(rec.Status)
	if game.IsComplete {
		// No status regression once settled.
		if game.Status != models.StatusFinal {
			game.Status = models.StatusFinal
			changed = true
		}
	} else {
		if game.Status != status {
			game.Status = status
			changed = true
		}
		if game.MarkComplete(IsTerminal(rec.Status)) {
			changed = true
		}
	}

	return changed
}

// UpdateResults re-reads the schedule for a past window to catch late
// scores and settlements, then overwrites box score statistics for games
// that finished.
func (s *Service) UpdateResults(ctx context.Context, sportKey string, start, end time.Time) (Counts, error) {
	counts, err := s.IngestSchedule(ctx, sportKey, start, end)
	if err != nil {
		return Counts{}, err
	}

	statCounts, err := s.IngestStatistics(ctx, sportKey, start, end)
	if err != nil {
		return Counts{}, err
	}

	counts.Merge(statCounts)
	return counts, nil
}
