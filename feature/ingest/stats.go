package ingest

import (
	"context"
	"time"

	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports/models"

	"go.uber.org/zap"
)

// IngestStatistics fetches box scores for completed games in [start, end]
// and overwrites the stored statistics. Every numeric field is replaced
// wholesale on each refresh; box scores only grow more complete, so there
// is nothing to diff. Each game's two rows flush together, keeping a
// half-written box score invisible even when a later fetch fails.
func (s *Service) IngestStatistics(ctx context.Context, sportKey string, start, end time.Time) (Counts, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return Counts{}, err
	}

	games, err := store.GamesByDateRange(ctx, sport.ID, start, end)
	if err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, game := range games {
		if !game.IsComplete {
			continue
		}

		box, err := s.boxScores.BoxScore(ctx, game.ExternalID)
		if err != nil {
			return counts, err
		}
		if box == nil {
			s.logger.Debug("No box score yet", zap.String("game", game.ExternalID))
			counts.Skipped++
			continue
		}

		c, err := s.reconcileBoxScore(ctx, store, &game, box)
		if err != nil {
			return counts, err
		}
		if _, err := store.Flush(ctx); err != nil {
			return counts, err
		}
		counts.Merge(c)
	}

	return counts, nil
}

func (s *Service) reconcileBoxScore(ctx context.Context, store Store, game *models.Game, box *provider.BoxScore) (Counts, error) {
	var counts Counts

	sides := []struct {
		teamID uint
		box    provider.BoxTeam
	}{
		{game.HomeTeamID, box.Home},
		{game.AwayTeamID, box.Away},
	}

	for _, side := range sides {
		existing, err := store.StatisticByGameTeam(ctx, game.ID, side.teamID)
		if err != nil {
			return Counts{}, err
		}

		stat := statFromLine(game.ID, side.teamID, side.box.Statistics)
		if existing == nil {
			store.Create(stat)
			counts.Added++
			continue
		}

		stat.ID = existing.ID
		stat.CreatedAt = existing.CreatedAt
		store.Update(stat)
		counts.Updated++
	}

	return counts, nil
}

func statFromLine(gameID, teamID uint, line provider.StatLine) *models.TeamStatistic {
	return &models.TeamStatistic{
		GameID:            gameID,
		TeamID:            teamID,
		Points:            line.Points,
		FieldGoalsMade:    line.FieldGoalsMade,
		FieldGoalsAtt:     line.FieldGoalsAtt,
		ThreePointsMade:   line.ThreePointsMade,
		ThreePointsAtt:    line.ThreePointsAtt,
		FreeThrowsMade:    line.FreeThrowsMade,
		FreeThrowsAtt:     line.FreeThrowsAtt,
		OffensiveRebounds: line.OffensiveRebounds,
		DefensiveRebounds: line.DefensiveRebounds,
		Rebounds:          line.Rebounds,
		Assists:           line.Assists,
		Steals:            line.Steals,
		Blocks:            line.Blocks,
		Turnovers:         line.Turnovers,
		PersonalFouls:     line.PersonalFouls,
	}
}
