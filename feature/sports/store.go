package sports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moneyball/feature/sports/models"

	"gorm.io/gorm"
)

// ErrSportNotFound signals a missing seed row. Ingestion treats this as a
// configuration failure and aborts the whole call for that sport.
var ErrSportNotFound = errors.New("sport not found")

type writeOp int

const (
	opCreate writeOp = iota
	opSave
)

type pendingWrite struct {
	op    writeOp
	value any
}

// Store is the persistence surface for one reconciliation pass. Reads hit
// the database directly; writes are buffered in memory and flushed exactly
// once in a single transaction, giving per-call atomicity. A Store must not
// be shared across concurrently running passes.
type Store struct {
	db      *gorm.DB
	pending []pendingWrite
}

// NewStore creates a store on top of an established connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SportByID loads a sport seed row, wrapping ErrSportNotFound when missing.
func (s *Store) SportByID(ctx context.Context, id uint) (*models.Sport, error) {
	var sport models.Sport
	if err := s.db.WithContext(ctx).First(&sport, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sport id %d: %w", id, ErrSportNotFound)
		}
		return nil, fmt.Errorf("failed to load sport %d: %w", id, err)
	}
	return &sport, nil
}

// SportByKey loads a sport by its short key (e.g. "nba").
func (s *Store) SportByKey(ctx context.Context, key string) (*models.Sport, error) {
	var sport models.Sport
	if err := s.db.WithContext(ctx).Where("`key` = ?", key).First(&sport).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sport %q: %w", key, ErrSportNotFound)
		}
		return nil, fmt.Errorf("failed to load sport %q: %w", key, err)
	}
	return &sport, nil
}

// Sports lists all seeded sports.
func (s *Store) Sports(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	if err := s.db.WithContext(ctx).Order("id").Find(&sports).Error; err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}

// TeamByExternalID looks up a team by its provider identity. A missing team
// is (nil, nil) rather than an error; callers decide whether that is a skip
// or a create.
func (s *Store) TeamByExternalID(ctx context.Context, sportID uint, externalID string) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Where("sport_id = ? AND external_id = ?", sportID, externalID).
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up team %q: %w", externalID, err)
	}
	return &team, nil
}

// CountTeams returns the number of local teams for a sport.
func (s *Store) CountTeams(ctx context.Context, sportID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Team{}).
		Where("sport_id = ?", sportID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

// GameByExternalID looks up a game by its provider identity; (nil, nil)
// when absent.
func (s *Store) GameByExternalID(ctx context.Context, sportID uint, externalID string) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Where("sport_id = ? AND external_id = ?", sportID, externalID).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up game %q: %w", externalID, err)
	}
	return &game, nil
}

// GamesByDateRange returns games scheduled in [start, end] with teams
// preloaded.
func (s *Store) GamesByDateRange(ctx context.Context, sportID uint, start, end time.Time) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Preload("HomeTeam").Preload("AwayTeam").
		Where("sport_id = ? AND game_date >= ? AND game_date <= ?", sportID, start, end).
		Order("game_date").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load games by date range: %w", err)
	}
	return games, nil
}

// GamesAround returns games whose date falls within at±window, with teams
// preloaded. Used for time-window odds matching.
func (s *Store) GamesAround(ctx context.Context, sportID uint, at time.Time, window time.Duration) ([]models.Game, error) {
	return s.GamesByDateRange(ctx, sportID, at.Add(-window), at.Add(window))
}

// StatisticByGameTeam looks up one team's box score row for a game;
// (nil, nil) when absent.
func (s *Store) StatisticByGameTeam(ctx context.Context, gameID, teamID uint) (*models.TeamStatistic, error) {
	var stat models.TeamStatistic
	err := s.db.WithContext(ctx).
		Where("game_id = ? AND team_id = ?", gameID, teamID).
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up statistic: %w", err)
	}
	return &stat, nil
}

// StatisticsByGameIDs returns all box score rows for the given games.
func (s *Store) StatisticsByGameIDs(ctx context.Context, gameIDs []uint) ([]models.TeamStatistic, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	var stats []models.TeamStatistic
	err := s.db.WithContext(ctx).
		Where("game_id IN ?", gameIDs).
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}
	return stats, nil
}

// OddsByGameIDs returns all odds snapshots for the given games, newest first
// per bookmaker.
func (s *Store) OddsByGameIDs(ctx context.Context, gameIDs []uint) ([]models.Odds, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	var odds []models.Odds
	err := s.db.WithContext(ctx).
		Where("game_id IN ?", gameIDs).
		Order("game_id, bookmaker, recorded_at DESC").
		Find(&odds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load odds: %w", err)
	}
	return odds, nil
}

// Create buffers an insert until Flush.
func (s *Store) Create(value any) {
	s.pending = append(s.pending, pendingWrite{op: opCreate, value: value})
}

// Update buffers a full-row save until Flush.
func (s *Store) Update(value any) {
	s.pending = append(s.pending, pendingWrite{op: opSave, value: value})
}

// Pending returns the number of buffered writes.
func (s *Store) Pending() int {
	return len(s.pending)
}

// Flush writes all buffered mutations in one transaction and returns the
// number of affected rows. The buffer is cleared only on success, so a
// failed flush can be retried by the caller.
func (s *Store) Flush(ctx context.Context) (int, error) {
	if len(s.pending) == 0 {
		return 0, nil
	}

	affected := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, w := range s.pending {
			var res *gorm.DB
			switch w.op {
			case opCreate:
				res = tx.Create(w.value)
			case opSave:
				res = tx.Save(w.value)
			}
			if res.Error != nil {
				return res.Error
			}
			affected += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to flush %d pending writes: %w", len(s.pending), err)
	}

	s.pending = s.pending[:0]
	return affected, nil
}
