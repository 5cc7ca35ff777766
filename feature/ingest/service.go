package ingest

import (
	"context"
	"sync"
	"time"

	"moneyball/core/logger"
	"moneyball/feature/ingest/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TeamSource provides the league hierarchy feed.
type TeamSource interface {
	Teams(ctx context.Context) ([]provider.TeamRecord, error)
}

// ScheduleSource provides daily schedule feeds over a date range.
type ScheduleSource interface {
	Schedule(ctx context.Context, start, end time.Time) ([]provider.GameRecord, error)
}

// BoxScoreSource provides per-game box scores; nil when none exists yet.
type BoxScoreSource interface {
	BoxScore(ctx context.Context, gameID string) (*provider.BoxScore, error)
}

// EventOddsSource provides team-name keyed odds events for a sport.
type EventOddsSource interface {
	EventOdds(ctx context.Context, sportKey string) ([]provider.EventOdds, error)
}

// MarketOddsSource provides numeric-outcome market odds for a known game.
type MarketOddsSource interface {
	MarketOdds(ctx context.Context, gameID string) (*provider.MarketOdds, error)
}

// Deps wires the ingestion service. Stores must return a fresh store per
// call; concurrent reconciliation passes never share write buffers.
type Deps struct {
	Stores     func() Store
	Teams      TeamSource
	Schedule   ScheduleSource
	BoxScores  BoxScoreSource
	EventOdds  EventOddsSource
	MarketOdds MarketOddsSource
	Logger     *zap.Logger
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
	// DaysBack and DaysForward bound the scheduled update window.
	DaysBack    int
	DaysForward int
}

type sportHandler func(ctx context.Context, l *zap.Logger, sportKey string)

// Service runs ingestion and the periodic update cycle.
type Service struct {
	stores      func() Store
	teams       TeamSource
	schedule    ScheduleSource
	boxScores   BoxScoreSource
	eventOdds   EventOddsSource
	marketOdds  MarketOddsSource
	logger      *zap.Logger
	now         func() time.Time
	daysBack    int
	daysForward int

	// cycleMu keeps scheduled cycles from overlapping: a slow cycle makes
	// the next tick a no-op instead of stacking up.
	cycleMu sync.Mutex

	handlers map[string]sportHandler
}

// NewService creates the ingestion service.
func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Service{
		stores:      deps.Stores,
		teams:       deps.Teams,
		schedule:    deps.Schedule,
		boxScores:   deps.BoxScores,
		eventOdds:   deps.EventOdds,
		marketOdds:  deps.MarketOdds,
		logger:      deps.Logger,
		now:         deps.Now,
		daysBack:    deps.DaysBack,
		daysForward: deps.DaysForward,
	}
	s.handlers = map[string]sportHandler{
		"nba": s.updateSport,
	}
	return s
}

// RunFullIngestion seeds a sport from scratch: teams, then the schedule for
// [start, end], then current odds. Stages run strictly in order and the
// first failure aborts the rest; later stages depend on earlier rows.
func (s *Service) RunFullIngestion(ctx context.Context, sportKey string, start, end time.Time) error {
	l := s.logger.With(zap.String("sport", sportKey))
	l.Info("Full ingestion started",
		zap.Time("start", start),
		zap.Time("end", end))

	counts, err := s.IngestTeams(ctx, sportKey)
	if err != nil {
		return err
	}
	l.Info("Teams reconciled", counts.Fields()...)

	counts, err = s.IngestSchedule(ctx, sportKey, start, end)
	if err != nil {
		return err
	}
	l.Info("Schedule reconciled", counts.Fields()...)

	counts, err = s.IngestOdds(ctx, sportKey, start, end)
	if err != nil {
		return err
	}
	l.Info("Odds reconciled", counts.Fields()...)

	l.Info("Full ingestion finished")
	return nil
}

// RunScheduledUpdate executes one update cycle over every seeded sport. If
// the previous cycle is still running the call is a no-op. Unit failures
// are logged and isolated; the cycle itself only fails when the sport list
// cannot be loaded.
func (s *Service) RunScheduledUpdate(ctx context.Context) error {
	if !s.cycleMu.TryLock() {
		s.logger.Warn("Previous update cycle still running, skipping")
		return nil
	}
	defer s.cycleMu.Unlock()

	l := logger.WithCycle(s.logger, uuid.NewString())
	l.Info("Update cycle started")

	sports, err := s.stores().Sports(ctx)
	if err != nil {
		l.Error("Failed to load sports", zap.Error(err))
		return err
	}

	var wg sync.WaitGroup
	for _, sport := range sports {
		handler, ok := s.handlers[sport.Key]
		if !ok {
			l.Info("No update handler for sport", zap.String("sport", sport.Key))
			continue
		}
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			handler(ctx, l.With(zap.String("sport", key)), key)
		}(sport.Key)
	}
	wg.Wait()

	l.Info("Update cycle finished")
	return nil
}

// updateSport runs the three independent update units for one sport
// concurrently: schedule refresh, odds refresh, results update. A failing
// unit is logged and does not stop the others.
func (s *Service) updateSport(ctx context.Context, l *zap.Logger, sportKey string) {
	now := s.now()
	back := now.AddDate(0, 0, -s.daysBack)
	forward := now.AddDate(0, 0, s.daysForward)

	units := []struct {
		name string
		run  func() (Counts, error)
	}{
		{"schedule-refresh", func() (Counts, error) {
			return s.IngestSchedule(ctx, sportKey, now, forward)
		}},
		{"odds-refresh", func() (Counts, error) {
			return s.IngestOdds(ctx, sportKey, now, forward)
		}},
		{"results-update", func() (Counts, error) {
			return s.UpdateResults(ctx, sportKey, back, now)
		}},
	}

	var wg sync.WaitGroup
	for _, unit := range units {
		wg.Add(1)
		go func(name string, run func() (Counts, error)) {
			defer wg.Done()
			counts, err := run()
			if err != nil {
				l.Error("Update unit failed",
					zap.String("unit", name),
					zap.Error(err))
				return
			}
			l.Info("Update unit finished",
				append([]zap.Field{zap.String("unit", name)}, counts.Fields()...)...)
		}(unit.name, unit.run)
	}
	wg.Wait()
}
