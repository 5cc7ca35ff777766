package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports"
	"moneyball/feature/sports/models"

	"go.uber.org/zap"
)

// fakeDB is the committed state shared by all stores a test hands out.
// Buffered writes only become visible here on Flush, mirroring the real
// store's read-committed behavior.
type fakeDB struct {
	mu      sync.Mutex
	sports  []models.Sport
	teams   []models.Team
	games   []models.Game
	stats   []models.TeamStatistic
	odds    []models.Odds
	nextID  uint
	flushes int
}

func newFakeDB(seed ...models.Sport) *fakeDB {
	db := &fakeDB{nextID: 1}
	for _, s := range seed {
		if s.ID == 0 {
			s.ID = db.nextID
			db.nextID++
		}
		db.sports = append(db.sports, s)
	}
	return db
}

func (db *fakeDB) store() *fakeStore {
	return &fakeStore{db: db}
}

func (db *fakeDB) teamByID(id uint) *models.Team {
	for i := range db.teams {
		if db.teams[i].ID == id {
			t := db.teams[i]
			return &t
		}
	}
	return nil
}

type fakeWrite struct {
	create bool
	value  any
}

type fakeStore struct {
	db      *fakeDB
	pending []fakeWrite
}

func (s *fakeStore) SportByKey(_ context.Context, key string) (*models.Sport, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.sports {
		if s.db.sports[i].Key == key {
			sp := s.db.sports[i]
			return &sp, nil
		}
	}
	return nil, fmt.Errorf("sport %q: %w", key, sports.ErrSportNotFound)
}

func (s *fakeStore) Sports(context.Context) ([]models.Sport, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := make([]models.Sport, len(s.db.sports))
	copy(out, s.db.sports)
	return out, nil
}

func (s *fakeStore) TeamByExternalID(_ context.Context, sportID uint, externalID string) (*models.Team, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.teams {
		if s.db.teams[i].SportID == sportID && s.db.teams[i].ExternalID == externalID {
			t := s.db.teams[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CountTeams(_ context.Context, sportID uint) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var n int64
	for i := range s.db.teams {
		if s.db.teams[i].SportID == sportID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) GameByExternalID(_ context.Context, sportID uint, externalID string) (*models.Game, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.games {
		if s.db.games[i].SportID == sportID && s.db.games[i].ExternalID == externalID {
			g := s.db.games[i]
			return &g, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GamesByDateRange(_ context.Context, sportID uint, start, end time.Time) ([]models.Game, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Game
	for i := range s.db.games {
		g := s.db.games[i]
		if g.SportID != sportID || g.GameDate.Before(start) || g.GameDate.After(end) {
			continue
		}
		g.HomeTeam = s.db.teamByID(g.HomeTeamID)
		g.AwayTeam = s.db.teamByID(g.AwayTeamID)
		out = append(out, g)
	}
	return out, nil
}

func (s *fakeStore) GamesAround(ctx context.Context, sportID uint, at time.Time, window time.Duration) ([]models.Game, error) {
	return s.GamesByDateRange(ctx, sportID, at.Add(-window), at.Add(window))
}

func (s *fakeStore) StatisticByGameTeam(_ context.Context, gameID, teamID uint) (*models.TeamStatistic, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.stats {
		if s.db.stats[i].GameID == gameID && s.db.stats[i].TeamID == teamID {
			st := s.db.stats[i]
			return &st, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Create(value any) {
	s.pending = append(s.pending, fakeWrite{create: true, value: value})
}

func (s *fakeStore) Update(value any) {
	s.pending = append(s.pending, fakeWrite{value: value})
}

func (s *fakeStore) Pending() int {
	return len(s.pending)
}

func (s *fakeStore) Flush(context.Context) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	n := len(s.pending)
	for _, w := range s.pending {
		s.db.apply(w)
	}
	s.pending = nil
	if n > 0 {
		s.db.flushes++
	}
	return n, nil
}

// apply commits one buffered write; caller holds db.mu.
func (db *fakeDB) apply(w fakeWrite) {
	switch v := w.value.(type) {
	case *models.Sport:
		if w.create {
			v.ID = db.nextID
			db.nextID++
			db.sports = append(db.sports, *v)
		}
	case *models.Team:
		if w.create {
			v.ID = db.nextID
			db.nextID++
			db.teams = append(db.teams, *v)
			return
		}
		for i := range db.teams {
			if db.teams[i].ID == v.ID {
				db.teams[i] = *v
			}
		}
	case *models.Game:
		if w.create {
			v.ID = db.nextID
			db.nextID++
			db.games = append(db.games, *v)
			return
		}
		for i := range db.games {
			if db.games[i].ID == v.ID {
				db.games[i] = *v
			}
		}
	case *models.TeamStatistic:
		if w.create {
			v.ID = db.nextID
			db.nextID++
			db.stats = append(db.stats, *v)
			return
		}
		for i := range db.stats {
			if db.stats[i].ID == v.ID {
				db.stats[i] = *v
			}
		}
	case *models.Odds:
		v.ID = db.nextID
		db.nextID++
		db.odds = append(db.odds, *v)
	}
}

// fakeSources stubs all provider feeds with call counting safe for
// concurrent units.
type fakeSources struct {
	mu sync.Mutex

	teams      []provider.TeamRecord
	teamsErr   error
	teamsCalls int

	schedule      []provider.GameRecord
	scheduleErr   error
	scheduleCalls int

	boxes    map[string]*provider.BoxScore
	boxErr   error
	boxCalls int

	events      []provider.EventOdds
	eventsErr   error
	eventsCalls int

	markets      map[string]*provider.MarketOdds
	marketsErr   error
	marketsCalls int
}

func (f *fakeSources) Teams(context.Context) ([]provider.TeamRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamsCalls++
	return f.teams, f.teamsErr
}

func (f *fakeSources) Schedule(context.Context, time.Time, time.Time) ([]provider.GameRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduleCalls++
	return f.schedule, f.scheduleErr
}

func (f *fakeSources) BoxScore(_ context.Context, gameID string) (*provider.BoxScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boxCalls++
	return f.boxes[gameID], f.boxErr
}

func (f *fakeSources) EventOdds(context.Context, string) ([]provider.EventOdds, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventsCalls++
	return f.events, f.eventsErr
}

func (f *fakeSources) MarketOdds(_ context.Context, gameID string) (*provider.MarketOdds, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marketsCalls++
	return f.markets[gameID], f.marketsErr
}

func (f *fakeSources) calls() (teams, schedule, box, events, markets int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teamsCalls, f.scheduleCalls, f.boxCalls, f.eventsCalls, f.marketsCalls
}

var testNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestService(db *fakeDB, src *fakeSources) *Service {
	return NewService(Deps{
		Stores:      func() Store { return db.store() },
		Teams:       src,
		Schedule:    src,
		BoxScores:   src,
		EventOdds:   src,
		MarketOdds:  src,
		Logger:      zap.NewNop(),
		Now:         func() time.Time { return testNow },
		DaysBack:    3,
		DaysForward: 7,
	})
}

func nbaDB() *fakeDB {
	return newFakeDB(models.Sport{Key: "nba", Name: "National Basketball Association", ExpectedTeamCount: 2})
}
