package ingest

import (
	"context"
	"testing"

	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestTeamsCreates(t *testing.T) {
	db := nbaDB()
	svc := newTestService(db, &fakeSources{teams: []provider.TeamRecord{
		{ID: "t1", Name: "Celtics", Alias: "BOS", Market: "Boston"},
		{ID: "t2", Name: "Lakers", Alias: "LAL", Market: "Los Angeles"},
	}})

	counts, err := svc.IngestTeams(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, Counts{Added: 2}, counts)
	assert.Equal(t, 1, db.flushes)

	require.Len(t, db.teams, 2)
	assert.Equal(t, "Boston Celtics", db.teams[0].Name)
	assert.Equal(t, "BOS", db.teams[0].Abbreviation)
	assert.Equal(t, "Boston", db.teams[0].City)
}

func TestIngestTeamsDiffsFields(t *testing.T) {
	db := nbaDB()
	db.teams = []models.Team{
		{ID: 10, SportID: 1, ExternalID: "t1", Name: "Boston Celtics", Abbreviation: "BOS", City: "Boston"},
		{ID: 11, SportID: 1, ExternalID: "t2", Name: "LA Clippers", Abbreviation: "LAC", City: "Los Angeles"},
	}
	svc := newTestService(db, &fakeSources{teams: []provider.TeamRecord{
		{ID: "t1", Name: "Celtics", Alias: "BOS", Market: "Boston"},
		// Relocation: name and city change together, still one update.
		{ID: "t2", Name: "Clippers", Alias: "SDC", Market: "San Diego"},
	}})

	counts, err := svc.IngestTeams(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, Counts{Updated: 1, Unchanged: 1}, counts)

	updated := db.teamByID(11)
	assert.Equal(t, "San Diego Clippers", updated.Name)
	assert.Equal(t, "SDC", updated.Abbreviation)
	assert.Equal(t, "San Diego", updated.City)
}

func TestIngestTeamsSkipsMalformed(t *testing.T) {
	db := nbaDB()
	svc := newTestService(db, &fakeSources{teams: []provider.TeamRecord{
		{ID: "", Name: "Ghosts", Market: "Nowhere"},
		{ID: "t3", Name: "", Market: "Nowhere"},
		{ID: "t1", Name: "Celtics", Alias: "BOS", Market: "Boston"},
	}})

	counts, err := svc.IngestTeams(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, Counts{Added: 1, Skipped: 2}, counts)
	assert.Len(t, db.teams, 1)
}

func TestIngestTeamsIdempotent(t *testing.T) {
	db := nbaDB()
	src := &fakeSources{teams: []provider.TeamRecord{
		{ID: "t1", Name: "Celtics", Alias: "BOS", Market: "Boston"},
	}}
	svc := newTestService(db, src)

	_, err := svc.IngestTeams(context.Background(), "nba")
	require.NoError(t, err)

	counts, err := svc.IngestTeams(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, Counts{Unchanged: 1}, counts)
	assert.Len(t, db.teams, 1)
}

func TestIngestTeamsUnknownSport(t *testing.T) {
	svc := newTestService(nbaDB(), &fakeSources{})

	_, err := svc.IngestTeams(context.Background(), "curling")
	require.Error(t, err)
}

func TestIngestTeamsProviderEmpty(t *testing.T) {
	db := nbaDB()
	svc := newTestService(db, &fakeSources{})

	counts, err := svc.IngestTeams(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
	assert.Equal(t, 0, db.flushes)
}
