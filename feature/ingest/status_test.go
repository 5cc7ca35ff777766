package ingest

import (
	"testing"

	"moneyball/feature/sports/models"

	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want models.GameStatus
	}{
		{"scheduled", models.StatusScheduled},
		{"created", models.StatusScheduled},
		{"time-tbd", models.StatusScheduled},
		{"inprogress", models.StatusInProgress},
		{"halftime", models.StatusInProgress},
		{"live", models.StatusInProgress},
		{"closed", models.StatusFinal},
		{"complete", models.StatusFinal},
		{"final", models.StatusFinal},
		{"postponed", models.StatusPostponed},
		{"delayed", models.StatusPostponed},
		{"suspended", models.StatusPostponed},
		{"Suspended", models.StatusPostponed},
		{"cancelled", models.StatusCancelled},
		{"canceled", models.StatusCancelled},
		{"CLOSED", models.StatusFinal},
		{"  Scheduled ", models.StatusScheduled},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapStatus(tc.raw), "status %q", tc.raw)
	}
}

func TestMapStatusUnrecognizedIsUnknown(t *testing.T) {
	// An unrecognized state must never masquerade as an upcoming game.
	assert.Equal(t, models.StatusUnknown, MapStatus("flex-schedule"))
	assert.Equal(t, models.StatusUnknown, MapStatus(""))
	assert.Equal(t, models.StatusUnknown, MapStatus("if_necessary"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal("closed"))
	assert.True(t, IsTerminal("Complete"))
	assert.True(t, IsTerminal("final"))

	assert.False(t, IsTerminal("postponed"))
	assert.False(t, IsTerminal("delayed"))
	assert.False(t, IsTerminal("suspended"))
	assert.False(t, IsTerminal("cancelled"))
	assert.False(t, IsTerminal("inprogress"))
	assert.False(t, IsTerminal("scheduled"))
	assert.False(t, IsTerminal("anything-else"))
}
