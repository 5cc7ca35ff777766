package sports

import (
	"context"
	"testing"
	"time"

	"moneyball/feature/sports/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestSportByKey(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	rows := sqlmock.NewRows([]string{"id", "key", "name", "expected_team_count"}).
		AddRow(1, "nba", "National Basketball Association", 30)
	mock.ExpectQuery("SELECT \\* FROM `sports`").
		WithArgs("nba", 1).
		WillReturnRows(rows)

	sport, err := store.SportByKey(context.Background(), "nba")
	require.NoError(t, err)
	assert.Equal(t, uint(1), sport.ID)
	assert.Equal(t, 30, sport.ExpectedTeamCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSportByKeyNotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	mock.ExpectQuery("SELECT \\* FROM `sports`").
		WithArgs("curling", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.SportByKey(context.Background(), "curling")
	assert.ErrorIs(t, err, ErrSportNotFound)
}

func TestTeamByExternalIDMissingIsNil(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	mock.ExpectQuery("SELECT \\* FROM `teams`").
		WithArgs(1, "sr:team:999", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	team, err := store.TeamByExternalID(context.Background(), 1, "sr:team:999")
	require.NoError(t, err)
	assert.Nil(t, team)
}

func TestFlushCreatesAndSavesInOneTransaction(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	store.Create(&models.Team{SportID: 1, ExternalID: "sr:team:1", Name: "Boston Celtics"})
	store.Update(&models.Team{ID: 7, SportID: 1, ExternalID: "sr:team:2", Name: "LA Clippers"})
	assert.Equal(t, 2, store.Pending())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `teams`").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE `teams`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := store.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, store.Pending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlushEmptyBufferIsNoop(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	n, err := store.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlushRollsBackAndKeepsBuffer(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	store.Create(&models.Team{SportID: 1, ExternalID: "sr:team:1", Name: "Boston Celtics"})

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `teams`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := store.Flush(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, store.Pending())
}

func TestGamesByDateRange(t *testing.T) {
	gdb, mock := setupMockDB(t)
	store := NewStore(gdb)

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	gameRows := sqlmock.NewRows([]string{"id", "sport_id", "external_id", "home_team_id", "away_team_id", "game_date", "status"}).
		AddRow(3, 1, "sr:match:100", 10, 11, start.Add(20*time.Hour), "scheduled")
	mock.ExpectQuery("SELECT \\* FROM `games`").
		WithArgs(1, start, end).
		WillReturnRows(gameRows)

	teamRows := sqlmock.NewRows([]string{"id", "sport_id", "external_id", "name"}).
		AddRow(11, 1, "sr:team:2", "LA Clippers")
	mock.ExpectQuery("SELECT \\* FROM `teams`").
		WithArgs(11).
		WillReturnRows(teamRows)

	homeRows := sqlmock.NewRows([]string{"id", "sport_id", "external_id", "name"}).
		AddRow(10, 1, "sr:team:1", "Boston Celtics")
	mock.ExpectQuery("SELECT \\* FROM `teams`").
		WithArgs(10).
		WillReturnRows(homeRows)

	games, err := store.GamesByDateRange(context.Background(), 1, start, end)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "sr:match:100", games[0].ExternalID)
}

func TestOddsByGameIDsEmptyInput(t *testing.T) {
	gdb, _ := setupMockDB(t)
	store := NewStore(gdb)

	odds, err := store.OddsByGameIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, odds)
}
