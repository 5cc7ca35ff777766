package sports

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupHandlerApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	gdb, mock := setupMockDB(t)
	svc := NewService(func() *Store { return NewStore(gdb) }, zap.NewNop())
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, mock
}

func TestHandleGamesByDateRange(t *testing.T) {
	app, mock := setupHandlerApp(t)

	sportRows := sqlmock.NewRows([]string{"id", "key", "name"}).
		AddRow(1, "nba", "National Basketball Association")
	mock.ExpectQuery(".*").WillReturnRows(sportRows)

	gameRows := sqlmock.NewRows([]string{"id", "sport_id", "external_id", "status"}).
		AddRow(3, 1, "sr:match:100", "final")
	mock.ExpectQuery(".*").WillReturnRows(gameRows)

	req := httptest.NewRequest("GET", "/api/games/by-date-range?sport=nba&startDate=2026-01-10&endDate=2026-01-12", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 1, payload.Count)
}

func TestHandleGamesByDateRangeBadDates(t *testing.T) {
	app, _ := setupHandlerApp(t)

	req := httptest.NewRequest("GET", "/api/games/by-date-range?startDate=bogus&endDate=2026-01-12", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGamesByDateRangeReversedRange(t *testing.T) {
	app, _ := setupHandlerApp(t)

	req := httptest.NewRequest("GET", "/api/games/by-date-range?startDate=2026-01-12&endDate=2026-01-10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGamesByDateRangeUnknownSport(t *testing.T) {
	app, mock := setupHandlerApp(t)

	mock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("GET", "/api/games/by-date-range?sport=curling&startDate=2026-01-10&endDate=2026-01-12", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleOddsByDateRangeOmitsGamesWithoutQuotes(t *testing.T) {
	app, mock := setupHandlerApp(t)

	sportRows := sqlmock.NewRows([]string{"id", "key"}).AddRow(1, "nba")
	mock.ExpectQuery(".*").WillReturnRows(sportRows)

	gameRows := sqlmock.NewRows([]string{"id", "sport_id", "external_id"}).
		AddRow(3, 1, "sr:match:100")
	mock.ExpectQuery(".*").WillReturnRows(gameRows)

	mock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("GET", "/api/odds/by-date-range?sport=nba&startDate=2026-01-10&endDate=2026-01-12", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 0, payload.Count)
}
