package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"moneyball/core/fetch"

	"go.uber.org/zap"
)

// PayloadHook receives every raw feed body before decoding, for archival.
// Hooks run inline on the fetch path, so they should bound their own I/O;
// failures there never affect ingestion.
type PayloadHook func(feed string, body []byte)

// Client talks to the sports data and odds providers.
type Client struct {
	cfg       Config
	fetch     *fetch.Client
	logger    *zap.Logger
	onPayload PayloadHook
}

// NewClient creates a provider client on top of the resilient fetcher.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	f := fetch.New(
		time.Duration(cfg.TimeoutSeconds)*time.Second,
		cfg.MaxAttempts,
		time.Duration(cfg.BaseDelayMS)*time.Millisecond,
		logger,
	)
	return &Client{cfg: cfg, fetch: f, logger: logger}
}

// SetPayloadHook installs the raw payload hook.
func (c *Client) SetPayloadHook(hook PayloadHook) {
	c.onPayload = hook
}

func (c *Client) emit(feed string, body []byte) {
	if c.onPayload != nil && len(body) > 0 {
		c.onPayload(feed, body)
	}
}

// Teams fetches the league hierarchy and flattens it to team records.
func (c *Client) Teams(ctx context.Context) ([]TeamRecord, error) {
	url := fmt.Sprintf("%s/league/hierarchy.json?api_key=%s", c.cfg.SportsDataBaseURL, c.cfg.SportsDataKey)

	outcome, body, err := c.fetch.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("hierarchy fetch failed (%s): %w", outcome, err)
	}
	if outcome == fetch.NotFound {
		return nil, nil
	}
	c.emit("hierarchy", body)

	var h hierarchy
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("failed to decode hierarchy: %w", err)
	}

	var teams []TeamRecord
	for _, conf := range h.Conferences {
		for _, div := range conf.Divisions {
			teams = append(teams, div.Teams...)
		}
	}
	return teams, nil
}

// Schedule fetches games day by day across [start, end], pausing between
// days. Days the provider has nothing for are skipped silently; a terminal
// fetch failure aborts the whole range.
func (c *Client) Schedule(ctx context.Context, start, end time.Time) ([]GameRecord, error) {
	delay := time.Duration(c.cfg.DayDelayMS) * time.Millisecond

	var games []GameRecord
	first := true
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !first {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		first = false

		url := fmt.Sprintf("%s/games/%s/schedule.json?api_key=%s",
			c.cfg.SportsDataBaseURL, day.Format("2006/01/02"), c.cfg.SportsDataKey)

		outcome, body, err := c.fetch.Get(ctx, url, nil)
		if err != nil {
			return nil, fmt.Errorf("schedule fetch failed for %s (%s): %w",
				day.Format("2006-01-02"), outcome, err)
		}
		if outcome == fetch.NotFound {
			c.logger.Debug("No schedule for day", zap.String("day", day.Format("2006-01-02")))
			continue
		}
		c.emit("schedule", body)

		var sched daySchedule
		if err := json.Unmarshal(body, &sched); err != nil {
			return nil, fmt.Errorf("failed to decode schedule for %s: %w", day.Format("2006-01-02"), err)
		}
		games = append(games, sched.Games...)
	}
	return games, nil
}

// BoxScore fetches one game's box score; (nil, nil) when the provider has
// none yet.
func (c *Client) BoxScore(ctx context.Context, gameID string) (*BoxScore, error) {
	url := fmt.Sprintf("%s/games/%s/boxscore.json?api_key=%s", c.cfg.SportsDataBaseURL, gameID, c.cfg.SportsDataKey)

	outcome, body, err := c.fetch.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("box score fetch failed for %s (%s): %w", gameID, outcome, err)
	}
	if outcome == fetch.NotFound {
		return nil, nil
	}
	c.emit("boxscore", body)

	var box BoxScore
	if err := json.Unmarshal(body, &box); err != nil {
		return nil, fmt.Errorf("failed to decode box score for %s: %w", gameID, err)
	}
	return &box, nil
}

// EventOdds fetches the aggregator's upcoming events with h2h, spreads and
// totals markets for a sport.
func (c *Client) EventOdds(ctx context.Context, sportKey string) ([]EventOdds, error) {
	url := fmt.Sprintf("%s/sports/%s/odds?apiKey=%s&regions=us&markets=h2h,spreads,totals&oddsFormat=decimal",
		c.cfg.OddsBaseURL, oddsSportKey(sportKey), c.cfg.OddsKey)

	outcome, body, err := c.fetch.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("event odds fetch failed (%s): %w", outcome, err)
	}
	if outcome == fetch.NotFound {
		return nil, nil
	}
	c.emit("event_odds", body)

	var events []EventOdds
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode event odds: %w", err)
	}
	return events, nil
}

// MarketOdds fetches the numeric-outcome market feed for one known game;
// (nil, nil) when the provider has no markets for it.
func (c *Client) MarketOdds(ctx context.Context, gameID string) (*MarketOdds, error) {
	url := fmt.Sprintf("%s/games/%s/markets.json?api_key=%s", c.cfg.SportsDataBaseURL, gameID, c.cfg.SportsDataKey)

	outcome, body, err := c.fetch.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("market odds fetch failed for %s (%s): %w", gameID, outcome, err)
	}
	if outcome == fetch.NotFound {
		return nil, nil
	}
	c.emit("market_odds", body)

	var markets MarketOdds
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("failed to decode market odds for %s: %w", gameID, err)
	}
	if markets.GameID == "" {
		markets.GameID = gameID
	}
	return &markets, nil
}

// oddsSportKey maps an internal sport key to the aggregator's key space.
func oddsSportKey(key string) string {
	switch key {
	case "nba":
		return "basketball_nba"
	default:
		return key
	}
}
