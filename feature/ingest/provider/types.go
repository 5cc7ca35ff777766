package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

// TeamRecord is one team from the league hierarchy feed.
type TeamRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Alias  string `json:"alias"`
	Market string `json:"market"`
}

type hierarchy struct {
	Conferences []struct {
		Divisions []struct {
			Teams []TeamRecord `json:"teams"`
		} `json:"divisions"`
	} `json:"conferences"`
}

// GameRecord is one game from a daily schedule feed. Points are nil until
// the provider reports them.
type GameRecord struct {
	ID        string    `json:"id"`
	Scheduled time.Time `json:"scheduled"`
	Status    string    `json:"status"`
	Home      struct {
		ID string `json:"id"`
	} `json:"home"`
	Away struct {
		ID string `json:"id"`
	} `json:"away"`
	HomePoints *int `json:"home_points"`
	AwayPoints *int `json:"away_points"`
}

type daySchedule struct {
	Games []GameRecord `json:"games"`
}

// StatLine is one team's aggregate box score counters.
type StatLine struct {
	Points            int `json:"points"`
	FieldGoalsMade    int `json:"field_goals_made"`
	FieldGoalsAtt     int `json:"field_goals_att"`
	ThreePointsMade   int `json:"three_points_made"`
	ThreePointsAtt    int `json:"three_points_att"`
	FreeThrowsMade    int `json:"free_throws_made"`
	FreeThrowsAtt     int `json:"free_throws_att"`
	OffensiveRebounds int `json:"offensive_rebounds"`
	DefensiveRebounds int `json:"defensive_rebounds"`
	Rebounds          int `json:"rebounds"`
	Assists           int `json:"assists"`
	Steals            int `json:"steals"`
	Blocks            int `json:"blocks"`
	Turnovers         int `json:"turnovers"`
	PersonalFouls     int `json:"personal_fouls"`
}

// BoxTeam is one side of a box score.
type BoxTeam struct {
	ID         string   `json:"id"`
	Points     int      `json:"points"`
	Statistics StatLine `json:"statistics"`
}

// BoxScore is the full box score feed for one game.
type BoxScore struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Home   BoxTeam `json:"home"`
	Away   BoxTeam `json:"away"`
}

// EventOdds is the team-name keyed odds shape: events carry team names and
// a commence time, and games are matched by fuzzy name plus time window.
type EventOdds struct {
	ID           string      `json:"id"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's quote set inside an EventOdds record.
type Bookmaker struct {
	Key     string        `json:"key"`
	Title   string        `json:"title"`
	Markets []EventMarket `json:"markets"`
}

// EventMarket is a market ("h2h", "spreads", "totals") in the event shape.
type EventMarket struct {
	Key      string         `json:"key"`
	Outcomes []EventOutcome `json:"outcomes"`
}

// EventOutcome is one priced outcome in the event shape. Name is a team
// name for h2h/spreads, "Over"/"Under" for totals. Point is the line where
// the market has one.
type EventOutcome struct {
	Name  string           `json:"name"`
	Price decimal.Decimal  `json:"price"`
	Point *decimal.Decimal `json:"point"`
}

// MarketOdds is the numeric-outcome odds shape for a single known game:
// markets hold books, books hold outcomes typed "1"/"2"/"over"/"under".
type MarketOdds struct {
	GameID  string        `json:"game_id"`
	Markets []NamedMarket `json:"markets"`
}

// NamedMarket is a market in the numeric-outcome shape. Names vary per
// source (e.g. "moneyline", "1x2", "pointspread", "totals").
type NamedMarket struct {
	Name  string `json:"name"`
	Books []Book `json:"books"`
}

// Book is one bookmaker's outcomes within a NamedMarket.
type Book struct {
	Name     string        `json:"name"`
	Outcomes []BookOutcome `json:"outcomes"`
}

// BookOutcome is one priced outcome in the numeric shape. Type "1" is home,
// "2" is away.
type BookOutcome struct {
	Type string           `json:"type"`
	Odds decimal.Decimal  `json:"odds"`
	Line *decimal.Decimal `json:"line"`
}
