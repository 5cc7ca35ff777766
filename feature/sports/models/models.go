package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GameStatus is the internal game state derived from provider status strings.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "inprogress"
	StatusFinal      GameStatus = "final"
	StatusPostponed  GameStatus = "postponed"
	StatusCancelled  GameStatus = "cancelled"
	StatusUnknown    GameStatus = "unknown"
)

// Sport is a stable reference row, one per league. Seeded once and never
// mutated by ingestion.
type Sport struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Key  string `gorm:"size:32;uniqueIndex" json:"key"`
	Name string `gorm:"size:64" json:"name"`
	// ExpectedTeamCount drives the post-reconciliation sanity check
	// (e.g. 30 for the NBA). Zero disables the check.
	ExpectedTeamCount int       `json:"expected_team_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// Team identity is (SportID, ExternalID). Mutable attributes are updated
// field-by-field when they differ upstream; teams are never deleted by
// ingestion.
type Team struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SportID      uint      `gorm:"uniqueIndex:idx_teams_sport_external" json:"sport_id"`
	ExternalID   string    `gorm:"size:64;uniqueIndex:idx_teams_sport_external" json:"external_id"`
	Name         string    `gorm:"size:120" json:"name"`
	Abbreviation string    `gorm:"size:16" json:"abbreviation"`
	City         string    `gorm:"size:120" json:"city"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Game identity is (SportID, ExternalID). Home and away teams must already
// exist locally before a game row is created.
type Game struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SportID    uint       `gorm:"uniqueIndex:idx_games_sport_external" json:"sport_id"`
	ExternalID string     `gorm:"size:64;uniqueIndex:idx_games_sport_external" json:"external_id"`
	HomeTeamID uint       `json:"home_team_id"`
	AwayTeamID uint       `json:"away_team_id"`
	HomeTeam   *Team      `gorm:"foreignKey:HomeTeamID" json:"home_team,omitempty"`
	AwayTeam   *Team      `gorm:"foreignKey:AwayTeamID" json:"away_team,omitempty"`
	GameDate   time.Time  `gorm:"index" json:"game_date"`
	HomeScore  *int       `json:"home_score"`
	AwayScore  *int       `json:"away_score"`
	Status     GameStatus `gorm:"size:16" json:"status"`
	IsComplete bool       `json:"is_complete"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MarkComplete flips IsComplete forward only. A settled game never reopens,
// so passing false is a no-op once the flag is set.
func (g *Game) MarkComplete(complete bool) bool {
	if g.IsComplete || !complete {
		return false
	}
	g.IsComplete = true
	return true
}

// TeamStatistic is one team's box score for one game, keyed (GameID, TeamID).
// Every refresh fully overwrites all numeric fields; statistics only ever
// improve in completeness as a game progresses, so there is no field diffing.
type TeamStatistic struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	GameID uint `gorm:"uniqueIndex:idx_stats_game_team" json:"game_id"`
	TeamID uint `gorm:"uniqueIndex:idx_stats_game_team" json:"team_id"`

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

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Odds is a bookmaker quote snapshot. Rows are append-only; a snapshot is
// identified by (GameID, Bookmaker, RecordedAt) and "latest" is the max
// RecordedAt per (GameID, Bookmaker). One reconciliation pass produces at
// most one new row per bookmaker per game, merging moneyline, spread and
// totals markets.
type Odds struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	GameID    uint   `gorm:"index:idx_odds_game_book" json:"game_id"`
	Bookmaker string `gorm:"size:64;index:idx_odds_game_book" json:"bookmaker"`

	HomeMoneyline *decimal.Decimal `gorm:"type:decimal(10,3)" json:"home_moneyline"`
	AwayMoneyline *decimal.Decimal `gorm:"type:decimal(10,3)" json:"away_moneyline"`

	SpreadLine      *decimal.Decimal `gorm:"type:decimal(8,2)" json:"spread_line"`
	HomeSpreadPrice *decimal.Decimal `gorm:"type:decimal(10,3)" json:"home_spread_price"`
	AwaySpreadPrice *decimal.Decimal `gorm:"type:decimal(10,3)" json:"away_spread_price"`

	TotalLine  *decimal.Decimal `gorm:"type:decimal(8,2)" json:"total_line"`
	OverPrice  *decimal.Decimal `gorm:"type:decimal(10,3)" json:"over_price"`
	UnderPrice *decimal.Decimal `gorm:"type:decimal(10,3)" json:"under_price"`

	RecordedAt time.Time `gorm:"index" json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// All returns every entity type for schema migration.
func All() []any {
	return []any{&Sport{}, &Team{}, &Game{}, &TeamStatistic{}, &Odds{}}
}
