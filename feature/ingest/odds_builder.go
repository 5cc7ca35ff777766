package ingest

import (
	"time"

	"moneyball/feature/sports/models"

	"github.com/shopspring/decimal"
)

// oddsBuilder accumulates one bookmaker's quotes for one game across the
// moneyline, spread and totals markets, producing a single snapshot row.
type oddsBuilder struct {
	row models.Odds
	has bool
}

func newOddsBuilder(gameID uint, bookmaker string, recordedAt time.Time) *oddsBuilder {
	return &oddsBuilder{row: models.Odds{
		GameID:     gameID,
		Bookmaker:  bookmaker,
		RecordedAt: recordedAt,
	}}
}

func (b *oddsBuilder) setMoneyline(home, away *decimal.Decimal) {
	if home == nil && away == nil {
		return
	}
	b.row.HomeMoneyline = home
	b.row.AwayMoneyline = away
	b.has = true
}

func (b *oddsBuilder) setSpread(line, homePrice, awayPrice *decimal.Decimal) {
	if line == nil && homePrice == nil && awayPrice == nil {
		return
	}
	b.row.SpreadLine = line
	b.row.HomeSpreadPrice = homePrice
	b.row.AwaySpreadPrice = awayPrice
	b.has = true
}

func (b *oddsBuilder) setTotal(line, over, under *decimal.Decimal) {
	if line == nil && over == nil && under == nil {
		return
	}
	b.row.TotalLine = line
	b.row.OverPrice = over
	b.row.UnderPrice = under
	b.has = true
}

// build returns the snapshot, or false when no market contributed a quote.
func (b *oddsBuilder) build() (*models.Odds, bool) {
	if !b.has {
		return nil, false
	}
	row := b.row
	return &row, true
}
