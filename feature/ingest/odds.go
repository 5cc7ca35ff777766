package ingest

import (
	"context"
	"strings"
	"time"

	"moneyball/feature/ingest/provider"
	"moneyball/feature/sports/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// eventMatchWindow bounds how far a quoted commence time may drift from the
// local game date and still match. Providers round tip-off times.
const eventMatchWindow = 2 * time.Hour

// IngestOdds records current betting quotes for a sport from both odds
// shapes: name-keyed events matched to games by team name and time window,
// and numeric-outcome markets fetched per unsettled game dated in
// [start, end]. Every pass appends fresh snapshot rows; nothing is ever
// overwritten.
func (s *Service) IngestOdds(ctx context.Context, sportKey string, start, end time.Time) (Counts, error) {
	store := s.stores()
	sport, err := store.SportByKey(ctx, sportKey)
	if err != nil {
		return Counts{}, err
	}

	counts, err := s.ingestEventOdds(ctx, store, sport, sportKey)
	if err != nil {
		return counts, err
	}

	marketCounts, err := s.ingestMarketOdds(ctx, store, sport, start, end)
	if err != nil {
		return counts, err
	}
	counts.Merge(marketCounts)

	return counts, nil
}

// ingestEventOdds handles the team-name keyed shape. The whole feed arrives
// in one fetch, so all snapshot rows buffer up and flush together at the
// end of the pass. Events that match no local game are skipped; the
// schedule may simply not cover them yet.
func (s *Service) ingestEventOdds(ctx context.Context, store Store, sport *models.Sport, sportKey string) (Counts, error) {
	events, err := s.eventOdds.EventOdds(ctx, sportKey)
	if err != nil {
		return Counts{}, err
	}

	recordedAt := s.now()
	var counts Counts

	for _, event := range events {
		game, err := s.matchEvent(ctx, store, sport, event)
		if err != nil {
			return counts, err
		}
		if game == nil {
			s.logger.Debug("No local game for odds event",
				zap.String("home", event.HomeTeam),
				zap.String("away", event.AwayTeam),
				zap.Time("commence", event.CommenceTime))
			counts.Skipped++
			continue
		}

		added := 0
		for _, book := range event.Bookmakers {
			builder := newOddsBuilder(game.ID, bookName(book), recordedAt)
			for _, market := range book.Markets {
				s.applyEventMarket(builder, game, market)
			}
			if row, ok := builder.build(); ok {
				store.Create(row)
				added++
			}
		}

		if added > 0 {
			counts.Added += added
		} else {
			counts.Unchanged++
		}
	}

	if counts.Added > 0 {
		if _, err := store.Flush(ctx); err != nil {
			return Counts{}, err
		}
	}

	return counts, nil
}

// matchEvent finds the local game for an odds event: date within the match
// window, then both team names matched fuzzily.
func (s *Service) matchEvent(ctx context.Context, store Store, sport *models.Sport, event provider.EventOdds) (*models.Game, error) {
	candidates, err := store.GamesAround(ctx, sport.ID, event.CommenceTime, eventMatchWindow)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		g := &candidates[i]
		if teamMatches(g.HomeTeam, event.HomeTeam) && teamMatches(g.AwayTeam, event.AwayTeam) {
			return g, nil
		}
	}
	return nil, nil
}

// teamMatches compares a provider team name against a local team by
// case-insensitive containment of the full name or the city.
func teamMatches(team *models.Team, name string) bool {
	if team == nil || name == "" {
		return false
	}
	have := strings.ToLower(strings.TrimSpace(team.Name))
	want := strings.ToLower(strings.TrimSpace(name))
	if have == "" {
		return false
	}
	if strings.Contains(have, want) || strings.Contains(want, have) {
		return true
	}
	city := strings.ToLower(strings.TrimSpace(team.City))
	return city != "" && strings.Contains(want, city)
}

func (s *Service) applyEventMarket(b *oddsBuilder, game *models.Game, market provider.EventMarket) {
	switch market.Key {
	case "h2h":
		home := eventPrice(market.Outcomes, game.HomeTeam)
		away := eventPrice(market.Outcomes, game.AwayTeam)
		b.setMoneyline(home, away)

	case "spreads":
		var line, homePrice, awayPrice *decimal.Decimal
		for i := range market.Outcomes {
			o := market.Outcomes[i]
			switch {
			case teamMatches(game.HomeTeam, o.Name):
				price := o.Price
				homePrice = &price
				line = o.Point
			case teamMatches(game.AwayTeam, o.Name):
				price := o.Price
				awayPrice = &price
			}
		}
		b.setSpread(line, homePrice, awayPrice)

	case "totals":
		var line, over, under *decimal.Decimal
		for i := range market.Outcomes {
			o := market.Outcomes[i]
			price := o.Price
			switch strings.ToLower(o.Name) {
			case "over":
				over = &price
				line = o.Point
			case "under":
				under = &price
			}
		}
		b.setTotal(line, over, under)

	default:
		s.logger.Debug("Ignoring unknown event market", zap.String("market", market.Key))
	}
}

func eventPrice(outcomes []provider.EventOutcome, team *models.Team) *decimal.Decimal {
	for i := range outcomes {
		if teamMatches(team, outcomes[i].Name) {
			price := outcomes[i].Price
			return &price
		}
	}
	return nil
}

// ingestMarketOdds handles the numeric-outcome shape, fetched per game in
// the range that has not settled. Each game's feed is its own fetch, so
// each game's rows flush on their own.
func (s *Service) ingestMarketOdds(ctx context.Context, store Store, sport *models.Sport, start, end time.Time) (Counts, error) {
	games, err := store.GamesByDateRange(ctx, sport.ID, start, end)
	if err != nil {
		return Counts{}, err
	}

	recordedAt := s.now()
	var counts Counts
	for i := range games {
		game := &games[i]
		if game.IsComplete {
			continue
		}

		markets, err := s.marketOdds.MarketOdds(ctx, game.ExternalID)
		if err != nil {
			return counts, err
		}
		if markets == nil || len(markets.Markets) == 0 {
			counts.Skipped++
			continue
		}

		added, err := s.reconcileMarketOdds(ctx, store, game, markets, recordedAt)
		if err != nil {
			return counts, err
		}
		if added > 0 {
			counts.Added += added
		} else {
			counts.Unchanged++
		}
	}

	return counts, nil
}

// reconcileMarketOdds merges all of one game's markets into one snapshot
// row per bookmaker and flushes them together.
func (s *Service) reconcileMarketOdds(ctx context.Context, store Store, game *models.Game, markets *provider.MarketOdds, recordedAt time.Time) (int, error) {
	builders := make(map[string]*oddsBuilder)
	builder := func(book string) *oddsBuilder {
		if b, ok := builders[book]; ok {
			return b
		}
		b := newOddsBuilder(game.ID, book, recordedAt)
		builders[book] = b
		return b
	}

	for _, market := range markets.Markets {
		kind := normalizeMarket(market.Name)
		if kind == "" {
			s.logger.Warn("Ignoring unknown market",
				zap.String("market", market.Name),
				zap.String("game", game.ExternalID))
			continue
		}
		for _, book := range market.Books {
			if book.Name == "" {
				continue
			}
			applyBookOutcomes(builder(book.Name), kind, book.Outcomes)
		}
	}

	added := 0
	for _, b := range builders {
		if row, ok := b.build(); ok {
			store.Create(row)
			added++
		}
	}
	if added > 0 {
		if _, err := store.Flush(ctx); err != nil {
			return 0, err
		}
	}
	return added, nil
}

func applyBookOutcomes(b *oddsBuilder, kind string, outcomes []provider.BookOutcome) {
	var home, away, over, under *decimal.Decimal
	var line *decimal.Decimal

	for i := range outcomes {
		o := outcomes[i]
		odds := o.Odds
		switch strings.ToLower(o.Type) {
		case "1":
			home = &odds
			if o.Line != nil {
				line = o.Line
			}
		case "2":
			away = &odds
		case "over":
			over = &odds
			if o.Line != nil {
				line = o.Line
			}
		case "under":
			under = &odds
		}
	}

	switch kind {
	case "moneyline":
		b.setMoneyline(home, away)
	case "spread":
		b.setSpread(line, home, away)
	case "total":
		b.setTotal(line, over, under)
	}
}

// normalizeMarket folds provider market names into the three supported
// kinds; empty means unsupported.
func normalizeMarket(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "moneyline", "1x2", "h2h":
		return "moneyline"
	case "pointspread", "point_spread", "spread", "spreads", "handicap":
		return "spread"
	case "totals", "total", "over/under", "overunder":
		return "total"
	default:
		return ""
	}
}

func bookName(book provider.Bookmaker) string {
	if book.Title != "" {
		return book.Title
	}
	return book.Key
}
