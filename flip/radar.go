package flip

import (
	"context"

	"flipradar/ebay"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ListingSource returns live or sold listings for a market query
type ListingSource interface {
	Listings(ctx context.Context, q string, limit int, sold bool) (ebay.SearchResult, error)
}

// Thresholds filter which listings count as sales and opportunities
type Thresholds struct {
	MinConfidence float64 `json:"minConfidence"`
	MinDiscount   float64 `json:"minDiscount"`
	MinProfitUSD  float64 `json:"minProfitUsd"`
}

// Report is the outcome of one radar pass over a card
type Report struct {
	Game          string        `json:"game"`
	Query         string        `json:"query"`
	MarketQuery   string        `json:"marketQuery"`
	SoldStats     Summary       `json:"soldStats"`
	SoldCountUsed int           `json:"soldCountUsed"`
	Ranked        []Opportunity `json:"ranked"`
	Thresholds    Thresholds    `json:"thresholds"`
}

// Analyzer compares live listings with recent sales of the same card
type Analyzer struct {
	Source      ListingSource
	Assumptions Assumptions
	Thresholds  Thresholds
	LiveLimit   int
	SoldLimit   int
}

// Analyze prices the card from matching sold listings, then ranks live listings
// that are cheap enough against the sold median to resell at a profit.
func (a Analyzer) Analyze(ctx context.Context, game, q string) (Report, error) {
	rep := Report{
		Game:        game,
		Query:       q,
		MarketQuery: BuildMarketQuery(game, q),
		Thresholds:  a.Thresholds,
		Ranked:      []Opportunity{},
	}

	sold, err := a.Source.Listings(ctx, rep.MarketQuery, a.SoldLimit, true)
	if err != nil {
		return rep, serr.Wrap(err, "failed to fetch sold listings")
	}

	var prices []float64
	for _, it := range sold.Items {
		if it.Price == nil || *it.Price <= 0 {
			continue
		}
		if ScoreListing(q, it.Title).Confidence < a.Thresholds.MinConfidence {
			continue
		}
		prices = append(prices, *it.Price)
	}
	rep.SoldStats = Summarize(prices)
	rep.SoldCountUsed = len(prices)

	if rep.SoldStats.Median == nil {
		logger.Debug("No usable sold listings", "market_query", rep.MarketQuery)
		return rep, nil
	}
	median := *rep.SoldStats.Median

	live, err := a.Source.Listings(ctx, rep.MarketQuery, a.LiveLimit, false)
	if err != nil {
		return rep, serr.Wrap(err, "failed to fetch live listings")
	}

	var opps []Opportunity
	for _, it := range live.Items {
		if it.Price == nil || *it.Price <= 0 {
			continue
		}
		m := ScoreListing(q, it.Title)
		if m.Confidence < a.Thresholds.MinConfidence {
			continue
		}

		total := *it.Price + a.Assumptions.ShippingOr(it.Shipping)
		discount := 1 - total/median
		if discount < a.Thresholds.MinDiscount {
			continue
		}

		econ := ExpectedProfit(*it.Price, it.Shipping, median, a.Assumptions)
		if econ.Profit < a.Thresholds.MinProfitUSD {
			continue
		}
		opps = append(opps, Opportunity{Item: it, Match: m, Discount: discount, Economics: econ})
	}
	rep.Ranked = Rank(opps)

	logger.Debug("Radar pass", "market_query", rep.MarketQuery, "sold_used", rep.SoldCountUsed,
		"live", len(live.Items), "ranked", len(rep.Ranked))
	return rep, nil
}
