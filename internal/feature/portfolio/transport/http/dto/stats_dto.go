// Package dto defines the response payloads for the portfolio
// valuation endpoints.
package dto

import "portfolio_backend/internal/feature/portfolio/usecase"

// SymbolValueResponse is one symbol's slice of the market value.
type SymbolValueResponse struct {
	FormattedValue string `json:"formatted_value"`
	RawPercent     int64  `json:"raw_percent"`
	Percent        string `json:"percent"`
}

// MarketValueResponse carries the portfolio total and its per-symbol
// breakdown.
type MarketValueResponse struct {
	Total     string                         `json:"total"`
	Breakdown map[string]SymbolValueResponse `json:"breakdown"`
}

// StatsResponse is the combined valuation payload for the stats
// endpoints.
type StatsResponse struct {
	BookCost    string              `json:"book_cost"`
	MarketValue MarketValueResponse `json:"market_value"`
}

// ACBResponse wraps the per-symbol adjusted cost base map.
type ACBResponse struct {
	AdjustCostBase map[string]string `json:"adjust_cost_base"`
}

// NewStatsResponse assembles the stats payload from the computed
// figures.
func NewStatsResponse(bookCost string, mv usecase.MarketValue) StatsResponse {
	breakdown := make(map[string]SymbolValueResponse, len(mv.Breakdown))
	for symbol, v := range mv.Breakdown {
		breakdown[symbol] = SymbolValueResponse{
			FormattedValue: v.FormattedValue,
			RawPercent:     v.RawPercent,
			Percent:        v.Percent,
		}
	}
	return StatsResponse{
		BookCost: bookCost,
		MarketValue: MarketValueResponse{
			Total:     mv.Total,
			Breakdown: breakdown,
		},
	}
}
