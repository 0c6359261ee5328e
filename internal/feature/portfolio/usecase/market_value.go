package usecase

import (
	"context"

	"portfolio_backend/internal/feature/transactions/domain/entity"
	"portfolio_backend/internal/shared/money"
)

// SymbolValue is the market value contribution of one symbol.
type SymbolValue struct {
	FormattedValue string // Signed value at the latest close, formatted
	RawPercent     int64  // The same value unformatted, in cents
	Percent        string // Share of the portfolio total, e.g. "42.3%"
}

// MarketValue is the current paper value of a set of positions at the
// latest available close prices.
type MarketValue struct {
	Total     string
	Breakdown map[string]SymbolValue
}

// MarketValue values the in-scope positions at each symbol's most
// recent closing price. Buy quantities add to a symbol's bucket and the
// portfolio total, sells subtract. Symbols without any price
// observation are left out of both silently.
func (u *portfolioUsecase) MarketValue(ctx context.Context, scope Scope) (MarketValue, error) {
	closes, err := u.prices.LatestCloses(ctx)
	if err != nil {
		return MarketValue{}, err
	}
	txs, err := u.transactions.ListForScope(ctx, scope)
	if err != nil {
		return MarketValue{}, err
	}

	var total int64
	values := make(map[string]int64)
	for _, tx := range txs {
		close, ok := closes[tx.Symbol]
		if !ok {
			continue
		}
		value := tx.Quantity * close
		switch tx.Type {
		case entity.TransactionTypeBuy:
			total += value
			values[tx.Symbol] += value
		case entity.TransactionTypeSell:
			total -= value
			values[tx.Symbol] -= value
		}
	}

	breakdown := make(map[string]SymbolValue, len(values))
	for symbol, value := range values {
		percent := "0.0%"
		if total != 0 {
			percent = money.FormatPercentage(float64(value), float64(total))
		}
		breakdown[symbol] = SymbolValue{
			FormattedValue: money.FormatCurrency(value),
			RawPercent:     value,
			Percent:        percent,
		}
	}

	return MarketValue{
		Total:     money.FormatCurrency(total),
		Breakdown: breakdown,
	}, nil
}
