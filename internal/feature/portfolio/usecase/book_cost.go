package usecase

import (
	"context"

	"portfolio_backend/internal/shared/money"
)

// BookCostUnavailable is returned when the scope contains no
// transactions at all. This is deliberately distinct from "$0.00": an
// empty account has no book cost, a fully offset one has a zero cost.
const BookCostUnavailable = "N/A"

// BookCost sums cost_per_unit*quantity + trade_fee over every
// transaction in scope and returns the formatted total.
//
// The sum is gross: sell rows add to book cost exactly like buys. That
// mirrors the historical behavior this system replaces and is kept
// intentionally; see DESIGN.md before changing it.
func (u *portfolioUsecase) BookCost(ctx context.Context, scope Scope) (string, error) {
	txs, err := u.transactions.ListForScope(ctx, scope)
	if err != nil {
		return "", err
	}
	if len(txs) == 0 {
		return BookCostUnavailable, nil
	}

	var total int64
	for _, tx := range txs {
		total += tx.CostPerUnit*tx.Quantity + tx.TradeFee
	}
	return money.FormatCurrency(total), nil
}
