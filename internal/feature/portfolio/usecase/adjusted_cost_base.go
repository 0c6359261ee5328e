package usecase

import (
	"context"
	"fmt"
	"math"

	"portfolio_backend/internal/feature/transactions/domain/entity"
	"portfolio_backend/internal/shared/money"
)

// AdjustedCostBase replays the account's transactions in chronological
// order and returns the remaining cost pool per symbol, formatted as
// currency.
//
// ACB only matters for capital gains, so a non-taxable account (or an
// account that does not exist or belongs to another user) yields an
// empty map. That is a designed no-op, not an error.
//
// Replay rules per symbol:
//   - buy of q shares: pool += q*cost_per_unit + fee, held += q
//   - sell of q shares: pool *= (held-q)/held, held -= q
//
// A sell with nothing held, or of more shares than held, fails with
// ErrInvalidLedgerState rather than producing a negative or divided-by-
// zero pool.
func (u *portfolioUsecase) AdjustedCostBase(ctx context.Context, ownerID, accountID uint) (map[string]string, error) {
	taxable, err := u.accounts.Taxable(ctx, accountID, ownerID)
	if err != nil {
		return nil, err
	}
	acbs := make(map[string]string)
	if !taxable {
		return acbs, nil
	}

	txs, err := u.transactions.ListForScope(ctx, AccountScope(ownerID, accountID))
	if err != nil {
		return nil, err
	}

	pools := make(map[string]float64)
	held := make(map[string]int64)
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionTypeBuy:
			pools[tx.Symbol] += float64(tx.Quantity*tx.CostPerUnit + tx.TradeFee)
			held[tx.Symbol] += tx.Quantity
		case entity.TransactionTypeSell:
			prev := held[tx.Symbol]
			if tx.Quantity > prev {
				return nil, fmt.Errorf("%w: sell of %d %s on %s with only %d held",
					ErrInvalidLedgerState, tx.Quantity, tx.Symbol, tx.TradeDate.Format("2006-01-02"), prev)
			}
			pools[tx.Symbol] *= float64(prev-tx.Quantity) / float64(prev)
			held[tx.Symbol] = prev - tx.Quantity
		}
	}

	for symbol, pool := range pools {
		acbs[symbol] = money.FormatCurrency(int64(math.Round(pool)))
	}
	return acbs, nil
}
