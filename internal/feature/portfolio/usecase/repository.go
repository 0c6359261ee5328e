// Package usecase implements the portfolio valuation logic: book cost,
// market value and adjusted cost base. Each computation is a pure,
// request-scoped function over the rows its repositories return; no
// state is held between calls.
package usecase

import (
	"context"

	"portfolio_backend/internal/feature/transactions/domain/entity"
)

// Scope selects the transactions a valuation runs over: always one
// owner, optionally narrowed to a single investment account.
type Scope struct {
	OwnerID   uint
	AccountID *uint // nil means all of the owner's transactions
}

// AccountScope builds a Scope for one account of an owner.
func AccountScope(ownerID, accountID uint) Scope {
	return Scope{OwnerID: ownerID, AccountID: &accountID}
}

// TransactionRepository abstracts the read layer for transaction rows.
// Following Go convention, interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type TransactionRepository interface {
	// ListForScope returns the transactions matching the scope, ordered
	// by (trade_date, id) ascending. The adjusted cost base replay
	// depends on this ordering; the id tie-break keeps same-day trades
	// deterministic.
	ListForScope(ctx context.Context, scope Scope) ([]entity.Transaction, error)
}

// PriceRepository abstracts the read layer for closing prices.
type PriceRepository interface {
	// LatestCloses returns, for every symbol with at least one price
	// observation, the close price (in cents) of its most recent
	// price date.
	LatestCloses(ctx context.Context) (map[string]int64, error)
}

// AccountRepository abstracts the account lookup the ACB computation
// needs.
type AccountRepository interface {
	// Taxable reports whether the account exists, belongs to the owner
	// and is flagged taxable. A missing or foreign account reports
	// false, not an error.
	Taxable(ctx context.Context, accountID, ownerID uint) (bool, error)
}

// portfolioUsecase computes the derived portfolio figures.
type portfolioUsecase struct {
	transactions TransactionRepository
	prices       PriceRepository
	accounts     AccountRepository
}

// NewPortfolioUsecase creates a new portfolio valuation usecase.
func NewPortfolioUsecase(transactions TransactionRepository, prices PriceRepository, accounts AccountRepository) *portfolioUsecase {
	return &portfolioUsecase{
		transactions: transactions,
		prices:       prices,
		accounts:     accounts,
	}
}
