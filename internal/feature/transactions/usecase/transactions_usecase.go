package usecase

import (
	"context"
	"fmt"
	"strings"

	"portfolio_backend/internal/feature/transactions/domain/entity"
)

// TransactionRepository abstracts the persistence layer for transactions.
// Following Go convention, interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type TransactionRepository interface {
	// FindForOwner retrieves one transaction scoped to its owner.
	// Returns ErrTransactionNotFound for a missing or foreign row.
	FindForOwner(ctx context.Context, id, ownerID uint) (*entity.Transaction, error)

	// ListForAccount returns the owner's transactions for one account
	// (nil accountID matches the unassigned bucket).
	ListForAccount(ctx context.Context, ownerID uint, accountID *uint) ([]entity.Transaction, error)

	// ListForOwner returns all of the owner's transactions across
	// accounts.
	ListForOwner(ctx context.Context, ownerID uint) ([]entity.Transaction, error)

	// Create persists a new transaction.
	Create(ctx context.Context, tx *entity.Transaction) error

	// CreateBatch persists all transactions atomically: either the
	// whole batch is stored or none of it is.
	CreateBatch(ctx context.Context, txs []entity.Transaction) error

	// Update overwrites the transaction's data fields, scoped to the
	// owner.
	Update(ctx context.Context, tx *entity.Transaction) error

	// Delete removes one transaction scoped to its owner.
	Delete(ctx context.Context, id, ownerID uint) error

	// DeleteBatch removes the owner's transactions with the given ids.
	// Foreign ids are ignored.
	DeleteBatch(ctx context.Context, ids []uint, ownerID uint) error

	// AssignAccount moves the given transactions of an owner to an
	// account (nil clears the assignment).
	AssignAccount(ctx context.Context, ids []uint, accountID *uint, ownerID uint) error
}

// transactionsUsecase implements transaction management on top of a
// TransactionRepository.
type transactionsUsecase struct {
	transactions TransactionRepository
}

// NewTransactionsUsecase creates a new transactionsUsecase instance.
func NewTransactionsUsecase(transactions TransactionRepository) *transactionsUsecase {
	return &transactionsUsecase{transactions: transactions}
}

// normalize uppercases the symbol and validates the row. Symbols are
// case-insensitive identities, normalized to uppercase on every write.
func normalize(tx *entity.Transaction) error {
	tx.Symbol = strings.ToUpper(strings.TrimSpace(tx.Symbol))
	switch {
	case tx.Symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrInvalidTransaction)
	case tx.Type != entity.TransactionTypeBuy && tx.Type != entity.TransactionTypeSell:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, tx.Type)
	case tx.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidTransaction)
	case tx.CostPerUnit < 0:
		return fmt.Errorf("%w: negative cost per unit", ErrInvalidTransaction)
	case tx.TradeFee < 0:
		return fmt.Errorf("%w: negative trade fee", ErrInvalidTransaction)
	case tx.TradeDate.IsZero():
		return fmt.Errorf("%w: missing trade date", ErrInvalidTransaction)
	}
	return nil
}

// Get retrieves a single transaction scoped to its owner.
func (u *transactionsUsecase) Get(ctx context.Context, id, ownerID uint) (*entity.Transaction, error) {
	return u.transactions.FindForOwner(ctx, id, ownerID)
}

// ListForAccount returns the owner's transactions for one account.
func (u *transactionsUsecase) ListForAccount(ctx context.Context, ownerID uint, accountID *uint) ([]entity.Transaction, error) {
	return u.transactions.ListForAccount(ctx, ownerID, accountID)
}

// List returns all of the owner's transactions across accounts.
func (u *transactionsUsecase) List(ctx context.Context, ownerID uint) ([]entity.Transaction, error) {
	return u.transactions.ListForOwner(ctx, ownerID)
}

// Create validates, normalizes and persists a new transaction.
func (u *transactionsUsecase) Create(ctx context.Context, tx *entity.Transaction) error {
	if err := normalize(tx); err != nil {
		return err
	}
	return u.transactions.Create(ctx, tx)
}

// Update validates, normalizes and overwrites an existing transaction.
func (u *transactionsUsecase) Update(ctx context.Context, tx *entity.Transaction) error {
	if err := normalize(tx); err != nil {
		return err
	}
	return u.transactions.Update(ctx, tx)
}

// Delete removes one transaction of the owner.
func (u *transactionsUsecase) Delete(ctx context.Context, id, ownerID uint) error {
	return u.transactions.Delete(ctx, id, ownerID)
}

// DeleteBatch removes the owner's transactions with the given ids.
func (u *transactionsUsecase) DeleteBatch(ctx context.Context, ownerID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return u.transactions.DeleteBatch(ctx, ids, ownerID)
}

// MoveToAccount reassigns the given transactions to an account of the
// same owner. A nil accountID moves them back to the unassigned bucket.
func (u *transactionsUsecase) MoveToAccount(ctx context.Context, ownerID uint, ids []uint, accountID *uint) error {
	if len(ids) == 0 {
		return nil
	}
	return u.transactions.AssignAccount(ctx, ids, accountID, ownerID)
}
