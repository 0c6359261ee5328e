// Package usecase implements the business logic for the accounts feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio_backend/internal/feature/accounts/domain/entity"
)

var (
	// ErrAccountNotFound is returned when an account does not exist or
	// belongs to another user.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccount is returned when an account fails validation.
	ErrInvalidAccount = errors.New("invalid account")
)

// AccountRepository abstracts the persistence layer for accounts.
// Following Go convention, interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type AccountRepository interface {
	// FindForOwner retrieves one account scoped to its owner. Returns
	// ErrAccountNotFound for a missing or foreign row.
	FindForOwner(ctx context.Context, id, ownerID uint) (*entity.Account, error)

	// ListForOwner returns all of the owner's accounts.
	ListForOwner(ctx context.Context, ownerID uint) ([]entity.Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update overwrites the account's name and taxable flag, scoped to
	// the owner.
	Update(ctx context.Context, account *entity.Account) error

	// DeleteWithTransactions removes the account and every transaction
	// assigned to it, atomically.
	DeleteWithTransactions(ctx context.Context, id, ownerID uint) error
}

// accountsUsecase implements account management.
type accountsUsecase struct {
	accounts AccountRepository
}

// NewAccountsUsecase creates a new accountsUsecase instance.
func NewAccountsUsecase(accounts AccountRepository) *accountsUsecase {
	return &accountsUsecase{accounts: accounts}
}

func validate(account *entity.Account) error {
	account.Name = strings.TrimSpace(account.Name)
	if account.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAccount)
	}
	return nil
}

// Get retrieves one account of the owner.
func (u *accountsUsecase) Get(ctx context.Context, id, ownerID uint) (*entity.Account, error) {
	return u.accounts.FindForOwner(ctx, id, ownerID)
}

// List returns all of the owner's accounts.
func (u *accountsUsecase) List(ctx context.Context, ownerID uint) ([]entity.Account, error) {
	return u.accounts.ListForOwner(ctx, ownerID)
}

// Create validates and persists a new account.
func (u *accountsUsecase) Create(ctx context.Context, account *entity.Account) error {
	if err := validate(account); err != nil {
		return err
	}
	return u.accounts.Create(ctx, account)
}

// Update validates and overwrites an existing account.
func (u *accountsUsecase) Update(ctx context.Context, account *entity.Account) error {
	if err := validate(account); err != nil {
		return err
	}
	return u.accounts.Update(ctx, account)
}

// Delete removes the account and its assigned transactions. Deleting an
// account never leaves orphaned rows behind.
func (u *accountsUsecase) Delete(ctx context.Context, id, ownerID uint) error {
	return u.accounts.DeleteWithTransactions(ctx, id, ownerID)
}
