// Package adapters provides the repository implementations for the
// accounts feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/accounts/domain/entity"
	"portfolio_backend/internal/feature/accounts/usecase"
	pfusecase "portfolio_backend/internal/feature/portfolio/usecase"
	txadapters "portfolio_backend/internal/feature/transactions/adapters"
)

// accountMySQL is the MySQL implementation of the account repositories,
// backed by GORM.
type accountMySQL struct {
	db *gorm.DB
}

// Compile-time checks: the adapter serves both the accounts feature and
// the portfolio valuation core.
var (
	_ usecase.AccountRepository   = (*accountMySQL)(nil)
	_ pfusecase.AccountRepository = (*accountMySQL)(nil)
)

// NewAccountRepository creates a new accountMySQL instance with the
// given gorm.DB connection.
func NewAccountRepository(db *gorm.DB) *accountMySQL {
	return &accountMySQL{db: db}
}

// AccountModel is the GORM model for the investment_accounts table.
type AccountModel struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null"`
	Taxable bool   `gorm:"not null"`
	UserID  uint   `gorm:"not null;index"`
}

func (AccountModel) TableName() string {
	return "investment_accounts"
}

func toModel(e entity.Account) AccountModel {
	return AccountModel{ID: e.ID, Name: e.Name, Taxable: e.Taxable, UserID: e.UserID}
}

func toEntity(m AccountModel) entity.Account {
	return entity.Account{ID: m.ID, Name: m.Name, Taxable: m.Taxable, UserID: m.UserID}
}

// FindForOwner retrieves one account scoped to its owner.
func (r *accountMySQL) FindForOwner(ctx context.Context, id, ownerID uint) (*entity.Account, error) {
	var m AccountModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// ListForOwner returns all of the owner's accounts.
func (r *accountMySQL) ListForOwner(ctx context.Context, ownerID uint) ([]entity.Account, error) {
	var rows []AccountModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Account, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Create persists a new account and writes the generated id back.
func (r *accountMySQL) Create(ctx context.Context, account *entity.Account) error {
	m := toModel(*account)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	account.ID = m.ID
	return nil
}

// Update overwrites the account's name and taxable flag, scoped to the
// owner.
func (r *accountMySQL) Update(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var existing AccountModel
		err := dbtx.Where("id = ? AND user_id = ?", account.ID, account.UserID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrAccountNotFound
			}
			return err
		}
		return dbtx.Model(&existing).
			Select("Name", "Taxable").
			Updates(toModel(*account)).Error
	})
}

// DeleteWithTransactions removes the account and every transaction
// assigned to it in one database transaction.
func (r *accountMySQL) DeleteWithTransactions(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.
			Where("account_id = ? AND user_id = ?", id, ownerID).
			Delete(&txadapters.TransactionModel{}).Error; err != nil {
			return err
		}
		res := dbtx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&AccountModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrAccountNotFound
		}
		return nil
	})
}

// Taxable reports whether the account exists, belongs to the owner and
// is flagged taxable. A missing or foreign account reports false so the
// adjusted cost base computation can short-circuit without an error.
func (r *accountMySQL) Taxable(ctx context.Context, accountID, ownerID uint) (bool, error) {
	account, err := r.FindForOwner(ctx, accountID, ownerID)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return account.Taxable, nil
}
