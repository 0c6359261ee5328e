// Package adapters provides the repository implementations for the
// transactions feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/portfolio/usecase"
	"portfolio_backend/internal/feature/transactions/domain/entity"
	txusecase "portfolio_backend/internal/feature/transactions/usecase"
)

// transactionMySQL is the MySQL implementation of the transaction
// repositories, backed by GORM.
type transactionMySQL struct {
	db *gorm.DB
}

// Compile-time checks: the adapter serves both the transactions feature
// and the portfolio valuation core.
var (
	_ txusecase.TransactionRepository = (*transactionMySQL)(nil)
	_ usecase.TransactionRepository   = (*transactionMySQL)(nil)
)

// NewTransactionRepository creates a new transactionMySQL instance with
// the given gorm.DB connection.
func NewTransactionRepository(db *gorm.DB) *transactionMySQL {
	return &transactionMySQL{db: db}
}

// TransactionModel is the GORM model for the stock_transactions table.
type TransactionModel struct {
	ID          uint      `gorm:"primaryKey"`
	Type        string    `gorm:"column:transaction_type;size:8;not null"`
	Symbol      string    `gorm:"column:stock_symbol;size:32;not null;index"`
	CostPerUnit int64     `gorm:"not null"`
	Quantity    int64     `gorm:"not null"`
	TradeFee    int64     `gorm:"not null"`
	TradeDate   time.Time `gorm:"not null;index"`
	AccountID   *uint     `gorm:"index"`
	UserID      uint      `gorm:"not null;index"`
}

func (TransactionModel) TableName() string {
	return "stock_transactions"
}

func toModel(e entity.Transaction) TransactionModel {
	return TransactionModel{
		ID:          e.ID,
		Type:        string(e.Type),
		Symbol:      e.Symbol,
		CostPerUnit: e.CostPerUnit,
		Quantity:    e.Quantity,
		TradeFee:    e.TradeFee,
		TradeDate:   e.TradeDate,
		AccountID:   e.AccountID,
		UserID:      e.UserID,
	}
}

func toEntity(m TransactionModel) entity.Transaction {
	return entity.Transaction{
		ID:          m.ID,
		Type:        entity.TransactionType(m.Type),
		Symbol:      m.Symbol,
		CostPerUnit: m.CostPerUnit,
		Quantity:    m.Quantity,
		TradeFee:    m.TradeFee,
		TradeDate:   m.TradeDate,
		AccountID:   m.AccountID,
		UserID:      m.UserID,
	}
}

// FindForOwner retrieves one transaction scoped to its owner.
func (r *transactionMySQL) FindForOwner(ctx context.Context, id, ownerID uint) (*entity.Transaction, error) {
	var m TransactionModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, txusecase.ErrTransactionNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// ListForScope returns the scope's transactions ordered by
// (trade_date, id) ascending. The id tie-break makes same-day replays
// deterministic.
func (r *transactionMySQL) ListForScope(ctx context.Context, scope usecase.Scope) ([]entity.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", scope.OwnerID)
	if scope.AccountID != nil {
		q = q.Where("account_id = ?", *scope.AccountID)
	}
	return r.list(q)
}

// ListForAccount returns the owner's transactions for one account; a
// nil accountID selects the unassigned bucket.
func (r *transactionMySQL) ListForAccount(ctx context.Context, ownerID uint, accountID *uint) ([]entity.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	} else {
		q = q.Where("account_id IS NULL")
	}
	return r.list(q)
}

// ListForOwner returns all of the owner's transactions across accounts.
func (r *transactionMySQL) ListForOwner(ctx context.Context, ownerID uint) ([]entity.Transaction, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", ownerID))
}

func (r *transactionMySQL) list(q *gorm.DB) ([]entity.Transaction, error) {
	var rows []TransactionModel
	if err := q.Order("trade_date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Create persists a new transaction and writes the generated id back.
func (r *transactionMySQL) Create(ctx context.Context, tx *entity.Transaction) error {
	m := toModel(*tx)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// CreateBatch persists all rows in one transaction; a failure rolls the
// whole batch back.
func (r *transactionMySQL) CreateBatch(ctx context.Context, txs []entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	ms := make([]TransactionModel, 0, len(txs))
	for _, e := range txs {
		ms = append(ms, toModel(e))
	}
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		return dbtx.Create(&ms).Error
	})
}

// Update overwrites the transaction's data fields, scoped to the owner.
// The row is looked up first so an unchanged update is not mistaken for
// a missing one (MySQL reports zero affected rows for identical values).
func (r *transactionMySQL) Update(ctx context.Context, tx *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		var existing TransactionModel
		err := dbtx.Where("id = ? AND user_id = ?", tx.ID, tx.UserID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return txusecase.ErrTransactionNotFound
			}
			return err
		}
		return dbtx.Model(&existing).
			Select("Type", "Symbol", "CostPerUnit", "Quantity", "TradeFee", "TradeDate", "AccountID").
			Updates(toModel(*tx)).Error
	})
}

// Delete removes one transaction scoped to its owner.
func (r *transactionMySQL) Delete(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&TransactionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return txusecase.ErrTransactionNotFound
	}
	return nil
}

// DeleteBatch removes the owner's transactions with the given ids.
// Ids belonging to other users are left untouched.
func (r *transactionMySQL) DeleteBatch(ctx context.Context, ids []uint, ownerID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, ownerID).
		Delete(&TransactionModel{}).Error
}

// AssignAccount moves the owner's listed transactions to an account.
func (r *transactionMySQL) AssignAccount(ctx context.Context, ids []uint, accountID *uint, ownerID uint) error {
	return r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Where("id IN ? AND user_id = ?", ids, ownerID).
		Update("account_id", accountID).Error
}
