// Package dto defines data transfer objects for the transactions
// feature's HTTP transport layer. Money fields travel as decimal strings
// ("27.18") and dates as YYYY-MM-DD, matching the web client.
package dto

import (
	"fmt"
	"time"

	"portfolio_backend/internal/feature/transactions/domain/entity"
	"portfolio_backend/internal/shared/money"
)

const dateLayout = "2006-01-02"

// TransactionReq represents the request body for creating or updating a
// stock transaction.
type TransactionReq struct {
	TransactionType string `json:"transaction_type" binding:"required"`
	StockSymbol     string `json:"stock_symbol" binding:"required"`
	CostPerUnit     string `json:"cost_per_unit" binding:"required"`
	Quantity        int64  `json:"quantity" binding:"required"`
	TradeFee        string `json:"trade_fee" binding:"required"`
	TradeDate       string `json:"trade_date" binding:"required"`
	AccountID       *uint  `json:"account_id"`
}

// ToEntity converts the request into a domain transaction owned by ownerID.
func (r TransactionReq) ToEntity(ownerID uint) (entity.Transaction, error) {
	txType, err := entity.ParseTransactionType(r.TransactionType)
	if err != nil {
		return entity.Transaction{}, err
	}
	costPerUnit, err := money.ParseDecimal(r.CostPerUnit)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("cost_per_unit: %w", err)
	}
	tradeFee, err := money.ParseDecimal(r.TradeFee)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("trade_fee: %w", err)
	}
	tradeDate, err := time.Parse(dateLayout, r.TradeDate)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("trade_date: %w", err)
	}
	return entity.Transaction{
		Type:        txType,
		Symbol:      r.StockSymbol,
		CostPerUnit: costPerUnit,
		Quantity:    r.Quantity,
		TradeFee:    tradeFee,
		TradeDate:   tradeDate,
		AccountID:   r.AccountID,
		UserID:      ownerID,
	}, nil
}

// TransactionResponse represents one stock transaction in API responses.
type TransactionResponse struct {
	ID              uint   `json:"id"`
	TransactionType string `json:"transaction_type"`
	StockSymbol     string `json:"stock_symbol"`
	CostPerUnit     string `json:"cost_per_unit"`
	Quantity        int64  `json:"quantity"`
	TradeFee        string `json:"trade_fee"`
	TradeDate       string `json:"trade_date"`
	AccountID       *uint  `json:"account_id"`
}

// FromEntity converts a domain transaction into its response form.
func FromEntity(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		TransactionType: string(tx.Type),
		StockSymbol:     tx.Symbol,
		CostPerUnit:     money.FormatDecimal(tx.CostPerUnit),
		Quantity:        tx.Quantity,
		TradeFee:        money.FormatDecimal(tx.TradeFee),
		TradeDate:       tx.TradeDate.UTC().Format(dateLayout),
		AccountID:       tx.AccountID,
	}
}

// FromEntities converts a slice of domain transactions.
func FromEntities(txs []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromEntity(tx))
	}
	return out
}

// BatchMoveReq represents the request body for reassigning a set of
// transactions to an account. A null new_account_id moves them to the
// unassigned bucket.
type BatchMoveReq struct {
	NewAccountID   *uint  `json:"new_account_id"`
	TransactionIDs []uint `json:"transaction_ids" binding:"required"`
}

// BatchDeleteReq represents the request body for deleting a set of
// transactions.
type BatchDeleteReq struct {
	TransactionIDs []uint `json:"transaction_ids" binding:"required"`
}
