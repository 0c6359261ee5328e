// Package entity defines the domain models for the transactions feature.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType distinguishes buy and sell trades.
type TransactionType string

const (
	// TransactionTypeBuy marks a purchase of shares.
	TransactionTypeBuy TransactionType = "buy"
	// TransactionTypeSell marks a disposal of shares.
	TransactionTypeSell TransactionType = "sell"
)

// ParseTransactionType converts a client-supplied string ("buy"/"sell",
// any case) into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TransactionTypeBuy):
		return TransactionTypeBuy, nil
	case string(TransactionTypeSell):
		return TransactionTypeSell, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction represents a single buy or sell of a stock symbol.
// Monetary fields are in cents. A transaction always belongs to one user
// and optionally to one investment account (nil AccountID = unassigned).
type Transaction struct {
	ID          uint
	Type        TransactionType
	Symbol      string    // Ticker symbol, uppercased on write (e.g. "VCN.TO")
	CostPerUnit int64     // Price per share in cents
	Quantity    int64     // Share count, positive
	TradeFee    int64     // Commission in cents
	TradeDate   time.Time // Calendar date of the trade, no time component
	AccountID   *uint
	UserID      uint
}
