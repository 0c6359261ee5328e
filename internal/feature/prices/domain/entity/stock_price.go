// Package entity defines the domain models for the prices feature.
package entity

import "time"

// StockPrice is one end-of-day closing price observation for a symbol.
// Only the most recent observation per symbol is used for valuation.
type StockPrice struct {
	ID         uint
	Symbol     string
	PriceDate  time.Time
	ClosePrice int64 // Closing price in cents
}
