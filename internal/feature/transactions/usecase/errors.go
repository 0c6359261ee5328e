// Package usecase implements the business logic for the transactions feature.
package usecase

import "errors"

var (
	// ErrTransactionNotFound is returned when a transaction does not
	// exist or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransaction is returned when a transaction fails
	// validation (non-positive quantity, negative amounts, missing
	// symbol or trade date).
	ErrInvalidTransaction = errors.New("invalid transaction")
)
