// Package entity defines the domain models for the accounts feature.
package entity

// Account represents an investment account owned by a user.
//
// The Taxable flag drives the adjusted cost base computation: ACB is a
// capital-gains concept, so it is only produced for taxable accounts.
type Account struct {
	ID      uint
	Name    string
	Taxable bool
	UserID  uint
}
