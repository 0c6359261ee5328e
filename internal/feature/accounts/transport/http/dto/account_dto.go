// Package dto defines the request/response payloads for the accounts
// endpoints.
package dto

import "portfolio_backend/internal/feature/accounts/domain/entity"

// AccountReq is the payload for creating or updating an account.
type AccountReq struct {
	Name    string `json:"name" binding:"required"`
	Taxable *bool  `json:"taxable" binding:"required"`
}

// ToEntity converts the request into a domain account owned by ownerID.
func (r AccountReq) ToEntity(ownerID uint) entity.Account {
	return entity.Account{
		Name:    r.Name,
		Taxable: *r.Taxable,
		UserID:  ownerID,
	}
}

// AccountResponse is the wire representation of one account.
type AccountResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Taxable bool   `json:"taxable"`
}

// FromEntity converts a domain account into its wire representation.
func FromEntity(a entity.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Name: a.Name, Taxable: a.Taxable}
}

// FromEntities converts a slice of accounts, never returning nil so the
// empty case serializes as [].
func FromEntities(accounts []entity.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, FromEntity(a))
	}
	return out
}
