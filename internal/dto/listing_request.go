package dto

import "github.com/shopspring/decimal"

// ListingRequest is the form a listing is created or edited from.
type ListingRequest struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Currency    string           `json:"currency"`
	Images      []string         `json:"images"`
}
