package domain

import "github.com/shopspring/decimal"

type ListingKind string

const (
	ListingProduct ListingKind = "product"
	ListingService ListingKind = "service"
)

// Listing is a product or service owned by the signed-in entrepreneur's
// store. Optimistic is set only on local copies the backend has not
// confirmed yet and is never serialized.
type Listing struct {
	ID          ID              `json:"id,omitempty"`
	Kind        ListingKind     `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	StoreID     ID              `json:"store_id,omitempty"`
	StoreName   string          `json:"store_name,omitempty"`
	Images      []string        `json:"images,omitempty"`

	Optimistic bool `json:"-"`
}

func (l Listing) Key() string {
	return string(l.ID)
}

func (l Listing) WithKey(key string) Listing {
	l.ID = ID(key)
	return l
}

func (l Listing) MarkOptimistic(optimistic bool) Listing {
	l.Optimistic = optimistic
	return l
}

// CatalogEntry projects the listing into the lookup shape used by order views.
func (l Listing) CatalogEntry() CatalogProduct {
	return CatalogProduct{
		ID:        l.ID,
		Name:      l.Name,
		StoreName: l.StoreName,
		Currency:  l.Currency,
	}
}
