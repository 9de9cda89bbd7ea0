package domain

// CatalogProduct is the cached slice of a product that order views need.
type CatalogProduct struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	StoreName string `json:"store_name"`
	Currency  string `json:"currency"`
}

// Roles is the session's entrepreneur and deliverer state.
type Roles struct {
	Entrepreneur       bool   `json:"is_entrepreneur"`
	EntrepreneurStatus string `json:"entrepreneur_status,omitempty"`
	Deliverer          bool   `json:"is_deliverer"`
	DelivererStatus    string `json:"deliverer_status,omitempty"`
}

// CatalogLookup splits requested product ids into the entries that
// resolved and the ids no source knows.
type CatalogLookup struct {
	Products []CatalogProduct `json:"products"`
	NotFound []ID             `json:"notFound"`
}
