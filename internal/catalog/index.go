package catalog

import "campusmart/internal/domain"

// MapIndex is an in-memory product lookup.
type MapIndex map[domain.ID]domain.CatalogProduct

func (m MapIndex) Lookup(id domain.ID) (domain.CatalogProduct, bool) {
	p, ok := m[id]
	return p, ok
}

// FromListings indexes the store's own listings. Optimistic entries are
// left out until the backend has assigned them an id.
func FromListings(listings []domain.Listing) MapIndex {
	index := make(MapIndex, len(listings))
	for _, l := range listings {
		if l.ID.IsZero() || l.ID.IsTemporary() {
			continue
		}
		index[l.ID] = l.CatalogEntry()
	}
	return index
}
