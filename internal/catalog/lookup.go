package catalog

import (
	"context"

	"campusmart/internal/domain"
)

// Lookup resolves ids the same way order views do and reports the misses,
// keeping the request order.
func (s *Service) Lookup(ctx context.Context, ids []domain.ID, listings []domain.Listing) domain.CatalogLookup {
	index := s.IndexFor(ctx, ids, listings)

	result := domain.CatalogLookup{
		Products: []domain.CatalogProduct{},
		NotFound: []domain.ID{},
	}
	seen := make(map[domain.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if p, ok := index.Lookup(id); ok {
			result.Products = append(result.Products, p)
		} else {
			result.NotFound = append(result.NotFound, id)
		}
	}
	return result
}
