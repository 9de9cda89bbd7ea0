package catalog

import (
	"context"

	"go.uber.org/zap"

	"campusmart/internal/domain"
)

type Repository interface {
	FindByIDs(ctx context.Context, ids []domain.ID) ([]domain.CatalogProduct, error)
}

type Cache interface {
	GetMany(ctx context.Context, ids []domain.ID) (map[domain.ID]domain.CatalogProduct, error)
	SetMany(ctx context.Context, products []domain.CatalogProduct) error
}

// Service assembles the product lookup order views are built against.
// Either backend may be nil; every failure degrades to a smaller index.
type Service struct {
	repo   Repository
	cache  Cache
	logger *zap.Logger
}

func NewService(repo Repository, cache Cache, logger *zap.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// IndexFor resolves productIDs against the store's listings, then the
// cache, then the catalog database, filling the cache with what the
// database returned.
func (s *Service) IndexFor(ctx context.Context, productIDs []domain.ID, listings []domain.Listing) MapIndex {
	index := FromListings(listings)

	missing := s.missing(productIDs, index)
	if len(missing) == 0 {
		return index
	}

	if s.cache != nil {
		cached, err := s.cache.GetMany(ctx, missing)
		if err != nil {
			s.logger.Warn("catalog cache unavailable", zap.Error(err))
		}
		for id, p := range cached {
			index[id] = p
		}
		missing = s.missing(missing, index)
	}

	if len(missing) == 0 || s.repo == nil {
		return index
	}

	found, err := s.repo.FindByIDs(ctx, missing)
	if err != nil {
		s.logger.Warn("catalog lookup failed", zap.Int("missing", len(missing)), zap.Error(err))
		return index
	}
	for _, p := range found {
		index[p.ID] = p
	}

	if s.cache != nil && len(found) > 0 {
		if err := s.cache.SetMany(ctx, found); err != nil {
			s.logger.Warn("catalog cache fill failed", zap.Error(err))
		}
	}

	return index
}

func (s *Service) missing(ids []domain.ID, index MapIndex) []domain.ID {
	seen := make(map[domain.ID]struct{}, len(ids))
	var out []domain.ID
	for _, id := range ids {
		if id.IsZero() || id.IsTemporary() {
			continue
		}
		if _, ok := index[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
