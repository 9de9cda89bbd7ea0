package catalog

import (
	"context"

	"go.uber.org/zap"

	"campusmart/internal/catalog/controller"
	"campusmart/internal/domain"
	"campusmart/internal/store"
)

type storeLookup struct {
	service *Service
	store   *store.Store
}

func (l storeLookup) Lookup(ctx context.Context, ids []domain.ID) domain.CatalogLookup {
	return l.service.Lookup(ctx, ids, l.store.Listings())
}

func NewModule(service *Service, st *store.Store, logger *zap.Logger) *controller.LookupController {
	return controller.NewLookupController(storeLookup{service: service, store: st}, logger)
}
