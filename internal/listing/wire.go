package listing

import (
	"go.uber.org/zap"

	"campusmart/internal/config"
	"campusmart/internal/listing/controller"
	"campusmart/internal/listing/service"
	"campusmart/internal/listing/usecase"
	"campusmart/internal/notify"
	"campusmart/internal/retry"
	"campusmart/internal/store"
)

// NewModule wires the listing stack. invalidator may be nil when no catalog
// cache is configured.
func NewModule(
	client service.RemoteClient,
	st *store.Store,
	invalidator usecase.CatalogInvalidator,
	notifier notify.Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) *controller.ListingsController {
	policy := retry.Policy{
		MaxRetries:   cfg.Retry.MaxRetries,
		InitialDelay: cfg.Retry.InitialDelay,
	}
	svc := service.NewListingService(client, policy, logger)

	var opts []usecase.Option
	if invalidator != nil {
		opts = append(opts, usecase.WithCatalogInvalidator(invalidator))
	}
	uc := usecase.NewListingsUseCase(svc, st, notifier, logger, opts...)
	return controller.NewListingsController(uc, logger)
}
