package order

import (
	"go.uber.org/zap"

	"campusmart/internal/config"
	"campusmart/internal/notify"
	"campusmart/internal/order/controller"
	"campusmart/internal/order/lifecycle"
	"campusmart/internal/order/service"
	"campusmart/internal/order/usecase"
	"campusmart/internal/order/view"
	"campusmart/internal/retry"
	"campusmart/internal/store"
)

func NewModule(
	client service.RemoteClient,
	st *store.Store,
	catalog usecase.CatalogIndexer,
	notifier notify.Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) *controller.OrdersController {
	policy := retry.Policy{
		MaxRetries:   cfg.Retry.MaxRetries,
		InitialDelay: cfg.Retry.InitialDelay,
	}
	svc := service.NewOrderService(client, policy, logger)
	uc := usecase.NewOrdersUseCase(svc, st, lifecycle.Default(), catalog, notifier, logger,
		view.WithDeliveryFeeInTotal(cfg.Order.TotalIncludesDeliveryFee),
	)
	return controller.NewOrdersController(uc, logger)
}
