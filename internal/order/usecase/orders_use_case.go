package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"campusmart/internal/catalog"
	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
	"campusmart/internal/notify"
	"campusmart/internal/optimistic"
	"campusmart/internal/order/lifecycle"
	"campusmart/internal/order/view"
	"campusmart/internal/store"
)

type OrderService interface {
	Orders(ctx context.Context) ([]domain.Order, error)
	Perform(ctx context.Context, orderID domain.ID, role domain.Role, event lifecycle.Event) (domain.Order, error)
}

type CatalogIndexer interface {
	IndexFor(ctx context.Context, productIDs []domain.ID, listings []domain.Listing) catalog.MapIndex
}

var successMessages = map[lifecycle.Event]string{
	lifecycle.EventAcceptDelivery:  "Delivery accepted.",
	lifecycle.EventPickUp:          "Marked as picked up.",
	lifecycle.EventStartTransit:    "Marked as in transit.",
	lifecycle.EventMarkDelivered:   "Marked as delivered.",
	lifecycle.EventConfirmDelivery: "Delivery confirmed.",
	lifecycle.EventConfirmService:  "Service completion confirmed.",
	lifecycle.EventReleaseEscrow:   "Escrow released.",
	lifecycle.EventCancel:          "Order cancelled.",
}

// OrdersUseCase serves the order views and requests lifecycle
// transitions. Local state changes go through the optimistic coordinator so
// a refused transition is rolled back with a notification.
type OrdersUseCase struct {
	service     OrderService
	store       *store.Store
	coordinator *optimistic.Coordinator[domain.Order]
	machine     *lifecycle.Machine
	catalog     CatalogIndexer
	notifier    notify.Notifier
	viewOpts    []view.Option
	logger      *zap.Logger
}

func NewOrdersUseCase(
	service OrderService,
	st *store.Store,
	machine *lifecycle.Machine,
	catalog CatalogIndexer,
	notifier notify.Notifier,
	logger *zap.Logger,
	viewOpts ...view.Option,
) *OrdersUseCase {
	coordinator := optimistic.New[domain.Order](st.OrderTable(), notifier, logger,
		optimistic.WithMessages[domain.Order](optimistic.Messages{
			Update: "Could not update the order. Please try again.",
		}),
	)
	return &OrdersUseCase{
		service:     service,
		store:       st,
		coordinator: coordinator,
		machine:     machine,
		catalog:     catalog,
		notifier:    notifier,
		viewOpts:    viewOpts,
		logger:      logger,
	}
}

// ListOrders refreshes the order list from the backend and returns it as
// seen by role.
func (uc *OrdersUseCase) ListOrders(ctx context.Context, role domain.Role) ([]view.OrderView, error) {
	orders, err := uc.service.Orders(ctx)
	if err != nil {
		uc.logger.Warn("refreshing orders failed", zap.Error(err))
		return nil, err
	}
	uc.store.Dispatch(store.SyncOrders{Orders: orders})

	return uc.views(ctx, uc.store.Orders(), role), nil
}

// GetOrder returns one order from the session's store, refreshing once if
// it is not there yet.
func (uc *OrdersUseCase) GetOrder(ctx context.Context, id domain.ID, role domain.Role) (view.OrderView, error) {
	order, err := uc.storedOrder(ctx, id)
	if err != nil {
		return view.OrderView{}, err
	}
	return uc.views(ctx, []domain.Order{order}, role)[0], nil
}

// storedOrder reads the order from the store, reloading the order list once
// when the session has not seen it yet.
func (uc *OrdersUseCase) storedOrder(ctx context.Context, id domain.ID) (domain.Order, error) {
	if order, ok := uc.store.Order(id); ok {
		return order, nil
	}

	orders, err := uc.service.Orders(ctx)
	if err != nil {
		uc.logger.Warn("refreshing orders failed", zap.Error(err))
		return domain.Order{}, err
	}
	uc.store.Dispatch(store.SyncOrders{Orders: orders})

	order, ok := uc.store.Order(id)
	if !ok {
		return domain.Order{}, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	return order, nil
}

// Perform requests event on the order as role. The order shows the
// transition at once; the backend's answer is merged in, or the previous
// state is restored if it refuses.
func (uc *OrdersUseCase) Perform(ctx context.Context, id domain.ID, role domain.Role, event lifecycle.Event) (view.OrderView, error) {
	logger := uc.logger.With(
		zap.String("orderId", id.String()),
		zap.String("role", string(role)),
		zap.String("event", string(event)),
	)

	current, err := uc.storedOrder(ctx, id)
	if err != nil {
		return view.OrderView{}, err
	}
	if !uc.machine.Can(current, role, event) {
		return view.OrderView{}, apperrors.NewConflictError(fmt.Sprintf("%s is not available for order %s", event, id))
	}

	// The order may have moved while this request waited for an earlier
	// mutation of the same order; the gate is checked again under the queue.
	var gateErr error
	updated, err := uc.coordinator.Update(ctx, id.String(),
		func(cur domain.Order) domain.Order {
			next, err := uc.machine.Apply(cur, role, event)
			if err != nil {
				gateErr = err
				return cur
			}
			return next
		},
		func(ctx context.Context, patched domain.Order) (domain.Order, error) {
			if gateErr != nil {
				return domain.Order{}, gateErr
			}
			answer, err := uc.service.Perform(ctx, id, role, event)
			if err != nil {
				return domain.Order{}, err
			}
			return Merge(patched, answer), nil
		},
	)
	if err != nil {
		logger.Warn("order event failed", zap.Error(err))
		return view.OrderView{}, err
	}

	logger.Info("order event applied", zap.String("status", string(updated.Status)))
	if msg, ok := successMessages[event]; ok {
		uc.notifier.Success(msg)
	}
	return uc.views(ctx, []domain.Order{updated}, role)[0], nil
}

func (uc *OrdersUseCase) views(ctx context.Context, orders []domain.Order, role domain.Role) []view.OrderView {
	productIDs := make([]domain.ID, 0, len(orders))
	for _, o := range orders {
		productIDs = append(productIDs, o.ProductID)
	}

	var index view.CatalogIndex
	if uc.catalog != nil {
		index = uc.catalog.IndexFor(ctx, productIDs, uc.store.Listings())
	}

	views := make([]view.OrderView, 0, len(orders))
	for _, o := range orders {
		v := view.BuildOrderView(o, index, uc.viewOpts...)
		v.FullySettled = lifecycle.IsFullySettled(o)
		for _, e := range uc.machine.Available(o, role) {
			v.Actions = append(v.Actions, string(e))
		}
		views = append(views, v)
	}
	return views
}

// Merge folds a backend answer into the locally known order. The backend
// sometimes answers with only the fields it changed, so empty fields keep
// their local value and confirmation flags never move back to false.
func Merge(local, remote domain.Order) domain.Order {
	merged := local

	if !remote.ID.IsZero() {
		merged.ID = remote.ID
	}
	if remote.Type != "" {
		merged.Type = remote.Type
	}
	if remote.Status != "" {
		merged.Status = remote.Status
	}
	if remote.EscrowStatus != "" {
		merged.EscrowStatus = remote.EscrowStatus
	}
	if remote.DeliveryStatus != "" {
		merged.DeliveryStatus = remote.DeliveryStatus
	}
	if !remote.ProductID.IsZero() {
		merged.ProductID = remote.ProductID
	}
	if !remote.StoreID.IsZero() {
		merged.StoreID = remote.StoreID
	}
	if !remote.Price.IsZero() {
		merged.Price = remote.Price
	}
	if !remote.DeliveryFee.IsZero() {
		merged.DeliveryFee = remote.DeliveryFee
	}
	if remote.Currency != "" {
		merged.Currency = remote.Currency
	}
	if !remote.CreatedAt.IsZero() {
		merged.CreatedAt = remote.CreatedAt
	}

	merged.BuyerConfirmed = local.BuyerConfirmed || remote.BuyerConfirmed
	merged.SellerConfirmed = local.SellerConfirmed || remote.SellerConfirmed
	merged.DelivererConfirmed = local.DelivererConfirmed || remote.DelivererConfirmed
	merged.Optimistic = false
	return merged
}
