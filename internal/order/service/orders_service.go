package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"campusmart/internal/api"
	"campusmart/internal/domain"
	"campusmart/internal/order/lifecycle"
	"campusmart/internal/retry"
)

// RemoteClient is the slice of the marketplace API orders need.
type RemoteClient interface {
	Orders(ctx context.Context) ([]domain.Order, error)
	BuyerConfirmDelivery(ctx context.Context, orderID domain.ID) (domain.Order, error)
	SellerConfirmDelivery(ctx context.Context, orderID domain.ID) (domain.Order, error)
	ConfirmServiceCompletion(ctx context.Context, orderID domain.ID, role domain.Role) (domain.Order, error)
	ReleaseEscrow(ctx context.Context, orderID domain.ID) (domain.Order, error)
	CancelOrder(ctx context.Context, orderID domain.ID) (domain.Order, error)
	Deliver(ctx context.Context, orderID domain.ID, action api.DeliveryAction) (domain.Order, error)
}

// OrderService sends lifecycle events to the backend, retrying transient
// failures under the configured policy.
type OrderService struct {
	client RemoteClient
	policy retry.Policy
	sleep  retry.Sleeper
	logger *zap.Logger
}

func NewOrderService(client RemoteClient, policy retry.Policy, logger *zap.Logger) *OrderService {
	return &OrderService{client: client, policy: policy, logger: logger}
}

// WithSleeper overrides the backoff wait, for tests.
func (s *OrderService) WithSleeper(sleep retry.Sleeper) *OrderService {
	s.sleep = sleep
	return s
}

func (s *OrderService) options(operation string) []retry.Option {
	extra := []retry.Option{retry.Named(operation), retry.WithLogger(s.logger)}
	if s.sleep != nil {
		extra = append(extra, retry.WithSleeper(s.sleep))
	}
	return s.policy.Options(extra...)
}

func (s *OrderService) Orders(ctx context.Context) ([]domain.Order, error) {
	return retry.Do(ctx, s.client.Orders, s.options("list_orders")...)
}

// Perform sends event for orderID acting as role and returns the backend's
// answer, which may be a partial record.
func (s *OrderService) Perform(ctx context.Context, orderID domain.ID, role domain.Role, event lifecycle.Event) (domain.Order, error) {
	send, err := s.remoteFor(orderID, role, event)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.Debug("sending order event",
		zap.String("orderId", orderID.String()),
		zap.String("role", string(role)),
		zap.String("event", string(event)),
	)
	return retry.Do(ctx, send, s.options(string(event))...)
}

func (s *OrderService) remoteFor(id domain.ID, role domain.Role, event lifecycle.Event) (func(context.Context) (domain.Order, error), error) {
	deliver := func(action api.DeliveryAction) func(context.Context) (domain.Order, error) {
		return func(ctx context.Context) (domain.Order, error) {
			return s.client.Deliver(ctx, id, action)
		}
	}

	switch event {
	case lifecycle.EventAcceptDelivery:
		return deliver(api.DeliveryAccept), nil
	case lifecycle.EventPickUp:
		return deliver(api.DeliveryPickUp), nil
	case lifecycle.EventStartTransit:
		return deliver(api.DeliveryInTransit), nil
	case lifecycle.EventMarkDelivered:
		return deliver(api.DeliveryDelivered), nil
	case lifecycle.EventConfirmDelivery:
		switch role {
		case domain.RoleBuyer:
			return func(ctx context.Context) (domain.Order, error) {
				return s.client.BuyerConfirmDelivery(ctx, id)
			}, nil
		case domain.RoleSeller:
			return func(ctx context.Context) (domain.Order, error) {
				return s.client.SellerConfirmDelivery(ctx, id)
			}, nil
		}
	case lifecycle.EventConfirmService:
		return func(ctx context.Context) (domain.Order, error) {
			return s.client.ConfirmServiceCompletion(ctx, id, role)
		}, nil
	case lifecycle.EventReleaseEscrow:
		return func(ctx context.Context) (domain.Order, error) {
			return s.client.ReleaseEscrow(ctx, id)
		}, nil
	case lifecycle.EventCancel:
		return func(ctx context.Context) (domain.Order, error) {
			return s.client.CancelOrder(ctx, id)
		}, nil
	}
	return nil, fmt.Errorf("no remote call for %s as %s", event, role)
}
