package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"campusmart/internal/commons"
	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
	"campusmart/internal/order/lifecycle"
	"campusmart/internal/order/view"
)

type OrdersUseCase interface {
	ListOrders(ctx context.Context, role domain.Role) ([]view.OrderView, error)
	GetOrder(ctx context.Context, id domain.ID, role domain.Role) (view.OrderView, error)
	Perform(ctx context.Context, id domain.ID, role domain.Role, event lifecycle.Event) (view.OrderView, error)
}

var deliveryEvents = map[string]lifecycle.Event{
	"accept":     lifecycle.EventAcceptDelivery,
	"pickup":     lifecycle.EventPickUp,
	"in-transit": lifecycle.EventStartTransit,
	"delivered":  lifecycle.EventMarkDelivered,
}

type OrdersController struct {
	useCase OrdersUseCase
	logger  *zap.Logger
}

func NewOrdersController(useCase OrdersUseCase, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrdersController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	role, err := roleParam(r, domain.RoleBuyer)
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	views, err := c.useCase.ListOrders(r.Context(), role)
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusOK, views)
}

func (c *OrdersController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	role, err := roleParam(r, domain.RoleBuyer)
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	v, err := c.useCase.GetOrder(r.Context(), domain.ID(chi.URLParam(r, "orderId")), role)
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	commons.WriteData(w, c.logger, traceID, http.StatusOK, v)
}

func (c *OrdersController) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	c.performAsQueryRole(w, r, lifecycle.EventConfirmDelivery)
}

func (c *OrdersController) ConfirmService(w http.ResponseWriter, r *http.Request) {
	c.performAsQueryRole(w, r, lifecycle.EventConfirmService)
}

func (c *OrdersController) ReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	c.perform(w, r, commons.NewTraceID(), domain.RoleBuyer, lifecycle.EventReleaseEscrow)
}

func (c *OrdersController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.perform(w, r, commons.NewTraceID(), domain.RoleBuyer, lifecycle.EventCancel)
}

// Deliver handles the deliverer's /deliveries/{orderId}/{action} steps.
func (c *OrdersController) Deliver(w http.ResponseWriter, r *http.Request) {
	traceID := commons.NewTraceID()

	action := chi.URLParam(r, "action")
	event, ok := deliveryEvents[action]
	if !ok {
		commons.WriteValidationError(w, c.logger, traceID, "unknown delivery action", apperrors.ValidationDetail{
			Field:   "action",
			Message: "action must be one of accept, pickup, in-transit, delivered",
		})
		return
	}

	c.perform(w, r, traceID, domain.RoleDeliverer, event)
}

func (c *OrdersController) performAsQueryRole(w http.ResponseWriter, r *http.Request, event lifecycle.Event) {
	traceID := commons.NewTraceID()

	role, err := roleParam(r, "")
	if err != nil {
		commons.WriteError(w, c.logger, traceID, err)
		return
	}

	c.perform(w, r, traceID, role, event)
}

func (c *OrdersController) perform(w http.ResponseWriter, r *http.Request, traceID string, role domain.Role, event lifecycle.Event) {
	orderID := domain.ID(chi.URLParam(r, "orderId"))
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("orderId", orderID.String()))

	v, err := c.useCase.Perform(r.Context(), orderID, role, event)
	if err != nil {
		logger.Info("order action rejected", zap.String("event", string(event)), zap.Error(err))
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteData(w, logger, traceID, http.StatusOK, v)
}

// roleParam reads ?role=. An empty fallback makes the parameter required.
func roleParam(r *http.Request, fallback domain.Role) (domain.Role, error) {
	raw := r.URL.Query().Get("role")
	if raw == "" && fallback != "" {
		return fallback, nil
	}
	role, ok := domain.ParseRole(raw)
	if !ok {
		msg := "role must be one of buyer, seller, deliverer"
		if raw == "" {
			msg = "role is required"
		}
		return "", apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "role",
			Message: msg,
		})
	}
	return role, nil
}
