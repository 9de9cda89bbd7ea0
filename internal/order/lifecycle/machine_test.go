package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
)

var allRoles = []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleDeliverer}

func TestGates_ClosedOnMalformedOrders(t *testing.T) {
	malformed := []domain.Order{
		{},
		{Type: domain.OrderTypeService, EscrowStatus: domain.EscrowHeld},
		{Status: domain.OrderStatusPending, DeliveryStatus: domain.DeliveryDelivered, DelivererConfirmed: true},
		{Type: "bundle", Status: domain.OrderStatusPending},
		{BuyerConfirmed: true, SellerConfirmed: true, DelivererConfirmed: true, Type: domain.OrderTypeService},
		{BuyerConfirmed: true, SellerConfirmed: true, DelivererConfirmed: true, Status: domain.OrderStatusPending},
	}

	for _, o := range malformed {
		for _, role := range allRoles {
			assert.False(t, CanConfirmDelivery(o, role), "%+v as %s", o, role)
			assert.False(t, CanConfirmServiceCompletion(o, role), "%+v as %s", o, role)
		}
		assert.False(t, IsFullySettled(o), "%+v", o)
		assert.False(t, CanCancel(o), "%+v", o)
		assert.Empty(t, Default().Available(o, domain.RoleBuyer))
	}
}

func TestCanConfirmDelivery(t *testing.T) {
	delivered := domain.Order{
		Type:               domain.OrderTypeProduct,
		Status:             domain.OrderStatusPending,
		DeliveryStatus:     domain.DeliveryDelivered,
		DelivererConfirmed: true,
	}

	assert.True(t, CanConfirmDelivery(delivered, domain.RoleBuyer))
	assert.True(t, CanConfirmDelivery(delivered, domain.RoleSeller))
	assert.False(t, CanConfirmDelivery(delivered, domain.RoleDeliverer))

	inTransit := delivered
	inTransit.DeliveryStatus = domain.DeliveryInTransit
	assert.False(t, CanConfirmDelivery(inTransit, domain.RoleBuyer))

	unconfirmedByDeliverer := delivered
	unconfirmedByDeliverer.DelivererConfirmed = false
	assert.False(t, CanConfirmDelivery(unconfirmedByDeliverer, domain.RoleBuyer))

	buyerDone := delivered
	buyerDone.BuyerConfirmed = true
	assert.False(t, CanConfirmDelivery(buyerDone, domain.RoleBuyer))
	assert.True(t, CanConfirmDelivery(buyerDone, domain.RoleSeller))
}

func TestCanConfirmServiceCompletion_Idempotence(t *testing.T) {
	order := domain.Order{
		Type:            domain.OrderTypeService,
		Status:          domain.OrderStatusPending,
		EscrowStatus:    domain.EscrowHeld,
		BuyerConfirmed:  true,
		SellerConfirmed: false,
	}

	assert.False(t, CanConfirmServiceCompletion(order, domain.RoleBuyer))
	assert.True(t, CanConfirmServiceCompletion(order, domain.RoleSeller))

	again := confirm(order, domain.RoleBuyer)
	assert.True(t, again.BuyerConfirmed)
	assert.False(t, CanConfirmServiceCompletion(again, domain.RoleBuyer))

	_, err := Default().Apply(order, domain.RoleBuyer, EventConfirmService)
	_, isConflict := apperrors.IsConflictError(err)
	assert.True(t, isConflict)
}

func TestCanConfirmServiceCompletion_RequiresHeldEscrow(t *testing.T) {
	order := domain.Order{Type: domain.OrderTypeService, Status: domain.OrderStatusPending}
	assert.False(t, CanConfirmServiceCompletion(order, domain.RoleBuyer))

	order.EscrowStatus = domain.EscrowReleased
	assert.False(t, CanConfirmServiceCompletion(order, domain.RoleBuyer))

	order.EscrowStatus = domain.EscrowHeld
	order.Status = domain.OrderStatusCompleted
	assert.False(t, CanConfirmServiceCompletion(order, domain.RoleBuyer))
}

func TestIsFullySettled(t *testing.T) {
	service := domain.Order{Type: domain.OrderTypeService, Status: domain.OrderStatusPending, BuyerConfirmed: true, SellerConfirmed: true}
	assert.True(t, IsFullySettled(service))

	delivery := domain.Order{
		Type:            domain.OrderTypeProduct,
		Status:          domain.OrderStatusPending,
		DeliveryStatus:  domain.DeliveryDelivered,
		BuyerConfirmed:  true,
		SellerConfirmed: true,
	}
	assert.False(t, IsFullySettled(delivery))
	delivery.DelivererConfirmed = true
	assert.True(t, IsFullySettled(delivery))

	pickup := domain.Order{Type: domain.OrderTypeProduct, Status: domain.OrderStatusConfirmed, BuyerConfirmed: true, SellerConfirmed: true}
	assert.True(t, IsFullySettled(pickup))
	pickup.SellerConfirmed = false
	assert.False(t, IsFullySettled(pickup))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(domain.Order{Type: domain.OrderTypeProduct, Status: domain.OrderStatusPending}))
	assert.False(t, CanCancel(domain.Order{Type: domain.OrderTypeService, Status: domain.OrderStatusPending, EscrowStatus: domain.EscrowHeld}))
	assert.False(t, CanCancel(domain.Order{Type: domain.OrderTypeProduct, Status: domain.OrderStatusConfirmed}))
}

func TestMachine_DelivererFlow(t *testing.T) {
	m := Default()
	order := domain.Order{Type: domain.OrderTypeProduct, Status: domain.OrderStatusPending}

	assert.Equal(t, []Event{EventAcceptDelivery}, m.Available(order, domain.RoleDeliverer))
	assert.Equal(t, []Event{EventCancel}, m.Available(order, domain.RoleBuyer))
	assert.Empty(t, m.Available(order, domain.RoleSeller))

	steps := []struct {
		event  Event
		expect domain.DeliveryStatus
	}{
		{EventAcceptDelivery, domain.DeliveryAssigned},
		{EventPickUp, domain.DeliveryPickedUp},
		{EventStartTransit, domain.DeliveryInTransit},
		{EventMarkDelivered, domain.DeliveryDelivered},
	}
	for _, step := range steps {
		next, err := m.Apply(order, domain.RoleDeliverer, step.event)
		require.NoError(t, err, step.event)
		assert.Equal(t, step.expect, next.DeliveryStatus)
		order = next
	}
	assert.True(t, order.DelivererConfirmed)

	assert.Equal(t, []Event{EventConfirmDelivery, EventCancel}, m.Available(order, domain.RoleBuyer))
	assert.Equal(t, []Event{EventConfirmDelivery}, m.Available(order, domain.RoleSeller))

	order, err := m.Apply(order, domain.RoleBuyer, EventConfirmDelivery)
	require.NoError(t, err)
	order, err = m.Apply(order, domain.RoleSeller, EventConfirmDelivery)
	require.NoError(t, err)
	assert.True(t, IsFullySettled(order))
}

func TestMachine_RoleScoping(t *testing.T) {
	m := Default()
	order := domain.Order{Type: domain.OrderTypeProduct, Status: domain.OrderStatusPending}

	assert.False(t, m.Can(order, domain.RoleBuyer, EventAcceptDelivery))
	assert.False(t, m.Can(order, domain.RoleSeller, EventCancel))

	_, err := m.Apply(order, domain.RoleSeller, EventCancel)
	_, isConflict := apperrors.IsConflictError(err)
	assert.True(t, isConflict)

	_, err = m.Apply(order, domain.RoleBuyer, Event("teleport"))
	_, isConflict = apperrors.IsConflictError(err)
	assert.True(t, isConflict)
}

func TestMachine_ServiceEscrowFlow(t *testing.T) {
	m := Default()
	order := domain.Order{Type: domain.OrderTypeService, Status: domain.OrderStatusPending, EscrowStatus: domain.EscrowHeld}

	assert.Equal(t, []Event{EventConfirmService}, m.Available(order, domain.RoleBuyer))
	assert.False(t, m.Can(order, domain.RoleBuyer, EventReleaseEscrow))

	order, err := m.Apply(order, domain.RoleBuyer, EventConfirmService)
	require.NoError(t, err)
	assert.True(t, m.Can(order, domain.RoleBuyer, EventReleaseEscrow))
	assert.False(t, IsFullySettled(order))

	order, err = m.Apply(order, domain.RoleSeller, EventConfirmService)
	require.NoError(t, err)
	assert.True(t, IsFullySettled(order))

	released, err := m.Apply(order, domain.RoleBuyer, EventReleaseEscrow)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, released.EscrowStatus)
}
