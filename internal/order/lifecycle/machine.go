package lifecycle

import (
	"fmt"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
)

type Event string

const (
	EventAcceptDelivery  Event = "accept_delivery"
	EventPickUp          Event = "pick_up"
	EventStartTransit    Event = "start_transit"
	EventMarkDelivered   Event = "mark_delivered"
	EventConfirmDelivery Event = "confirm_delivery"
	EventConfirmService  Event = "confirm_service"
	EventReleaseEscrow   Event = "release_escrow"
	EventCancel          Event = "cancel"
)

// Transition is one role-scoped event: who may send it, when it is open,
// and the provisional patch the client shows until the backend answers.
type Transition struct {
	Event Event
	Roles []domain.Role
	Guard func(o domain.Order, role domain.Role) bool
	Patch func(o domain.Order, role domain.Role) domain.Order
}

func (t Transition) allows(role domain.Role) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Machine is the order lifecycle as the client sees it. Every view and use
// case asks the machine instead of re-deriving gates.
type Machine struct {
	transitions []Transition
	byEvent     map[Event]Transition
}

func NewMachine(transitions ...Transition) *Machine {
	m := &Machine{byEvent: make(map[Event]Transition, len(transitions))}
	for _, t := range transitions {
		m.transitions = append(m.transitions, t)
		m.byEvent[t.Event] = t
	}
	return m
}

// Default returns the marketplace order lifecycle.
func Default() *Machine {
	return NewMachine(
		Transition{
			Event: EventAcceptDelivery,
			Roles: []domain.Role{domain.RoleDeliverer},
			Guard: func(o domain.Order, _ domain.Role) bool {
				return wellFormed(o) &&
					o.Type == domain.OrderTypeProduct &&
					(o.Status == domain.OrderStatusPending || o.Status == domain.OrderStatusConfirmed) &&
					!o.HasDeliverer()
			},
			Patch: withDeliveryStatus(domain.DeliveryAssigned),
		},
		Transition{
			Event: EventPickUp,
			Roles: []domain.Role{domain.RoleDeliverer},
			Guard: deliveryAt(domain.DeliveryAssigned),
			Patch: withDeliveryStatus(domain.DeliveryPickedUp),
		},
		Transition{
			Event: EventStartTransit,
			Roles: []domain.Role{domain.RoleDeliverer},
			Guard: deliveryAt(domain.DeliveryPickedUp),
			Patch: withDeliveryStatus(domain.DeliveryInTransit),
		},
		Transition{
			Event: EventMarkDelivered,
			Roles: []domain.Role{domain.RoleDeliverer},
			Guard: deliveryAt(domain.DeliveryAssigned, domain.DeliveryPickedUp, domain.DeliveryInTransit),
			Patch: func(o domain.Order, _ domain.Role) domain.Order {
				o.DeliveryStatus = domain.DeliveryDelivered
				return o.WithConfirmation(domain.RoleDeliverer)
			},
		},
		Transition{
			Event: EventConfirmDelivery,
			Roles: []domain.Role{domain.RoleBuyer, domain.RoleSeller},
			Guard: CanConfirmDelivery,
			Patch: confirm,
		},
		Transition{
			Event: EventConfirmService,
			Roles: []domain.Role{domain.RoleBuyer, domain.RoleSeller},
			Guard: CanConfirmServiceCompletion,
			Patch: confirm,
		},
		Transition{
			Event: EventReleaseEscrow,
			Roles: []domain.Role{domain.RoleBuyer},
			Guard: func(o domain.Order, _ domain.Role) bool {
				return wellFormed(o) &&
					o.Type == domain.OrderTypeService &&
					o.EscrowStatus == domain.EscrowHeld &&
					o.BuyerConfirmed &&
					o.Status != domain.OrderStatusCancelled
			},
			Patch: func(o domain.Order, _ domain.Role) domain.Order {
				o.EscrowStatus = domain.EscrowReleased
				return o
			},
		},
		Transition{
			Event: EventCancel,
			Roles: []domain.Role{domain.RoleBuyer},
			Guard: func(o domain.Order, _ domain.Role) bool { return CanCancel(o) },
			Patch: func(o domain.Order, _ domain.Role) domain.Order {
				o.Status = domain.OrderStatusCancelled
				return o
			},
		},
	)
}

// Can reports whether role may send event for o right now.
func (m *Machine) Can(o domain.Order, role domain.Role, event Event) bool {
	t, ok := m.byEvent[event]
	if !ok || !t.allows(role) {
		return false
	}
	return t.Guard(o, role)
}

// Apply returns the provisional order after event, or a ConflictError when
// the event is not open.
func (m *Machine) Apply(o domain.Order, role domain.Role, event Event) (domain.Order, error) {
	t, ok := m.byEvent[event]
	if !ok {
		return o, apperrors.NewConflictError(fmt.Sprintf("unknown order action %q", event))
	}
	if !t.allows(role) || !t.Guard(o, role) {
		return o, apperrors.NewConflictError(fmt.Sprintf("%s is not available for this order", event))
	}
	return t.Patch(o, role), nil
}

// Available lists the events open to role, in lifecycle order.
func (m *Machine) Available(o domain.Order, role domain.Role) []Event {
	events := []Event{}
	for _, t := range m.transitions {
		if t.allows(role) && t.Guard(o, role) {
			events = append(events, t.Event)
		}
	}
	return events
}

func confirm(o domain.Order, role domain.Role) domain.Order {
	return o.WithConfirmation(role)
}

func withDeliveryStatus(status domain.DeliveryStatus) func(domain.Order, domain.Role) domain.Order {
	return func(o domain.Order, _ domain.Role) domain.Order {
		o.DeliveryStatus = status
		return o
	}
}

func deliveryAt(statuses ...domain.DeliveryStatus) func(domain.Order, domain.Role) bool {
	return func(o domain.Order, _ domain.Role) bool {
		if !wellFormed(o) || o.Type != domain.OrderTypeProduct || o.Status == domain.OrderStatusCancelled {
			return false
		}
		for _, s := range statuses {
			if o.DeliveryStatus == s {
				return true
			}
		}
		return false
	}
}
