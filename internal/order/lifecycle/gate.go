package lifecycle

import "campusmart/internal/domain"

// wellFormed closes every gate for records missing the fields the rules
// depend on.
func wellFormed(o domain.Order) bool {
	if o.Status == "" {
		return false
	}
	switch o.Type {
	case domain.OrderTypeProduct, domain.OrderTypeService:
		return true
	}
	return false
}

func confirmingParty(role domain.Role) bool {
	return role == domain.RoleBuyer || role == domain.RoleSeller
}

// CanConfirmDelivery is open for the buyer or seller once the attached
// deliverer has marked the order delivered and the viewer has not yet
// confirmed.
func CanConfirmDelivery(o domain.Order, role domain.Role) bool {
	return wellFormed(o) &&
		confirmingParty(role) &&
		o.HasDeliverer() &&
		o.DeliveryStatus == domain.DeliveryDelivered &&
		o.DelivererConfirmed &&
		!o.Confirmed(role)
}

// CanConfirmServiceCompletion is open for the buyer or seller of a pending
// service order whose payment is held in escrow.
func CanConfirmServiceCompletion(o domain.Order, role domain.Role) bool {
	return wellFormed(o) &&
		confirmingParty(role) &&
		o.Type == domain.OrderTypeService &&
		o.Status == domain.OrderStatusPending &&
		o.EscrowStatus == domain.EscrowHeld &&
		!o.Confirmed(role)
}

// IsFullySettled reports whether every party the order's path needs has
// confirmed: buyer and seller for services and undelivered products, plus
// the deliverer once one is attached.
func IsFullySettled(o domain.Order) bool {
	if !wellFormed(o) {
		return false
	}
	settled := o.BuyerConfirmed && o.SellerConfirmed
	if o.Type == domain.OrderTypeProduct && o.HasDeliverer() {
		settled = settled && o.DelivererConfirmed
	}
	return settled
}

// CanCancel is open only for pending product orders; a service's escrow
// cannot be walked back by the buyer.
func CanCancel(o domain.Order) bool {
	return wellFormed(o) &&
		o.Status == domain.OrderStatusPending &&
		o.Type != domain.OrderTypeService
}
