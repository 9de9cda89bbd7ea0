package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeProduct OrderType = "product"
	OrderTypeService OrderType = "service"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusEscrowHeld OrderStatus = "escrow_held"
)

type EscrowStatus string

const (
	EscrowHeld     EscrowStatus = "held"
	EscrowReleased EscrowStatus = "released"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
)

type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleSeller    Role = "seller"
	RoleDeliverer Role = "deliverer"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleBuyer, RoleSeller, RoleDeliverer:
		return r, true
	}
	return "", false
}

const DefaultCurrency = "GHS"

// Order is the client-visible projection of a backend transaction. The
// client never computes Status, EscrowStatus or DeliveryStatus itself.
type Order struct {
	ID                 ID              `json:"id"`
	Type               OrderType       `json:"type"`
	Status             OrderStatus     `json:"status"`
	EscrowStatus       EscrowStatus    `json:"escrow_status,omitempty"`
	DeliveryStatus     DeliveryStatus  `json:"delivery_status,omitempty"`
	BuyerConfirmed     bool            `json:"buyer_confirmed"`
	SellerConfirmed    bool            `json:"seller_confirmed"`
	DelivererConfirmed bool            `json:"deliverer_confirmed"`
	ProductID          ID              `json:"product_id"`
	StoreID            ID              `json:"store_id"`
	Price              decimal.Decimal `json:"price"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	Currency           string          `json:"currency,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`

	Optimistic bool `json:"-"`
}

func (o Order) Key() string {
	return string(o.ID)
}

func (o Order) WithKey(key string) Order {
	o.ID = ID(key)
	return o
}

func (o Order) MarkOptimistic(optimistic bool) Order {
	o.Optimistic = optimistic
	return o
}

// HasDeliverer reports whether a deliverer has been attached to the order.
func (o Order) HasDeliverer() bool {
	return o.DeliveryStatus != "" && o.DeliveryStatus != DeliveryPending
}

// Confirmed returns the confirmation flag owned by role.
func (o Order) Confirmed(role Role) bool {
	switch role {
	case RoleBuyer:
		return o.BuyerConfirmed
	case RoleSeller:
		return o.SellerConfirmed
	case RoleDeliverer:
		return o.DelivererConfirmed
	}
	return false
}

// WithConfirmation sets the flag owned by role. Flags only move to true.
func (o Order) WithConfirmation(role Role) Order {
	switch role {
	case RoleBuyer:
		o.BuyerConfirmed = true
	case RoleSeller:
		o.SellerConfirmed = true
	case RoleDeliverer:
		o.DelivererConfirmed = true
	}
	return o
}
