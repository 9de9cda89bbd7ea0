package view

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"campusmart/internal/domain"
)

const DefaultStoreName = "Store"

// CatalogIndex resolves a product id to its cached catalog entry.
type CatalogIndex interface {
	Lookup(productID domain.ID) (domain.CatalogProduct, bool)
}

// OrderView is an order decorated for display.
type OrderView struct {
	ID                 domain.ID             `json:"id"`
	Type               domain.OrderType      `json:"type"`
	Status             domain.OrderStatus    `json:"status"`
	EscrowStatus       domain.EscrowStatus   `json:"escrow_status,omitempty"`
	DeliveryStatus     domain.DeliveryStatus `json:"delivery_status,omitempty"`
	BuyerConfirmed     bool                  `json:"buyer_confirmed"`
	SellerConfirmed    bool                  `json:"seller_confirmed"`
	DelivererConfirmed bool                  `json:"deliverer_confirmed"`
	ProductID          domain.ID             `json:"product_id"`
	StoreID            domain.ID             `json:"store_id"`
	ItemName           string                `json:"item_name"`
	StoreName          string                `json:"store_name"`
	Currency           string                `json:"currency"`
	ItemTotal          decimal.Decimal       `json:"item_total"`
	DeliveryFee        decimal.Decimal       `json:"delivery_fee"`
	Total              decimal.Decimal       `json:"total"`
	CreatedAt          time.Time             `json:"created_at"`
	Pending            bool                  `json:"pending"`

	FullySettled bool     `json:"fully_settled"`
	Actions      []string `json:"actions,omitempty"`
}

type builderConfig struct {
	deliveryFeeInTotal bool
}

type Option func(*builderConfig)

// WithDeliveryFeeInTotal controls whether Total adds the delivery fee to
// the item price.
func WithDeliveryFeeInTotal(include bool) Option {
	return func(c *builderConfig) { c.deliveryFeeInTotal = include }
}

// BuildOrderView never fails: missing catalog entries fall back to
// placeholder names.
func BuildOrderView(order domain.Order, index CatalogIndex, opts ...Option) OrderView {
	cfg := builderConfig{deliveryFeeInTotal: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var product domain.CatalogProduct
	found := false
	if index != nil && !order.ProductID.IsZero() {
		product, found = index.Lookup(order.ProductID)
	}

	v := OrderView{
		ID:                 order.ID,
		Type:               order.Type,
		Status:             order.Status,
		DeliveryStatus:     order.DeliveryStatus,
		BuyerConfirmed:     order.BuyerConfirmed,
		SellerConfirmed:    order.SellerConfirmed,
		DelivererConfirmed: order.DelivererConfirmed,
		ProductID:          order.ProductID,
		StoreID:            order.StoreID,
		ItemName:           fmt.Sprintf("Item %s", order.ProductID),
		StoreName:          DefaultStoreName,
		Currency:           domain.DefaultCurrency,
		ItemTotal:          order.Price,
		DeliveryFee:        order.DeliveryFee,
		Total:              order.Price,
		CreatedAt:          order.CreatedAt,
		Pending:            order.Optimistic,
	}

	if found {
		if product.Name != "" {
			v.ItemName = product.Name
		}
		if product.StoreName != "" {
			v.StoreName = product.StoreName
		}
	}

	switch {
	case order.Currency != "":
		v.Currency = order.Currency
	case found && product.Currency != "":
		v.Currency = product.Currency
	}

	if order.Type == domain.OrderTypeService && order.Status == domain.OrderStatusEscrowHeld {
		v.EscrowStatus = domain.EscrowHeld
	}

	if cfg.deliveryFeeInTotal {
		v.Total = order.Price.Add(order.DeliveryFee)
	}

	return v
}
