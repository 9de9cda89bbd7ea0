package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"campusmart/internal/domain"
)

type mapIndex map[domain.ID]domain.CatalogProduct

func (m mapIndex) Lookup(id domain.ID) (domain.CatalogProduct, bool) {
	p, ok := m[id]
	return p, ok
}

func TestBuildOrderView_DefaultsWhenCatalogMisses(t *testing.T) {
	order := domain.Order{ID: "1", ProductID: "999", Type: domain.OrderTypeProduct, Status: domain.OrderStatusPending}

	v := BuildOrderView(order, mapIndex{})

	assert.Equal(t, "Item 999", v.ItemName)
	assert.Equal(t, "Store", v.StoreName)
	assert.Equal(t, "GHS", v.Currency)
	assert.Empty(t, v.EscrowStatus)
}

func TestBuildOrderView_NilIndex(t *testing.T) {
	v := BuildOrderView(domain.Order{ProductID: "7"}, nil)

	assert.Equal(t, "Item 7", v.ItemName)
	assert.Equal(t, "Store", v.StoreName)
}

func TestBuildOrderView_UsesCatalogEntry(t *testing.T) {
	index := mapIndex{"5": {ID: "5", Name: "Desk Lamp", StoreName: "Hall 3 Supplies", Currency: "USD"}}

	v := BuildOrderView(domain.Order{ProductID: "5"}, index)
	assert.Equal(t, "Desk Lamp", v.ItemName)
	assert.Equal(t, "Hall 3 Supplies", v.StoreName)
	assert.Equal(t, "USD", v.Currency)

	v = BuildOrderView(domain.Order{ProductID: "5", Currency: "NGN"}, index)
	assert.Equal(t, "NGN", v.Currency)
}

func TestBuildOrderView_EscrowDerivedFromStatus(t *testing.T) {
	held := BuildOrderView(domain.Order{Type: domain.OrderTypeService, Status: domain.OrderStatusEscrowHeld}, nil)
	assert.Equal(t, domain.EscrowHeld, held.EscrowStatus)

	product := BuildOrderView(domain.Order{Type: domain.OrderTypeProduct, Status: domain.OrderStatusEscrowHeld}, nil)
	assert.Empty(t, product.EscrowStatus)

	pending := BuildOrderView(domain.Order{Type: domain.OrderTypeService, Status: domain.OrderStatusPending, EscrowStatus: domain.EscrowHeld}, nil)
	assert.Empty(t, pending.EscrowStatus)
}

func TestBuildOrderView_Totals(t *testing.T) {
	order := domain.Order{
		Price:       decimal.RequireFromString("120.50"),
		DeliveryFee: decimal.RequireFromString("10"),
	}

	withFee := BuildOrderView(order, nil)
	assert.True(t, withFee.Total.Equal(decimal.RequireFromString("130.50")), withFee.Total.String())
	assert.True(t, withFee.ItemTotal.Equal(order.Price))

	withoutFee := BuildOrderView(order, nil, WithDeliveryFeeInTotal(false))
	assert.True(t, withoutFee.Total.Equal(order.Price), withoutFee.Total.String())
	assert.True(t, withoutFee.DeliveryFee.Equal(order.DeliveryFee))
}

func TestBuildOrderView_Deterministic(t *testing.T) {
	order := domain.Order{ID: "3", ProductID: "8", Type: domain.OrderTypeService, Status: domain.OrderStatusPending}
	assert.Equal(t, BuildOrderView(order, mapIndex{}), BuildOrderView(order, mapIndex{}))
}
