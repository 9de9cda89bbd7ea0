package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_DecodeBackendRecord(t *testing.T) {
	raw := `{
		"id": 17,
		"type": "product",
		"status": "pending",
		"delivery_status": "delivered",
		"buyer_confirmed": false,
		"seller_confirmed": true,
		"deliverer_confirmed": true,
		"product_id": "999",
		"store_id": 4,
		"price": "25.50",
		"delivery_fee": 5,
		"currency": "GHS",
		"created_at": "2026-01-02T10:00:00Z"
	}`

	var order Order
	require.NoError(t, json.Unmarshal([]byte(raw), &order))

	assert.Equal(t, ID("17"), order.ID)
	assert.Equal(t, OrderTypeProduct, order.Type)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, DeliveryDelivered, order.DeliveryStatus)
	assert.False(t, order.BuyerConfirmed)
	assert.True(t, order.SellerConfirmed)
	assert.True(t, order.DelivererConfirmed)
	assert.Equal(t, ID("999"), order.ProductID)
	assert.Equal(t, ID("4"), order.StoreID)
	assert.True(t, decimal.RequireFromString("25.50").Equal(order.Price))
	assert.True(t, decimal.NewFromInt(5).Equal(order.DeliveryFee))
	assert.Equal(t, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC), order.CreatedAt.UTC())
	assert.False(t, order.Optimistic)
}

func TestOrder_OptimisticFlagNeverSerialized(t *testing.T) {
	order := Order{ID: "1", Type: OrderTypeService, Status: OrderStatusPending}.MarkOptimistic(true)

	data, err := json.Marshal(order)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "ptimistic")
}

func TestOrder_HasDeliverer(t *testing.T) {
	assert.False(t, Order{}.HasDeliverer())
	assert.False(t, Order{DeliveryStatus: DeliveryPending}.HasDeliverer())
	assert.True(t, Order{DeliveryStatus: DeliveryAssigned}.HasDeliverer())
	assert.True(t, Order{DeliveryStatus: DeliveryDelivered}.HasDeliverer())
}

func TestOrder_WithConfirmationIsMonotonic(t *testing.T) {
	order := Order{BuyerConfirmed: true}

	order = order.WithConfirmation(RoleSeller)
	order = order.WithConfirmation(RoleBuyer)

	assert.True(t, order.Confirmed(RoleBuyer))
	assert.True(t, order.Confirmed(RoleSeller))
	assert.False(t, order.Confirmed(RoleDeliverer))
	assert.False(t, order.Confirmed(Role("admin")))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("seller")
	assert.True(t, ok)
	assert.Equal(t, RoleSeller, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}

func TestID_Unmarshal(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[42, "abc", null, "temp-1700000000000"]`), &ids))

	assert.Equal(t, []ID{"42", "abc", "", "temp-1700000000000"}, ids)
	assert.False(t, ids[0].IsTemporary())
	assert.True(t, ids[2].IsZero())
	assert.True(t, ids[3].IsTemporary())
}

func TestNewTempID(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	id := NewTempID(at)

	assert.Equal(t, ID("temp-1700000000123"), id)
	assert.Regexp(t, `^temp-\d+$`, id.String())
}

func TestZeroWallet(t *testing.T) {
	w := ZeroWallet()

	assert.True(t, w.Balance.IsZero())
	assert.True(t, w.Escrow.IsZero())
	assert.Equal(t, "GHS", w.Currency)
	assert.NotNil(t, w.Transactions)
	assert.Empty(t, w.Transactions)
}
