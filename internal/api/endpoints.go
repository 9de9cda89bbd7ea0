package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
)

type DeliveryAction string

const (
	DeliveryAccept    DeliveryAction = "accept"
	DeliveryPickUp    DeliveryAction = "pickup"
	DeliveryInTransit DeliveryAction = "in-transit"
	DeliveryDelivered DeliveryAction = "delivered"
)

const IdempotencyHeader = "Idempotency-Key"

// call performs r and decodes the result, looking through the first
// envelope key present in the response.
func call[T any](ctx context.Context, c *Client, r request, envelopes ...string) (T, error) {
	var out T
	var raw json.RawMessage
	if err := c.do(ctx, r, &raw); err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(unwrapSuccess(raw, envelopes...), &out); err != nil {
		return out, normalizeDecode(http.StatusOK, err)
	}
	return out, nil
}

func unwrapSuccess(raw json.RawMessage, keys ...string) json.RawMessage {
	if len(keys) == 0 || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return raw
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	for _, key := range keys {
		if inner, ok := obj[key]; ok && !bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
			return inner
		}
	}
	return raw
}

func orEmptyOnNotFound[T any](value T, err error, empty T) (T, error) {
	if ne, ok := apperrors.IsNormalizedError(err); ok && ne.IsNotFound() {
		return empty, nil
	}
	return value, err
}

func escape(id domain.ID) string {
	return url.PathEscape(id.String())
}

// CreateListing posts draft. The idempotency key lets the backend collapse
// retried attempts of the same create.
func (c *Client) CreateListing(ctx context.Context, draft domain.Listing, idempotencyKey string) (domain.Listing, error) {
	r := request{method: http.MethodPost, path: "/api/listings", body: draft}
	if idempotencyKey != "" {
		r.headers = map[string]string{IdempotencyHeader: idempotencyKey}
	}
	return call[domain.Listing](ctx, c, r, "listing", "data")
}

func (c *Client) UpdateListing(ctx context.Context, listing domain.Listing) (domain.Listing, error) {
	path := fmt.Sprintf("/api/listings/%s", escape(listing.ID))
	return call[domain.Listing](ctx, c, request{method: http.MethodPut, path: path, body: listing}, "listing", "data")
}

func (c *Client) DeleteListing(ctx context.Context, id domain.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/api/listings/%s", escape(id))}, nil)
}

// MyListings returns the signed-in entrepreneur's listings. A store that
// does not exist yet has no listings.
func (c *Client) MyListings(ctx context.Context) ([]domain.Listing, error) {
	listings, err := call[[]domain.Listing](ctx, c, request{method: http.MethodGet, path: "/api/stores/me/listings"}, "listings", "data")
	listings, err = orEmptyOnNotFound(listings, err, []domain.Listing{})
	if listings == nil && err == nil {
		listings = []domain.Listing{}
	}
	return listings, err
}

func (c *Client) BuyerConfirmDelivery(ctx context.Context, orderID domain.ID) (domain.Order, error) {
	path := fmt.Sprintf("/api/transactions/%s/buyer-confirm", escape(orderID))
	return call[domain.Order](ctx, c, request{method: http.MethodPost, path: path}, "transaction", "order", "data")
}

func (c *Client) SellerConfirmDelivery(ctx context.Context, orderID domain.ID) (domain.Order, error) {
	path := fmt.Sprintf("/api/transactions/%s/seller-confirm", escape(orderID))
	return call[domain.Order](ctx, c, request{method: http.MethodPost, path: path}, "transaction", "order", "data")
}

func (c *Client) ConfirmServiceCompletion(ctx context.Context, orderID domain.ID, role domain.Role) (domain.Order, error) {
	path := fmt.Sprintf("/api/orders/%s/confirm-completion", escape(orderID))
	body := map[string]string{"role": string(role)}
	return call[domain.Order](ctx, c, request{method: http.MethodPost, path: path, body: body}, "order", "transaction", "data")
}

func (c *Client) ReleaseEscrow(ctx context.Context, orderID domain.ID) (domain.Order, error) {
	path := fmt.Sprintf("/api/orders/%s/release-escrow", escape(orderID))
	return call[domain.Order](ctx, c, request{method: http.MethodPost, path: path}, "order", "transaction", "data")
}

func (c *Client) CancelOrder(ctx context.Context, orderID domain.ID) (domain.Order, error) {
	path := fmt.Sprintf("/api/orders/%s/cancel", escape(orderID))
	return call[domain.Order](ctx, c, request{method: http.MethodPost, path: path}, "order", "transaction", "data")
}

func (c *Client) Deliver(ctx context.Context, orderID domain.ID, action DeliveryAction) (domain.Order, error) {
	path := fmt.Sprintf("/api/deliveries/%s/%s", escape(orderID), action)
	return call[domain.Order](ctx, c, request{method: http.MethodPost, path: path}, "order", "transaction", "delivery", "data")
}

// Orders lists the viewer's orders; 404 means none yet.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	orders, err := call[[]domain.Order](ctx, c, request{method: http.MethodGet, path: "/api/orders"}, "orders", "transactions", "data")
	orders, err = orEmptyOnNotFound(orders, err, []domain.Order{})
	if orders == nil && err == nil {
		orders = []domain.Order{}
	}
	return orders, err
}

// Wallet returns the viewer's wallet; 404 means a zeroed wallet.
func (c *Client) Wallet(ctx context.Context) (domain.Wallet, error) {
	wallet, err := call[domain.Wallet](ctx, c, request{method: http.MethodGet, path: "/api/wallet"}, "wallet", "data")
	if ne, ok := apperrors.IsNormalizedError(err); ok && ne.IsNotFound() {
		return domain.ZeroWallet(), nil
	}
	if err != nil {
		return domain.Wallet{}, err
	}
	if wallet.Currency == "" {
		wallet.Currency = domain.DefaultCurrency
	}
	if wallet.Transactions == nil {
		wallet.Transactions = []domain.WalletTransaction{}
	}
	return wallet, nil
}

func (c *Client) Roles(ctx context.Context) (domain.Roles, error) {
	return call[domain.Roles](ctx, c, request{method: http.MethodGet, path: "/api/users/me/roles"}, "roles", "data")
}
