package store

import "campusmart/internal/domain"

type UpsertListing struct {
	Listing domain.Listing
}

func (c UpsertListing) apply(s *state) { s.listings.upsert(c.Listing) }
func (c UpsertListing) name() string   { return "upsert_listing" }

// ReplaceListing reconciles an optimistic listing with the server record.
type ReplaceListing struct {
	OldID   domain.ID
	Listing domain.Listing
}

func (c ReplaceListing) apply(s *state) { s.listings.replace(string(c.OldID), c.Listing) }
func (c ReplaceListing) name() string   { return "replace_listing" }

type RemoveListing struct {
	ID domain.ID
}

func (c RemoveListing) apply(s *state) { s.listings.remove(string(c.ID)) }
func (c RemoveListing) name() string   { return "remove_listing" }

// SyncListings replaces the listing set with a fresh server read.
// Optimistic entries the server cannot know about yet are kept.
type SyncListings struct {
	Listings []domain.Listing
}

func (c SyncListings) apply(s *state) {
	pending := []domain.Listing{}
	for _, l := range s.listings.list() {
		if l.Optimistic && l.ID.IsTemporary() {
			pending = append(pending, l)
		}
	}
	s.listings.reset(append(append([]domain.Listing{}, c.Listings...), pending...))
}
func (c SyncListings) name() string { return "sync_listings" }

type UpsertOrder struct {
	Order domain.Order
}

func (c UpsertOrder) apply(s *state) { s.orders.upsert(c.Order) }
func (c UpsertOrder) name() string   { return "upsert_order" }

type ReplaceOrder struct {
	OldID domain.ID
	Order domain.Order
}

func (c ReplaceOrder) apply(s *state) { s.orders.replace(string(c.OldID), c.Order) }
func (c ReplaceOrder) name() string   { return "replace_order" }

type RemoveOrder struct {
	ID domain.ID
}

func (c RemoveOrder) apply(s *state) { s.orders.remove(string(c.ID)) }
func (c RemoveOrder) name() string   { return "remove_order" }

type SyncOrders struct {
	Orders []domain.Order
}

func (c SyncOrders) apply(s *state) { s.orders.reset(c.Orders) }
func (c SyncOrders) name() string   { return "sync_orders" }

type SetWallet struct {
	Wallet domain.Wallet
}

func (c SetWallet) apply(s *state) {
	s.wallet = c.Wallet
	s.walletLoaded = true
}
func (c SetWallet) name() string { return "set_wallet" }

type SetRoles struct {
	Roles domain.Roles
}

func (c SetRoles) apply(s *state) { s.roles = c.Roles }
func (c SetRoles) name() string   { return "set_roles" }
