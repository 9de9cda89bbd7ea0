package store

import "campusmart/internal/domain"

// ListingTable exposes the listing collection as a keyed table. Every
// method is exactly one dispatched command.
type ListingTable struct {
	s *Store
}

func (s *Store) ListingTable() ListingTable {
	return ListingTable{s: s}
}

func (t ListingTable) Get(key string) (domain.Listing, bool) {
	return t.s.Listing(domain.ID(key))
}

func (t ListingTable) Put(l domain.Listing) {
	t.s.Dispatch(UpsertListing{Listing: l})
}

func (t ListingTable) Replace(oldKey string, l domain.Listing) {
	t.s.Dispatch(ReplaceListing{OldID: domain.ID(oldKey), Listing: l})
}

func (t ListingTable) Remove(key string) {
	t.s.Dispatch(RemoveListing{ID: domain.ID(key)})
}

func (t ListingTable) Epoch() uint64 {
	return t.s.Epoch()
}

type OrderTable struct {
	s *Store
}

func (s *Store) OrderTable() OrderTable {
	return OrderTable{s: s}
}

func (t OrderTable) Get(key string) (domain.Order, bool) {
	return t.s.Order(domain.ID(key))
}

func (t OrderTable) Put(o domain.Order) {
	t.s.Dispatch(UpsertOrder{Order: o})
}

func (t OrderTable) Replace(oldKey string, o domain.Order) {
	t.s.Dispatch(ReplaceOrder{OldID: domain.ID(oldKey), Order: o})
}

func (t OrderTable) Remove(key string) {
	t.s.Dispatch(RemoveOrder{ID: domain.ID(key)})
}

func (t OrderTable) Epoch() uint64 {
	return t.s.Epoch()
}
