package store

import (
	"sync"

	"go.uber.org/zap"

	"campusmart/internal/domain"
)

// Command is a write intent. Commands are the only way state changes.
type Command interface {
	apply(s *state)
	name() string
}

type state struct {
	listings     *collection[domain.Listing]
	orders       *collection[domain.Order]
	wallet       domain.Wallet
	walletLoaded bool
	roles        domain.Roles
}

func newState() *state {
	return &state{
		listings: newCollection[domain.Listing](),
		orders:   newCollection[domain.Order](),
		wallet:   domain.ZeroWallet(),
	}
}

// Store is the session's client-side state. One writer at a time; readers
// get copies.
type Store struct {
	mu     sync.RWMutex
	state  *state
	epoch  uint64
	logger *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{
		state:  newState(),
		epoch:  1,
		logger: logger,
	}
}

func (s *Store) Dispatch(cmd Command) {
	s.mu.Lock()
	cmd.apply(s.state)
	s.mu.Unlock()

	s.logger.Debug("store command applied", zap.String("command", cmd.name()))
}

// Reset drops all session state (logout) and starts a new epoch. Work that
// began in an older epoch must not write into the new one.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = newState()
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	s.logger.Info("store reset", zap.Uint64("epoch", epoch))
}

func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *Store) Listings() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listings.list()
}

func (s *Store) Listing(id domain.ID) (domain.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listings.get(string(id))
}

func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.orders.list()
}

func (s *Store) Order(id domain.ID) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.orders.get(string(id))
}

// Wallet returns the cached wallet and whether it was ever loaded.
func (s *Store) Wallet() (domain.Wallet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w := s.state.wallet
	w.Transactions = append([]domain.WalletTransaction{}, w.Transactions...)
	return w, s.state.walletLoaded
}

func (s *Store) Roles() domain.Roles {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.roles
}

// ListingRevision counts writes to the listing. It is a read-only audit
// value: ordering between writers comes from the coordinator's per-key
// queue, not from comparing revisions.
func (s *Store) ListingRevision(id domain.ID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.listings.revision(string(id))
}

func (s *Store) OrderRevision(id domain.ID) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.orders.revision(string(id))
}
