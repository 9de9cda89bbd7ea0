package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindError                Kind = "error"
	KindSuccess              Kind = "success"
	KindVerificationRequired Kind = "verification_required"
)

const DefaultCapacity = 50

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier is the transient toast surface.
type Notifier interface {
	Error(message string)
	Success(message string)
	VerificationRequired(message string)
}

// Feed keeps the most recent notifications until a client drains them.
type Feed struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	logger   *zap.Logger
	now      func() time.Time
}

func NewFeed(capacity int, logger *zap.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		capacity: capacity,
		logger:   logger,
		now:      time.Now,
	}
}

func (f *Feed) Error(message string) {
	f.push(KindError, message)
}

func (f *Feed) Success(message string) {
	f.push(KindSuccess, message)
}

func (f *Feed) VerificationRequired(message string) {
	f.push(KindVerificationRequired, message)
}

func (f *Feed) push(kind Kind, message string) {
	n := Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: f.now().UTC(),
	}

	f.mu.Lock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.capacity; over > 0 {
		f.items = append([]Notification(nil), f.items[over:]...)
	}
	f.mu.Unlock()

	f.logger.Info("notification raised", zap.String("kind", string(kind)), zap.String("message", message))
}

// Drain returns pending notifications oldest first and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

func (f *Feed) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
