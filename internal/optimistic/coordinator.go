package optimistic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"campusmart/internal/domain"
	apperrors "campusmart/internal/errors"
)

// Entity is a record the coordinator can patch locally.
type Entity[T any] interface {
	Key() string
	WithKey(key string) T
	MarkOptimistic(optimistic bool) T
}

// Table is the slice of the client store a coordinator writes to. Each
// mutating call must be a single store write.
type Table[T any] interface {
	Get(key string) (T, bool)
	Put(entity T)
	Replace(oldKey string, entity T)
	Remove(key string)
	Epoch() uint64
}

type Notifier interface {
	Error(message string)
	VerificationRequired(message string)
}

// Messages are the fallbacks shown when the server gives no message.
type Messages struct {
	Create string
	Update string
	Delete string
}

var defaultMessages = Messages{
	Create: "Could not create. Please try again.",
	Update: "Could not save your changes. Please try again.",
	Delete: "Could not delete. Please try again.",
}

// Coordinator applies a local patch, runs the remote call and then either
// reconciles with the server record or reverts the patch. It writes to the
// table exactly once before the remote call and once after it.
type Coordinator[T Entity[T]] struct {
	table    Table[T]
	notifier Notifier
	logger   *zap.Logger
	messages Messages
	queue    *keyedQueue

	mu       sync.Mutex
	now      func() time.Time
	lastTemp int64
}

type Option[T Entity[T]] func(*Coordinator[T])

func WithMessages[T Entity[T]](m Messages) Option[T] {
	return func(c *Coordinator[T]) { c.messages = m }
}

func WithClock[T Entity[T]](now func() time.Time) Option[T] {
	return func(c *Coordinator[T]) { c.now = now }
}

func New[T Entity[T]](table Table[T], notifier Notifier, logger *zap.Logger, opts ...Option[T]) *Coordinator[T] {
	c := &Coordinator[T]{
		table:    table,
		notifier: notifier,
		logger:   logger,
		messages: defaultMessages,
		queue:    newKeyedQueue(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create shows draft under a temporary id, sends it, and swaps in the
// server record. The remote call receives the draft without the temp id.
func (c *Coordinator[T]) Create(ctx context.Context, draft T, remote func(ctx context.Context, draft T) (T, error)) (T, error) {
	var zero T

	tempKey := c.nextTempKey()
	epoch := c.table.Epoch()
	c.table.Put(draft.WithKey(tempKey).MarkOptimistic(true))
	c.logger.Debug("optimistic create applied", zap.String("tempId", tempKey))

	created, err := remote(ctx, draft.WithKey("").MarkOptimistic(false))

	if c.stale(epoch) {
		c.logger.Info("dropping create resolution from ended session", zap.String("tempId", tempKey))
		if err != nil {
			return zero, err
		}
		return created, nil
	}

	if err != nil {
		c.table.Remove(tempKey)
		c.fail(err, c.messages.Create, zap.String("tempId", tempKey))
		return zero, err
	}

	created = created.MarkOptimistic(false)
	c.table.Replace(tempKey, created)
	c.logger.Debug("optimistic create reconciled", zap.String("tempId", tempKey), zap.String("id", created.Key()))
	return created, nil
}

// Update patches the stored entity, sends the patched value, and keeps the
// server's answer. On failure the last known-good record is restored.
func (c *Coordinator[T]) Update(ctx context.Context, key string, patch func(current T) T, remote func(ctx context.Context, patched T) (T, error)) (T, error) {
	var zero T

	release, err := c.queue.acquire(ctx, key)
	if err != nil {
		return zero, err
	}
	defer release()

	current, ok := c.table.Get(key)
	if !ok {
		return zero, apperrors.NewNotFoundError(fmt.Sprintf("%s not found", key))
	}

	epoch := c.table.Epoch()
	patched := patch(current).WithKey(key).MarkOptimistic(true)
	c.table.Put(patched)

	updated, err := remote(ctx, patched.MarkOptimistic(false))

	if c.stale(epoch) {
		c.logger.Info("dropping update resolution from ended session", zap.String("id", key))
		if err != nil {
			return zero, err
		}
		return updated, nil
	}

	if err != nil {
		c.table.Put(current)
		c.fail(err, c.messages.Update, zap.String("id", key))
		return zero, err
	}

	updated = updated.MarkOptimistic(false)
	if updated.Key() == "" {
		updated = updated.WithKey(key)
	}
	c.table.Replace(key, updated)
	return updated, nil
}

// Delete removes the entity at once and puts it back, flagged optimistic,
// if the server refuses.
func (c *Coordinator[T]) Delete(ctx context.Context, key string, remote func(ctx context.Context, removed T) error) error {
	release, err := c.queue.acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	current, ok := c.table.Get(key)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", key))
	}

	epoch := c.table.Epoch()
	c.table.Remove(key)

	err = remote(ctx, current)

	if c.stale(epoch) {
		c.logger.Info("dropping delete resolution from ended session", zap.String("id", key))
		return err
	}

	if err != nil {
		c.table.Put(current.MarkOptimistic(true))
		c.fail(err, c.messages.Delete, zap.String("id", key))
		return err
	}

	// The server agrees the entity is gone; confirm the removal.
	c.table.Remove(key)
	return nil
}

func (c *Coordinator[T]) stale(epoch uint64) bool {
	return c.table.Epoch() != epoch
}

func (c *Coordinator[T]) fail(err error, fallback string, fields ...zap.Field) {
	c.logger.Warn("optimistic mutation rolled back", append(fields, zap.Error(err))...)

	msg := apperrors.UserMessage(err, fallback)
	if apperrors.IsVerificationRequired(err) {
		c.notifier.VerificationRequired(msg)
		return
	}
	c.notifier.Error(msg)
}

// nextTempKey returns temp-<unix millis>, bumped when two creates land in
// the same millisecond.
func (c *Coordinator[T]) nextTempKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.lastTemp {
		ms = c.lastTemp + 1
	}
	c.lastTemp = ms
	return string(domain.NewTempID(time.UnixMilli(ms)))
}

// IsTempKey reports whether key was assigned by Create.
func IsTempKey(key string) bool {
	return domain.ID(key).IsTemporary()
}
