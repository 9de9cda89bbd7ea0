package optimistic

import (
	"context"
	"sync"
)

// keyedQueue runs holders of the same key one at a time, in the order they
// called acquire. Different keys never wait on each other.
type keyedQueue struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func newKeyedQueue() *keyedQueue {
	return &keyedQueue{tails: make(map[string]chan struct{})}
}

func (q *keyedQueue) acquire(ctx context.Context, key string) (func(), error) {
	done := make(chan struct{})

	q.mu.Lock()
	prev := q.tails[key]
	q.tails[key] = done
	q.mu.Unlock()

	release := func() {
		q.mu.Lock()
		if q.tails[key] == done {
			delete(q.tails, key)
		}
		q.mu.Unlock()
		close(done)
	}

	if prev == nil {
		return release, nil
	}

	select {
	case <-prev:
		return release, nil
	case <-ctx.Done():
		// Our slot is already linked into the chain; hand it on once the
		// predecessor finishes so later callers are not stranded.
		go func() {
			<-prev
			release()
		}()
		return nil, ctx.Err()
	}
}
