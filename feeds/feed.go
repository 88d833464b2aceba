// Package feeds keeps the latest snapshot of a store collection in memory.
// List pages filter over a feed instead of querying the store per request.
package feeds

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/store"
)

type Feed[T any] struct {
	query store.Query
	log   *zap.Logger

	mu     sync.RWMutex
	items  []T
	readAt time.Time

	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
}

// Start subscribes to q and keeps decoding snapshots until ctx ends.
func Start[T any](ctx context.Context, s store.Store, q store.Query, log *zap.Logger) (*Feed[T], error) {
	ch, err := s.Subscribe(ctx, q)
	if err != nil {
		return nil, err
	}
	f := &Feed[T]{
		query: q,
		log:   log,
		items: []T{},
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
	go f.run(ch)
	return f, nil
}

func (f *Feed[T]) run(ch <-chan store.Snapshot) {
	defer close(f.done)
	for snap := range ch {
		var items []T
		if err := snap.Decode(&items); err != nil {
			f.log.Error("Failed to decode snapshot", zap.String("collection", f.query.Collection), zap.Error(err))
			continue
		}
		if items == nil {
			items = []T{}
		}
		f.mu.Lock()
		f.items = items
		f.readAt = snap.ReadAt
		f.mu.Unlock()
		f.readyOnce.Do(func() { close(f.ready) })
		f.log.Debug("Feed updated", zap.String("collection", f.query.Collection), zap.Int("size", len(items)))
	}
}

// Items returns the latest snapshot. Callers may not modify the slice.
func (f *Feed[T]) Items() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.items
}

func (f *Feed[T]) ReadAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.readAt
}

// Ready reports whether the first snapshot has arrived.
func (f *Feed[T]) Ready() bool {
	select {
	case <-f.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until the first snapshot has arrived, the feed stops, or ctx ends.
func (f *Feed[T]) Wait(ctx context.Context) error {
	select {
	case <-f.ready:
		return nil
	case <-f.done:
		if f.Ready() {
			return nil
		}
		return store.ErrUnavailable
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the subscription ends.
func (f *Feed[T]) Done() <-chan struct{} {
	return f.done
}
