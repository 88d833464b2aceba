package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlStore, err := OpenSQL("sqlite", filepath.Join(t.TempDir(), "documents.db"), zap.NewNop(), 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close(context.Background()) })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlStore,
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := s.Create(ctx, "listings", listing{Title: "Villa", Price: 100, Tags: []string{"a"}})
			require.NoError(t, err)
			require.NotEmpty(t, id)

			var got listing
			require.NoError(t, s.Get(ctx, "listings", id, &got))
			assert.Equal(t, id, got.ID)
			assert.Equal(t, "Villa", got.Title)

			require.NoError(t, s.Update(ctx, "listings", id, map[string]interface{}{"price": 250, "tags": []string{}, "id": "ignored"}))
			require.NoError(t, s.Get(ctx, "listings", id, &got))
			assert.Equal(t, 250.0, got.Price)
			assert.Equal(t, "Villa", got.Title)
			assert.Empty(t, got.Tags)
			assert.Equal(t, id, got.ID)

			// An update that changes nothing still succeeds.
			require.NoError(t, s.Update(ctx, "listings", id, map[string]interface{}{"price": 250}))

			assert.ErrorIs(t, s.Update(ctx, "listings", "missing", map[string]interface{}{"price": 1}), ErrNotFound)
			assert.ErrorIs(t, s.Get(ctx, "listings", "missing", &got), ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, "listings", "missing"), ErrNotFound)

			require.NoError(t, s.Delete(ctx, "listings", id))
			assert.ErrorIs(t, s.Get(ctx, "listings", id, &got), ErrNotFound)
		})
	}
}

func TestStoreListOrdering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i, title := range []string{"old", "newest", "middle"} {
				offset := map[string]time.Duration{"old": 0, "newest": 2 * time.Hour, "middle": time.Hour}[title]
				_, err := s.Create(ctx, "inquiries", listing{Title: title, Price: float64(i), CreatedAt: base.Add(offset)})
				require.NoError(t, err)
			}

			var out []listing
			require.NoError(t, s.List(ctx, Query{Collection: "inquiries", OrderBy: "createdAt", Descending: true}, &out))
			require.Len(t, out, 3)
			assert.Equal(t, []string{"newest", "middle", "old"}, []string{out[0].Title, out[1].Title, out[2].Title})

			out = nil
			require.NoError(t, s.List(ctx, Query{Collection: "inquiries", OrderBy: "price", Limit: 2}, &out))
			assert.Equal(t, []string{"old", "newest"}, []string{out[0].Title, out[1].Title})

			out = nil
			require.NoError(t, s.List(ctx, Query{Collection: "empty"}, &out))
			assert.Empty(t, out)
		})
	}
}

func TestStoreSubscribe(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			_, err := s.Create(ctx, "board", listing{Title: "first"})
			require.NoError(t, err)

			ch, err := s.Subscribe(ctx, Query{Collection: "board"})
			require.NoError(t, err)

			snap := <-ch
			assert.Equal(t, 1, snap.Size)

			_, err = s.Create(ctx, "board", listing{Title: "second"})
			require.NoError(t, err)

			require.Eventually(t, func() bool {
				select {
				case snap = <-ch:
				default:
				}
				return snap.Size == 2
			}, 2*time.Second, 10*time.Millisecond)

			var items []listing
			require.NoError(t, snap.Decode(&items))
			assert.Equal(t, []string{"first", "second"}, []string{items[0].Title, items[1].Title})

			cancel()
			require.Eventually(t, func() bool {
				select {
				case _, open := <-ch:
					return !open
				default:
					return false
				}
			}, 2*time.Second, 10*time.Millisecond)
		})
	}
}

func TestMemorySubscribeSeesConcurrentWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const writers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.Create(ctx, "board", listing{Title: "concurrent"})
			assert.NoError(t, err)
		}()
	}
	close(start)

	ch, err := s.Subscribe(ctx, Query{Collection: "board"})
	require.NoError(t, err)
	wg.Wait()

	var snap Snapshot
	require.Eventually(t, func() bool {
		select {
		case snap = <-ch:
		default:
		}
		return snap.Size == writers
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close(context.Background()))

	_, err := s.Create(context.Background(), "listings", listing{Title: "late"})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.Subscribe(context.Background(), Query{Collection: "listings"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPermissionError(t *testing.T) {
	err := &PermissionError{Path: "properties/p1", Operation: OpUpdate, Data: map[string]interface{}{"status": "approved"}}
	assert.True(t, IsPermission(err))
	assert.Equal(t, "missing or insufficient permissions: update on properties/p1", err.Error())
	assert.False(t, IsPermission(ErrNotFound))
}
