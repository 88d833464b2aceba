package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process. It backs tests and the
// STORE_DRIVER=memory development mode.
type MemoryStore struct {
	mu          sync.RWMutex
	closed      bool
	collections map[string]*memCollection
	subscribers map[string]map[*memSubscriber]struct{}
}

type memCollection struct {
	order []string
	docs  map[string][]byte
}

type memSubscriber struct {
	query Query
	ch    chan Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]*memCollection),
		subscribers: make(map[string]map[*memSubscriber]struct{}),
	}
}

func (m *MemoryStore) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string][]byte)}
		m.collections[name] = c
	}
	return c
}

func (m *MemoryStore) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	d, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	d["id"] = id
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return "", ErrUnavailable
	}
	c := m.collection(collection)
	c.order = append(c.order, id)
	c.docs[id] = raw
	m.mu.Unlock()

	m.notify(collection)
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrUnavailable
	}
	c := m.collection(collection)
	raw, ok := c.docs[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	var d document
	if err := json.Unmarshal(raw, &d); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := d.merge(fields); err != nil {
		m.mu.Unlock()
		return err
	}
	updated, err := json.Marshal(d)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	c.docs[id] = updated
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrUnavailable
	}
	c := m.collection(collection)
	if _, ok := c.docs[id]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrUnavailable
	}
	c, ok := m.collections[collection]
	if !ok {
		return ErrNotFound
	}
	raw, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	return decodeDocument(raw, out)
}

func (m *MemoryStore) List(ctx context.Context, q Query, out interface{}) error {
	docs, err := m.documents(q.Collection)
	if err != nil {
		return err
	}
	return decodeList(docs, q, out)
}

func (m *MemoryStore) documents(collection string) ([]document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrUnavailable
	}
	c, ok := m.collections[collection]
	if !ok {
		return []document{}, nil
	}
	docs := make([]document, 0, len(c.order))
	for _, id := range c.order {
		var d document
		if err := json.Unmarshal(c.docs[id], &d); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (m *MemoryStore) snapshot(q Query) (Snapshot, error) {
	docs, err := m.documents(q.Collection)
	if err != nil {
		return Snapshot{}, err
	}
	ordered := orderDocuments(docs, q)
	return Snapshot{
		Collection: q.Collection,
		Size:       len(ordered),
		ReadAt:     time.Now(),
		decode: func(out interface{}) error {
			return decodeList(ordered, Query{}, out)
		},
	}, nil
}

// Subscribe registers before reading the first snapshot so a write landing
// in between is still delivered.
func (m *MemoryStore) Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error) {
	sub := &memSubscriber{query: q, ch: make(chan Snapshot, 1)}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrUnavailable
	}
	if m.subscribers[q.Collection] == nil {
		m.subscribers[q.Collection] = make(map[*memSubscriber]struct{})
	}
	m.subscribers[q.Collection][sub] = struct{}{}
	m.mu.Unlock()

	first, err := m.snapshot(q)
	if err != nil {
		m.mu.Lock()
		delete(m.subscribers[q.Collection], sub)
		m.mu.Unlock()
		return nil, err
	}
	// A snapshot already queued by a concurrent write stands; any later write publishes again.
	select {
	case sub.ch <- first:
	default:
	}

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subscribers[q.Collection], sub)
		close(sub.ch)
		m.mu.Unlock()
	}()
	return sub.ch, nil
}

func (m *MemoryStore) notify(collection string) {
	m.mu.RLock()
	subs := make([]*memSubscriber, 0, len(m.subscribers[collection]))
	for sub := range m.subscribers[collection] {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	for _, sub := range subs {
		snap, err := m.snapshot(sub.query)
		if err != nil {
			continue
		}
		m.mu.RLock()
		if _, live := m.subscribers[collection][sub]; live {
			publish(sub.ch, snap)
		}
		m.mu.RUnlock()
	}
}

func (m *MemoryStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
