package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blocklist remembers signed-out token ids until their expiry.
type Blocklist interface {
	Block(ctx context.Context, id string, until time.Time) error
	Blocked(ctx context.Context, id string) (bool, error)
}

type RedisBlocklist struct {
	client *redis.Client
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{client: client}
}

func (b *RedisBlocklist) Block(ctx context.Context, id string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, "session:revoked:"+id, "1", ttl).Err()
}

func (b *RedisBlocklist) Blocked(ctx context.Context, id string) (bool, error) {
	err := b.client.Get(ctx, "session:revoked:"+id).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type MemoryBlocklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{revoked: make(map[string]time.Time)}
}

func (b *MemoryBlocklist) Block(_ context.Context, id string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	for k, exp := range b.revoked {
		if now.After(exp) {
			delete(b.revoked, k)
		}
	}
	b.revoked[id] = until
	return nil
}

func (b *MemoryBlocklist) Blocked(_ context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.revoked[id]
	return ok && time.Now().Before(exp), nil
}
