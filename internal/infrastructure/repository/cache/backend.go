package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	basecache "github.com/riskibarqy/league-hub/internal/platform/cache"
)

// Backend stores encoded snapshots by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryBackend keeps snapshots in the process.
type MemoryBackend struct {
	store *basecache.Store
}

func NewMemoryBackend(store *basecache.Store) *MemoryBackend {
	return &MemoryBackend{store: store}
}

func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := b.store.Get(ctx, key)
	if !ok {
		return nil, false, nil
	}
	raw, ok := v.([]byte)
	return raw, ok, nil
}

func (b *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	b.store.Set(ctx, key, append([]byte(nil), value...))
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		b.store.Delete(ctx, key)
	}
	return nil
}

// RedisBackend shares snapshots between replicas.
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisBackend(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.client.Set(ctx, b.prefix+key, value, b.ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, b.prefix+key)
	}
	return b.client.Del(ctx, prefixed...).Err()
}
