package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DialRedis connects a client and verifies the connection with a short
// ping before anything depends on it.
func DialRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// RedisStore implements Store on a shared redis client. Namespaces map to
// key prefixes; redis SELECT is per-connection state and does not mix with
// a connection pool.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) key(ns Namespace, key string) string {
	return string(ns) + ":" + key
}

func (r *RedisStore) Set(ctx context.Context, ns Namespace, key, value string, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	if ttl <= 0 {
		return fmt.Errorf("kv: ttl must be positive")
	}
	return r.client.Set(ctx, r.key(ns, key), value, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, ns Namespace, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(ns, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisStore) GetDel(ctx context.Context, ns Namespace, key string) (string, error) {
	val, err := r.client.GetDel(ctx, r.key(ns, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
