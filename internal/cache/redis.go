package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"shunt/internal/engine"
)

const defaultRedisPrefix = "shunt:result:"

// Redis stores payloads as string values, optionally with a TTL.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

// WithTTL sets the expiration of new entries. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) { r.ttl = ttl }
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedis connects to addr.
func NewRedis(addr, password string, db int, opts ...Option) *Redis {
	return NewRedisFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) Get(ctx context.Context, key string) (*engine.Result, bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	res, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return res, res != nil, nil
}

func (r *Redis) Put(ctx context.Context, key string, res *engine.Result) error {
	data, err := encode(res)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
