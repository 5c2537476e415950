// Package redis implements ports.StateStore on Redis. A turn's batched
// flush lands as one pipelined write together with the key index.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"flightdesk/pkg/domain"
)

// Store implements ports.StateStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for conversation state keys.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "flightdesk:state:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Get returns the stored value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set writes a single key and records it in the index.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMulti(ctx, map[string][]byte{key: value})
}

// SetMulti writes the batch in one pipeline so a turn's staged slots land
// together.
func (s *Store) SetMulti(ctx context.Context, values map[string][]byte) error {
	pipe := s.client.Pipeline()
	for key, value := range values {
		pipe.Set(ctx, s.key(key), value, s.ttl)
		pipe.SAdd(ctx, s.indexKey(), key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the key and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	pipe.SRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// List returns all indexed keys. Keys whose values have expired may linger
// in the index until the next write touches them.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	return keys, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
