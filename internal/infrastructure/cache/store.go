package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store caches JSON-serializable values by key
type Store[T any] interface {
	// Get returns the cached value; ok is false on a miss
	Get(ctx context.Context, key string) (value T, ok bool, err error)
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NewStore returns a Redis store when client is non-nil, else an in-memory one
func NewStore[T any](client redis.UniversalClient, keyPrefix string) Store[T] {
	if client == nil {
		return NewInMemoryStore[T]()
	}
	return NewRedisStore[T](client, keyPrefix)
}

// RedisStore implements Store on Redis, values encoded as JSON
type RedisStore[T any] struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore[T any](client redis.UniversalClient, keyPrefix string) *RedisStore[T] {
	return &RedisStore[T]{client: client, keyPrefix: keyPrefix}
}

// Get implements Store
func (s *RedisStore[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var value T
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode cache key %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store
func (s *RedisStore[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

// Delete implements Store
func (s *RedisStore[T]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.keyPrefix + k
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// InMemoryStore implements Store in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryStore[T any] struct {
	mu        sync.RWMutex
	entries   map[string]entry[T]
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryStore creates an in-memory store with a background sweep of expired entries
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	s := &InMemoryStore[T]{
		entries:  make(map[string]entry[T]),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.cleanupLoop()
	return s
}

// Get implements Store
func (s *InMemoryStore[T]) Get(_ context.Context, key string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		var zero T
		return zero, false, nil
	}
	return e.value, true, nil
}

// Set implements Store
func (s *InMemoryStore[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[T]{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

// Delete implements Store
func (s *InMemoryStore[T]) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryStore[T]) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of entries, expired ones included until swept
func (s *InMemoryStore[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *InMemoryStore[T]) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryStore[T]) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

var (
	_ Store[string] = (*RedisStore[string])(nil)
	_ Store[string] = (*InMemoryStore[string])(nil)
)
