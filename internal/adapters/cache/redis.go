// Package cache provides a Redis read-through cache for the record listing
// surface. The change path never reads through it; every committed change
// invalidates the cached listing.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/poyrazK/dnsgate/internal/core/domain"
	"github.com/poyrazK/dnsgate/internal/core/ports"
	"github.com/poyrazK/dnsgate/internal/infrastructure/metrics"
	"github.com/redis/go-redis/v9"
)

const recordListKey = "dnsgate:records"

// RecordCache stores the serialized record listing in Redis with a short TTL.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecordCache connects to Redis at addr and returns a cache with the
// given listing TTL.
func NewRecordCache(addr, password string, db int, ttl time.Duration) *RecordCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RecordCache{client: rdb, ttl: ttl}
}

// Get returns the cached listing, or (nil, false) on a miss or decode error.
func (c *RecordCache) Get(ctx context.Context) ([]domain.RecordState, bool) {
	raw, err := c.client.Get(ctx, recordListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var records []domain.RecordState
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

// Set stores the listing; encode or write failures are logged and dropped.
func (c *RecordCache) Set(ctx context.Context, records []domain.RecordState) {
	raw, err := json.Marshal(records)
	if err != nil {
		log.Printf("failed to encode record listing for cache: %v", err)
		return
	}
	c.client.Set(ctx, recordListKey, raw, c.ttl)
}

// Invalidate drops the cached listing.
func (c *RecordCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, recordListKey).Err()
}

func (c *RecordCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// CachedStore decorates a RecordStore so ListRecords is served from Redis
// when possible. All other operations delegate to the underlying store;
// PutRecord additionally invalidates the cached listing.
type CachedStore struct {
	store ports.RecordStore
	cache *RecordCache
}

// NewCachedStore creates and returns a new CachedStore instance.
func NewCachedStore(store ports.RecordStore, cache *RecordCache) *CachedStore {
	return &CachedStore{store: store, cache: cache}
}

func (s *CachedStore) GetRecord(ctx context.Context, name string) (*domain.RecordState, error) {
	return s.store.GetRecord(ctx, name)
}

func (s *CachedStore) PutRecord(ctx context.Context, state *domain.RecordState) error {
	if err := s.store.PutRecord(ctx, state); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("failed to invalidate record cache: %v", err)
	}
	return nil
}

func (s *CachedStore) ListRecords(ctx context.Context) ([]domain.RecordState, error) {
	if records, ok := s.cache.Get(ctx); ok {
		metrics.CacheOperations.WithLabelValues("hit").Inc()
		return records, nil
	}
	metrics.CacheOperations.WithLabelValues("miss").Inc()

	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, records)
	return records, nil
}

func (s *CachedStore) GetPrincipal(ctx context.Context, apiKey string) (*domain.Principal, error) {
	return s.store.GetPrincipal(ctx, apiKey)
}

func (s *CachedStore) SaveAuditLog(ctx context.Context, entry *domain.AuditLog) error {
	return s.store.SaveAuditLog(ctx, entry)
}

// Ping reports the first failing backend; the cache counts because a dead
// Redis degrades the listing surface even while the store is healthy.
func (s *CachedStore) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return err
	}
	return s.cache.Ping(ctx)
}
