package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/redis/go-redis/v9"
)

// DefaultKPIKey is the Redis key holding the serialized dashboard counters
const DefaultKPIKey = "inventory:dashboard:kpis"

// InMemoryKPICache keeps dashboard counters in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryKPICache struct {
	mu        sync.RWMutex
	value     *appinv.DashboardKPIs
	expiresAt time.Time
	now       func() time.Time
}

// NewInMemoryKPICache creates an empty in-memory cache
func NewInMemoryKPICache() *InMemoryKPICache {
	return &InMemoryKPICache{now: time.Now}
}

// Get returns a copy of the cached counters if present and not expired
func (c *InMemoryKPICache) Get(_ context.Context) (*appinv.DashboardKPIs, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	v := *c.value
	return &v, true, nil
}

// Set stores a copy of kpis for ttl
func (c *InMemoryKPICache) Set(_ context.Context, kpis *appinv.DashboardKPIs, ttl time.Duration) error {
	if kpis == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v := *kpis
	c.value = &v
	c.expiresAt = c.now().Add(ttl)
	return nil
}

// Invalidate drops the cached counters
func (c *InMemoryKPICache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	return nil
}

// RedisKPICache stores dashboard counters in Redis so every instance
// sees the same values and the same invalidations
type RedisKPICache struct {
	client redis.UniversalClient
	key    string
}

// NewRedisKPICache creates a cache on an existing client. An empty key uses DefaultKPIKey.
func NewRedisKPICache(client redis.UniversalClient, key string) *RedisKPICache {
	if key == "" {
		key = DefaultKPIKey
	}
	return &RedisKPICache{client: client, key: key}
}

// Get reads and decodes the cached counters
func (c *RedisKPICache) Get(ctx context.Context) (*appinv.DashboardKPIs, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read dashboard KPIs: %w", err)
	}
	var kpis appinv.DashboardKPIs
	if err := json.Unmarshal(data, &kpis); err != nil {
		return nil, false, fmt.Errorf("failed to decode dashboard KPIs: %w", err)
	}
	return &kpis, true, nil
}

// Set encodes and stores the counters with a TTL
func (c *RedisKPICache) Set(ctx context.Context, kpis *appinv.DashboardKPIs, ttl time.Duration) error {
	data, err := json.Marshal(kpis)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard KPIs: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard KPIs: %w", err)
	}
	return nil
}

// Invalidate deletes the cached counters
func (c *RedisKPICache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard KPIs: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (c *RedisKPICache) Close() error {
	return c.client.Close()
}

var (
	_ appinv.KPICache = (*InMemoryKPICache)(nil)
	_ appinv.KPICache = (*RedisKPICache)(nil)
)
