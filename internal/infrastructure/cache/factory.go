package cache

import (
	"context"
	"fmt"
	"time"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KPICacheFactory builds the dashboard KPI cache selected by configuration
type KPICacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration
}

// KPICacheFactoryOption is a functional option for configuring the factory
type KPICacheFactoryOption func(*KPICacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) KPICacheFactoryOption {
	return func(f *KPICacheFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory cache instead of failing startup. Default true.
func WithInMemoryFallback(allow bool) KPICacheFactoryOption {
	return func(f *KPICacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithPingTimeout bounds the Redis connectivity check
func WithPingTimeout(d time.Duration) KPICacheFactoryOption {
	return func(f *KPICacheFactory) {
		f.pingTimeout = d
	}
}

// NewKPICacheFactory creates a new factory
func NewKPICacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...KPICacheFactoryOption) *KPICacheFactory {
	f := &KPICacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           3 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the configured cache. The returned close func releases any
// connection and is never nil.
func (f *KPICacheFactory) Create(ctx context.Context) (appinv.KPICache, func() error, error) {
	noop := func() error { return nil }
	if f.cacheConfig.Type != "redis" {
		f.logger.Info("using in-memory dashboard cache")
		return NewInMemoryKPICache(), noop, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !f.allowInMemoryFallback {
			return nil, noop, fmt.Errorf("redis required for dashboard cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory dashboard cache. "+
			"KPI invalidations will not be shared across instances.",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err),
		)
		return NewInMemoryKPICache(), noop, nil
	}

	f.logger.Info("using Redis dashboard cache", zap.String("addr", f.redisConfig.Addr()))
	c := NewRedisKPICache(client, "")
	return c, c.Close, nil
}
