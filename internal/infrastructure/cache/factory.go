package cache

import (
	"time"

	appfiscal "github.com/inmogest/backend/internal/application/fiscal"
	"github.com/inmogest/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BookCacheFactory creates the VAT book cache based on configuration
type BookCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// BookCacheFactoryOption is a functional option for configuring the factory
type BookCacheFactoryOption func(*BookCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) BookCacheFactoryOption {
	return func(f *BookCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) BookCacheFactoryOption {
	return func(f *BookCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewBookCacheFactory creates a new factory
func NewBookCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...BookCacheFactoryOption) *BookCacheFactory {
	f := &BookCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create builds the book cache. Redis is preferred; when it is not
// reachable and fallback is allowed, a process-local cache is returned
// instead so report serving keeps working.
func (f *BookCacheFactory) Create() (appfiscal.BookCache, error) {
	redisCache, err := NewRedisBookCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl)
	if err == nil {
		f.logger.Info("Using Redis book cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Duration("ttl", f.ttl))
		return redisCache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory book cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err))
	return NewInMemoryBookCache(f.ttl), nil
}
