package cache

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache stores JSON-encoded values under string keys with a TTL.
type Cache interface {
	// Get decodes the value stored at key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

// New connects to Redis when an address is configured and falls back to an
// in-process cache when it is not or when Redis cannot be reached.
func New(ctx context.Context, cfg Config, log *logrus.Logger) Cache {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return NewMemory()
	}

	rc, err := NewRedis(ctx, cfg)
	if err != nil {
		if log != nil {
			log.WithError(err).Warn("redis unavailable, using in-memory cache")
		}
		return NewMemory()
	}
	return rc
}
