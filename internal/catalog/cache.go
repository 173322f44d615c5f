package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"
)

const CacheKey = "catalog:scholarships"

// CachedSource serves the catalog from redis and falls back to Origin on a
// miss or a redis failure. Redis errors are logged, never returned.
type CachedSource struct {
	Origin Source
	Redis  redis.Cmdable
	TTL    time.Duration
	Logger logger.Logger
}

func (c *CachedSource) Name() string {
	return "cache(" + c.Origin.Name() + ")"
}

func (c *CachedSource) Load(ctx context.Context) ([]models.Scholarship, error) {
	cached, err := c.Redis.Get(ctx, CacheKey).Result()
	switch {
	case err == nil:
		var defs []models.Scholarship
		jsonErr := json.Unmarshal([]byte(cached), &defs)
		if jsonErr == nil {
			return defs, nil
		}
		c.log().Warn("Discarding unreadable cached catalog", map[string]interface{}{"error": jsonErr.Error()})
	case err != redis.Nil:
		c.log().Warn("Catalog cache read failed", map[string]interface{}{"error": err.Error()})
	}

	defs, err := c.Origin.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(defs); err == nil {
		if err := c.Redis.Set(ctx, CacheKey, data, c.TTL).Err(); err != nil {
			c.log().Warn("Catalog cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return defs, nil
}

// Invalidate drops the cached catalog.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.Redis.Del(ctx, CacheKey).Err()
}

func (c *CachedSource) log() logger.Logger {
	if c.Logger == nil {
		return logger.NewNoOpLogger()
	}
	return c.Logger
}
