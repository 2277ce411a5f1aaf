package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jdsanc/mt-nir/internal/config"
	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// redisCache is the redis-backed PredictionCache.  Vectors are stored as JSON
// arrays under a hashed key with a TTL, so a checkpoint swap at the same path
// ages out stale entries even though the key does not change.
type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logging.Logger
}

// NewRedis connects to redis per cfg and verifies the connection with a ping
// before returning the cache.
func NewRedis(ctx context.Context, cfg config.CacheConfig, logger logging.Logger) (PredictionCache, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis ping failed")
	}

	return &redisCache{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
		logger: logger.Named("cache"),
	}, nil
}

func (c *redisCache) Get(ctx context.Context, modelsPath, smiles string) (photoprop.Vector, bool, error) {
	raw, err := c.client.Get(ctx, Key(c.prefix, modelsPath, smiles)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis get failed")
	}

	var v photoprop.Vector
	if err := json.Unmarshal(raw, &v); err != nil {
		// A corrupt entry is treated as a miss; the fresh prediction will
		// overwrite it.
		c.logger.Warn("discarding corrupt cache entry", logging.Err(err))
		return nil, false, nil
	}
	return v, true, nil
}

func (c *redisCache) Put(ctx context.Context, modelsPath, smiles string, v photoprop.Vector) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "encoding vector")
	}
	if err := c.client.Set(ctx, Key(c.prefix, modelsPath, smiles), raw, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis set failed")
	}
	return nil
}
