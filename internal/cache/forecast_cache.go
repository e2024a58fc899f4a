package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/procuresmart/backend-go/internal/config"
	"github.com/procuresmart/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	forecastKeyPrefix     = "forecast:material"
	forecastScanBatchSize = 100
)

// ForecastCache keeps computed forecasts between catalog reloads.
type ForecastCache interface {
	Get(ctx context.Context, materialID string) (*domain.ForecastResult, bool, error)
	Set(ctx context.Context, materialID string, result *domain.ForecastResult) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, materialID string) (*domain.ForecastResult, bool, error) {
	payload, err := c.client.Get(ctx, buildForecastKey(materialID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.ForecastResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, materialID string, result *domain.ForecastResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, buildForecastKey(materialID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, forecastScanBatchSize)
}

func buildForecastKey(materialID string) string {
	return fmt.Sprintf("%s:%s", forecastKeyPrefix, strings.ToLower(strings.TrimSpace(materialID)))
}

func (c *noopForecastCache) Get(ctx context.Context, materialID string) (*domain.ForecastResult, bool, error) {
	return nil, false, nil
}

func (c *noopForecastCache) Set(ctx context.Context, materialID string, result *domain.ForecastResult) error {
	return nil
}

func (c *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}
