package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"matchwell/internal/model"
)

// GeoCache caches postcode lookups so the upstream geo service is hit
// at most once a day per postcode
type GeoCache interface {
	Get(ctx context.Context, postcode string) (*model.GeoResult, error)
	Set(ctx context.Context, postcode string, result *model.GeoResult) error
}

type geoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGeoCache creates a new geo lookup cache
func NewGeoCache(client *redis.Client) GeoCache {
	return &geoCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *geoCache) key(postcode string) string {
	return "geo:" + postcode
}

// Get returns nil with no error on a miss.
func (c *geoCache) Get(ctx context.Context, postcode string) (*model.GeoResult, error) {
	data, err := c.client.Get(ctx, c.key(postcode)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.GeoResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *geoCache) Set(ctx context.Context, postcode string, result *model.GeoResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(postcode), data, c.ttl).Err()
}
