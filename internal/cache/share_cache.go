package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShareCache stores encoded results payloads under short share codes.
// Entries expire; a miss is the same "no results found" state as a
// missing URL parameter, never an error.
type ShareCache interface {
	Set(ctx context.Context, code, encoded string) error
	Get(ctx context.Context, code string) (string, error)
	Delete(ctx context.Context, code string) error
}

type shareCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewShareCache creates a new share-code cache
func NewShareCache(client *redis.Client) ShareCache {
	return &shareCache{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

func (c *shareCache) key(code string) string {
	return "share:" + code
}

func (c *shareCache) Set(ctx context.Context, code, encoded string) error {
	return c.client.Set(ctx, c.key(code), encoded, c.ttl).Err()
}

// Get returns "" with no error on a miss.
func (c *shareCache) Get(ctx context.Context, code string) (string, error) {
	encoded, err := c.client.Get(ctx, c.key(code)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return encoded, nil
}

func (c *shareCache) Delete(ctx context.Context, code string) error {
	return c.client.Del(ctx, c.key(code)).Err()
}
