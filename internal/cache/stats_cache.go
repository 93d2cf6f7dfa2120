package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"matchwell/internal/model"
)

// StatsCache handles Redis ZSET operations for the recommendation
// counters behind the live dashboard
type StatsCache interface {
	IncrementModality(ctx context.Context, m model.Modality) error
	TopModalities(ctx context.Context, limit int) ([]ModalityCount, error)
}

// ModalityCount is one dashboard counter row
type ModalityCount struct {
	Modality model.Modality `json:"modality"`
	Label    string         `json:"label"`
	Count    int64          `json:"count"`
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

const modalityStatsKey = "stats:modalities"

func (c *statsCache) IncrementModality(ctx context.Context, m model.Modality) error {
	return c.client.ZIncrBy(ctx, modalityStatsKey, 1, string(m)).Err()
}

func (c *statsCache) TopModalities(ctx context.Context, limit int) ([]ModalityCount, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, modalityStatsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	counts := make([]ModalityCount, len(results))
	for i, z := range results {
		m := model.Modality(z.Member.(string))
		counts[i] = ModalityCount{
			Modality: m,
			Label:    model.ModalityLabels[m],
			Count:    int64(z.Score),
		}
	}
	return counts, nil
}
