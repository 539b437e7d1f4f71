package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"mindhaven/internal/model"
)

const historyTTL = 5 * time.Minute

// ResultCache caches a user's recent result history for the longitudinal
// tracking views. Invalidated whenever a new result lands.
type ResultCache interface {
	SetHistory(ctx context.Context, userID string, results []*model.AssessmentResult) error
	GetHistory(ctx context.Context, userID string) ([]*model.AssessmentResult, error)
	Invalidate(ctx context.Context, userID string) error
}

type resultCache struct {
	client *redis.Client
}

func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
	}
}

func (c *resultCache) SetHistory(ctx context.Context, userID string, results []*model.AssessmentResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "history:"+userID, data, historyTTL).Err()
}

func (c *resultCache) GetHistory(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	data, err := c.client.Get(ctx, "history:"+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var results []*model.AssessmentResult
	err = json.Unmarshal([]byte(data), &results)
	return results, err
}

func (c *resultCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, "history:"+userID).Err()
}
