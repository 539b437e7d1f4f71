package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"mindhaven/internal/model"
)

// ErrMiss is returned when the key is not cached
var ErrMiss = errors.New("cache miss")

const attemptTTL = 30 * time.Minute

// AttemptCache keeps the active attempt snapshot hot while answers accumulate,
// so the per-answer path does not hit mongo. The repository stays the source
// of truth; the cache entry expires with the attempt session.
type AttemptCache interface {
	Set(ctx context.Context, attempt *model.Attempt) error
	Get(ctx context.Context, id string) (*model.Attempt, error)
	Delete(ctx context.Context, id string) error
}

type attemptCache struct {
	client *redis.Client
}

func NewAttemptCache(client *redis.Client) AttemptCache {
	return &attemptCache{
		client: client,
	}
}

func (c *attemptCache) Set(ctx context.Context, attempt *model.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "attempt:"+attempt.ID, data, attemptTTL).Err()
}

func (c *attemptCache) Get(ctx context.Context, id string) (*model.Attempt, error) {
	data, err := c.client.Get(ctx, "attempt:"+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var attempt model.Attempt
	err = json.Unmarshal([]byte(data), &attempt)
	return &attempt, err
}

func (c *attemptCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "attempt:"+id).Err()
}
