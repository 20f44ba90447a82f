// internal/sources/events/budget_redis.go
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const budgetKeyPrefix = "events:budget:"

// RedisBudgetStore keeps the daily call counter in Redis so multiple
// instances share one budget. Keys expire after two days, long past
// the rollover.
type RedisBudgetStore struct {
	client *redis.Client
}

func NewRedisBudgetStore(client *redis.Client) *RedisBudgetStore {
	return &RedisBudgetStore{client: client}
}

func (s *RedisBudgetStore) Incr(ctx context.Context, day string) (int64, error) {
	key := budgetKeyPrefix + day
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		s.client.Expire(ctx, key, 48*time.Hour)
	}
	return count, nil
}
