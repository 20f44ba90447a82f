// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

const briefKeyPrefix = "brief:"

// RedisBriefStore persists briefs as JSON values with a TTL.
type RedisBriefStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBriefStore(client *redis.Client, ttl time.Duration) *RedisBriefStore {
	if ttl <= 0 {
		ttl = DefaultBriefTTL
	}
	return &RedisBriefStore{client: client, ttl: ttl}
}

func (s *RedisBriefStore) Put(ctx context.Context, brief *models.Brief) error {
	payload, err := json.Marshal(brief)
	if err != nil {
		return errors.NewStoreUnavailableError("redis", fmt.Errorf("marshal brief %s: %w", brief.ID, err))
	}
	if err := s.client.Set(ctx, briefKeyPrefix+brief.ID, payload, s.ttl).Err(); err != nil {
		return errors.NewStoreUnavailableError("redis", err)
	}
	return nil
}

func (s *RedisBriefStore) Get(ctx context.Context, id string) (*models.Brief, error) {
	payload, err := s.client.Get(ctx, briefKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, errors.NewBriefNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewStoreUnavailableError("redis", err)
	}

	var brief models.Brief
	if err := json.Unmarshal(payload, &brief); err != nil {
		return nil, errors.NewStoreUnavailableError("redis", fmt.Errorf("unmarshal brief %s: %w", id, err))
	}
	return &brief, nil
}
