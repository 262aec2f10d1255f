package state

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Manager tracks which detail URLs have already been ingested, so a re-run
// does not append duplicate catalog rows. The pipeline itself is
// append-only; this is the caller-side guard.
type Manager interface {
	IsIngested(ctx context.Context, url string) (bool, error)
	MarkIngested(ctx context.Context, url string) error
}

type redisManager struct {
	redisClient *redis.Client
	key         string
}

func NewRedisManager(redisClient *redis.Client) Manager {
	return &redisManager{
		redisClient: redisClient,
		key:         "catalog:ingested:products",
	}
}

func (m *redisManager) IsIngested(ctx context.Context, url string) (bool, error) {
	ingested, err := m.redisClient.SIsMember(ctx, m.key, url).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check ingestion state for %s: %w", url, err)
	}
	return ingested, nil
}

func (m *redisManager) MarkIngested(ctx context.Context, url string) error {
	if err := m.redisClient.SAdd(ctx, m.key, url).Err(); err != nil {
		return fmt.Errorf("failed to mark %s as ingested: %w", url, err)
	}
	return nil
}
