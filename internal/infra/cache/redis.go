package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parkspot/internal/pkg/config"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SpaceCache is a read-through cache for space detail views. A miss returns
// (nil, nil) so callers fall back to the read store.
type SpaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSpaceCache(cfg config.RedisConfig) (*SpaceCache, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
	return &SpaceCache{client: client, ttl: cfg.SpaceTTL}, cleanup, nil
}

func (c *SpaceCache) GetSpace(ctx context.Context, id uuid.UUID) (*queries.SpaceView, error) {
	data, err := c.client.Get(ctx, spaceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var view queries.SpaceView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *SpaceCache) SetSpace(ctx context.Context, view *queries.SpaceView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, spaceKey(view.ID), payload, c.ttl).Err()
}

// InvalidateSpace drops the cached view after any write to the space.
func (c *SpaceCache) InvalidateSpace(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, spaceKey(id)).Err()
}

func spaceKey(id uuid.UUID) string {
	return "cache:space:" + id.String()
}
