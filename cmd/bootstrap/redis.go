package bootstrap

import (
	"context"

	"parkspot/internal/infra/cache"
	"parkspot/internal/pkg/config"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewSpaceCache,
	),
)

func NewSpaceCache(lc fx.Lifecycle, cfg config.Config) (*cache.SpaceCache, error) {
	spaceCache, cleanup, err := cache.NewSpaceCache(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return spaceCache, nil
}
