package components

import (
	"parkspot/internal/infra/cache"
	"parkspot/internal/infra/notify"
	"parkspot/internal/infra/payment"
	"parkspot/internal/infra/readstore"
	"parkspot/internal/infra/repository"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewSpaceRepository,
			fx.As(new(commands.SpaceRepository)),
			fx.As(new(queries.SpaceEntityRepo)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewSpaceReadStore,
			fx.As(new(queries.SpaceSearchStore)),
			fx.As(new(queries.SpaceViewRepo)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
	// External collaborators constructed in bootstrap, bound here
	fx.Provide(
		fx.Annotate(
			func(c *cache.SpaceCache) *cache.SpaceCache { return c },
			fx.As(new(queries.SpaceCacheStore)),
			fx.As(new(commands.SpaceCacheInvalidator)),
		),
		fx.Annotate(
			func(p *notify.KafkaPublisher) *notify.KafkaPublisher { return p },
			fx.As(new(commands.NotificationPublisher)),
		),
		fx.Annotate(
			func(c *payment.Client) *payment.Client { return c },
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
