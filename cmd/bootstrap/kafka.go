package bootstrap

import (
	"context"

	"parkspot/internal/infra/notify"
	"parkspot/internal/pkg/config"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewKafkaPublisher,
	),
)

func NewKafkaPublisher(lc fx.Lifecycle, cfg config.Config) *notify.KafkaPublisher {
	publisher, closeWriter := notify.NewKafkaPublisher(cfg.Kafka)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return closeWriter()
		},
	})

	return publisher
}
