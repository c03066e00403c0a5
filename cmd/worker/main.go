// Command worker runs the booking completion sweeper: it periodically moves
// CONFIRMED bookings whose window has ended to COMPLETED.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/infra/db"
	"parkspot/internal/infra/notify"
	"parkspot/internal/infra/payment"
	"parkspot/internal/infra/repository"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/config"
	"parkspot/internal/usecase/commands"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	publisher, closeWriter := notify.NewKafkaPublisher(cfg.Kafka)
	defer func() {
		if err := closeWriter(); err != nil {
			logger.Warn("failed to close kafka writer", "error", err)
		}
	}()

	bookingUseCase := commands.NewBookingUseCase(
		repository.NewBookingRepository(pool),
		repository.NewSpaceRepository(pool),
		booking.NewTieredPriceCalculator(),
		payment.NewClient(cfg.Payment),
		publisher,
		clock.NewRealClock(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(cfg.Worker.CompletionSweepInterval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("completion sweeper started", "interval", cfg.Worker.CompletionSweepInterval)

	for {
		select {
		case <-ticker.C:
			completed, err := bookingUseCase.CompleteElapsed(ctx)
			if err != nil {
				logger.Error("completion sweep failed", "error", err)
				continue
			}
			if completed > 0 {
				logger.Info("completed elapsed bookings", "count", completed)
			}
		case s := <-sig:
			logger.Info("received signal, shutting down", "signal", s.String())
			return
		}
	}
}
