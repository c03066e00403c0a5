package commands

import (
	"context"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/space"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	ListConfirmedEndedBefore(ctx context.Context, deadline time.Time) ([]*booking.Booking, error)
}

type SpaceRepository interface {
	Create(ctx context.Context, s *space.Space) error
	Update(ctx context.Context, s *space.Space) error
	FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
}

// BookingEvent is the payload published to the notification topic after a
// lifecycle change commits. Delivery is best effort and never blocks the
// request path.
type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       uuid.UUID `json:"booking_id"`
	SpaceID         uuid.UUID `json:"space_id"`
	RenterID        uuid.UUID `json:"renter_id"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

type NotificationPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type PaymentGateway interface {
	Charge(ctx context.Context, bookingID uuid.UUID, amountCents int64) error
	Refund(ctx context.Context, bookingID uuid.UUID, amountCents int64) error
}

type SpaceCacheInvalidator interface {
	InvalidateSpace(ctx context.Context, id uuid.UUID) error
}
