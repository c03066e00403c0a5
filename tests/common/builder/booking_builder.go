package builder

import (
	"time"

	"parkspot/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	spaceID    uuid.UUID
	renterID   uuid.UUID
	start      time.Time
	end        time.Time
	priceCents int64
	now        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		spaceID:    uuid.New(),
		renterID:   uuid.New(),
		start:      start,
		end:        start.Add(3 * time.Hour),
		priceCents: 3000,
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithSpaceID(id uuid.UUID) *BookingBuilder {
	b.spaceID = id
	return b
}

func (b *BookingBuilder) WithRenterID(id uuid.UUID) *BookingBuilder {
	b.renterID = id
	return b
}

func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder {
	b.priceCents = cents
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	window, err := booking.NewTimeWindow(b.start, b.end)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(b.priceCents)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.spaceID, b.renterID, window, price, b.now), nil
}
