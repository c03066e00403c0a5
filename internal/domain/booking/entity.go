package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrForbidden         = errors.New("actor not permitted for this transition")
)

type Booking struct {
	id            uuid.UUID
	spaceID       uuid.UUID
	renterID      uuid.UUID
	window        TimeWindow
	status        Status
	paymentStatus PaymentStatus
	totalPrice    Money
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking creates a PENDING booking. The price is computed once here and
// never recomputed on later status changes.
func NewBooking(
	spaceID, renterID uuid.UUID,
	window TimeWindow,
	totalPrice Money,
	now time.Time,
) *Booking {
	return &Booking{
		id:            uuid.New(),
		spaceID:       spaceID,
		renterID:      renterID,
		window:        window,
		status:        StatusPending,
		paymentStatus: PaymentUnpaid,
		totalPrice:    totalPrice,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructBooking(
	id, spaceID, renterID uuid.UUID,
	window TimeWindow,
	status Status,
	paymentStatus PaymentStatus,
	totalPrice Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		spaceID:       spaceID,
		renterID:      renterID,
		window:        window,
		status:        status,
		paymentStatus: paymentStatus,
		totalPrice:    totalPrice,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ValidateTransition checks legality and actor authorization without
// mutating the booking. Confirm is owner-only, cancel is renter-only,
// complete is system-only.
func (b *Booking) ValidateTransition(next Status, actor Actor, spaceOwnerID uuid.UUID) error {
	if !next.IsValid() {
		return ErrIllegalTransition
	}
	if !b.status.CanTransitionTo(next) {
		return ErrIllegalTransition
	}

	switch next {
	case StatusConfirmed:
		if actor.System || actor.UserID != spaceOwnerID {
			return ErrForbidden
		}
	case StatusCancelled:
		if actor.System || actor.UserID != b.renterID {
			return ErrForbidden
		}
	case StatusCompleted:
		if !actor.System {
			return ErrForbidden
		}
	}

	return nil
}

// Transition validates and applies a status change.
func (b *Booking) Transition(next Status, actor Actor, spaceOwnerID uuid.UUID, now time.Time) error {
	if err := b.ValidateTransition(next, actor, spaceOwnerID); err != nil {
		return err
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) MarkPaid(now time.Time) {
	b.paymentStatus = PaymentPaid
	b.updatedAt = now
}

func (b *Booking) MarkRefunded(now time.Time) {
	b.paymentStatus = PaymentRefunded
	b.updatedAt = now
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) IsPaid() bool {
	return b.paymentStatus == PaymentPaid
}

func (b *Booking) IsVisibleTo(userID, spaceOwnerID uuid.UUID) bool {
	return b.renterID == userID || spaceOwnerID == userID
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) SpaceID() uuid.UUID           { return b.spaceID }
func (b *Booking) RenterID() uuid.UUID          { return b.renterID }
func (b *Booking) Window() TimeWindow           { return b.window }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) TotalPrice() Money            { return b.totalPrice }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
