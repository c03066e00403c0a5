package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	SpaceID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, input CreateBookingInput, renterID uuid.UUID) (*queries.BookingView, error)
	ChangeStatus(ctx context.Context, bookingID uuid.UUID, next booking.Status, actor booking.Actor) (*queries.BookingView, error)
	CompleteElapsed(ctx context.Context) (int, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	spaceRepo   SpaceRepository
	calculator  booking.PriceCalculator
	payments    PaymentGateway
	publisher   NotificationPublisher
	clock       clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	calculator booking.PriceCalculator,
	payments PaymentGateway,
	publisher NotificationPublisher,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		calculator:  calculator,
		payments:    payments,
		publisher:   publisher,
		clock:       clock,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, input CreateBookingInput, renterID uuid.UUID) (*queries.BookingView, error) {
	window, err := booking.NewTimeWindow(input.StartTime, input.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeWindow)
	}

	sp, err := u.spaceRepo.FindByID(ctx, input.SpaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !sp.IsBookable() {
		return nil, errs.ErrSpaceUnavailable
	}

	price := u.calculator.Calculate(sp.Rates(), window)
	b := booking.NewBooking(sp.ID(), renterID, window, price, u.clock.Now())

	if err := u.bookingRepo.Create(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrBookingConflict)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.publishAsync(EventBookingCreated, b)
	return newBookingView(b, sp.Title()), nil
}

// ChangeStatus drives the booking state machine. Confirmation charges the
// renter before the transition persists; a charge failure leaves the booking
// PENDING. Cancellation of a paid booking attempts a refund after the
// transition persists; a refund failure is logged and the payment status
// stays PAID for manual follow-up.
func (u *bookingUseCaseImpl) ChangeStatus(ctx context.Context, bookingID uuid.UUID, next booking.Status, actor booking.Actor) (*queries.BookingView, error) {
	b, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sp, err := u.spaceRepo.FindByID(ctx, b.SpaceID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := b.ValidateTransition(next, actor, sp.OwnerID()); err != nil {
		return nil, markTransitionErr(err)
	}

	if next == booking.StatusConfirmed {
		if err := u.payments.Charge(ctx, b.ID(), b.TotalPrice().Cents()); err != nil {
			return nil, err
		}
	}

	now := u.clock.Now()
	if err := b.Transition(next, actor, sp.OwnerID(), now); err != nil {
		return nil, markTransitionErr(err)
	}
	if next == booking.StatusConfirmed {
		b.MarkPaid(now)
	}

	wasPaid := b.IsPaid()
	if err := u.bookingRepo.UpdateStatus(ctx, b); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if next == booking.StatusCancelled && wasPaid {
		if err := u.payments.Refund(ctx, b.ID(), b.TotalPrice().Cents()); err != nil {
			slog.Warn("refund failed, payment status left as paid",
				"booking_id", b.ID(), "error", err)
		} else {
			b.MarkRefunded(u.clock.Now())
			if err := u.bookingRepo.UpdateStatus(ctx, b); err != nil {
				slog.Warn("failed to persist refund status", "booking_id", b.ID(), "error", err)
			}
		}
	}

	u.publishAsync(eventTypeFor(next), b)
	return newBookingView(b, sp.Title()), nil
}

// CompleteElapsed moves every CONFIRMED booking whose window has ended to
// COMPLETED, acting as the system. Invoked by the background sweeper.
func (u *bookingUseCaseImpl) CompleteElapsed(ctx context.Context) (int, error) {
	ended, err := u.bookingRepo.ListConfirmedEndedBefore(ctx, u.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	completed := 0
	for _, b := range ended {
		if err := b.Transition(booking.StatusCompleted, booking.SystemActor(), uuid.Nil, u.clock.Now()); err != nil {
			slog.Warn("skipping booking that cannot complete", "booking_id", b.ID(), "error", err)
			continue
		}
		if err := u.bookingRepo.UpdateStatus(ctx, b); err != nil {
			slog.Warn("failed to persist completion", "booking_id", b.ID(), "error", err)
			continue
		}
		u.publishAsync(EventBookingCompleted, b)
		completed++
	}
	return completed, nil
}

// publishAsync emits the event off the request path; a lost event never
// fails the command.
func (u *bookingUseCaseImpl) publishAsync(eventType string, b *booking.Booking) {
	event := BookingEvent{
		Type:            eventType,
		BookingID:       b.ID(),
		SpaceID:         b.SpaceID(),
		RenterID:        b.RenterID(),
		Status:          b.Status().String(),
		TotalPriceCents: b.TotalPrice().Cents(),
		OccurredAt:      u.clock.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.publisher.Publish(ctx, event); err != nil {
			slog.Warn("failed to publish booking event",
				"type", event.Type, "booking_id", event.BookingID, "error", err)
		}
	}()
}

func markTransitionErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrForbidden):
		return errs.Mark(err, errs.ErrForbidden)
	case errors.Is(err, booking.ErrIllegalTransition):
		return errs.Mark(err, errs.ErrIllegalTransition)
	default:
		return err
	}
}

func eventTypeFor(next booking.Status) string {
	switch next {
	case booking.StatusConfirmed:
		return EventBookingConfirmed
	case booking.StatusCancelled:
		return EventBookingCancelled
	case booking.StatusCompleted:
		return EventBookingCompleted
	default:
		return EventBookingCreated
	}
}

func newBookingView(b *booking.Booking, spaceTitle string) *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID(),
		SpaceID:         b.SpaceID(),
		SpaceTitle:      spaceTitle,
		RenterID:        b.RenterID(),
		StartTime:       b.Window().Start(),
		EndTime:         b.Window().End(),
		Status:          b.Status().String(),
		PaymentStatus:   b.PaymentStatus().String(),
		TotalPriceCents: b.TotalPrice().Cents(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}
