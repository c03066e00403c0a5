//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/space"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/commands"
	"parkspot/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	byID      map[uuid.UUID]*booking.Booking
	ended     []*booking.Booking
	createErr error
	updateErr error
	created   []*booking.Booking
	updates   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uuid.UUID]*booking.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	f.byID[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	f.byID[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) ListConfirmedEndedBefore(_ context.Context, _ time.Time) ([]*booking.Booking, error) {
	return f.ended, nil
}

type fakeSpaceRepo struct {
	byID map[uuid.UUID]*space.Space
}

func newFakeSpaceRepo(spaces ...*space.Space) *fakeSpaceRepo {
	f := &fakeSpaceRepo{byID: make(map[uuid.UUID]*space.Space)}
	for _, s := range spaces {
		f.byID[s.ID()] = s
	}
	return f
}

func (f *fakeSpaceRepo) Create(_ context.Context, s *space.Space) error {
	f.byID[s.ID()] = s
	return nil
}

func (f *fakeSpaceRepo) Update(_ context.Context, s *space.Space) error {
	f.byID[s.ID()] = s
	return nil
}

func (f *fakeSpaceRepo) FindByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("space not found", nil, infra.KindNotFound)
	}
	return s, nil
}

type fakePayments struct {
	chargeErr error
	refundErr error
	charges   int
	refunds   int
}

func (f *fakePayments) Charge(_ context.Context, _ uuid.UUID, _ int64) error {
	f.charges++
	return f.chargeErr
}

func (f *fakePayments) Refund(_ context.Context, _ uuid.UUID, _ int64) error {
	f.refunds++
	return f.refundErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []commands.BookingEvent
}

func (f *fakePublisher) Publish(_ context.Context, e commands.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type bookingFixture struct {
	useCase   commands.BookingCommands
	bookings  *fakeBookingRepo
	spaces    *fakeSpaceRepo
	payments  *fakePayments
	publisher *fakePublisher
	clock     *clock.MockClock
}

func newBookingFixture(t *testing.T, spaces ...*space.Space) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		bookings:  newFakeBookingRepo(),
		spaces:    newFakeSpaceRepo(spaces...),
		payments:  &fakePayments{},
		publisher: &fakePublisher{},
		clock:     clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	f.useCase = commands.NewBookingUseCase(
		f.bookings, f.spaces, booking.NewTieredPriceCalculator(),
		f.payments, f.publisher, f.clock,
	)
	return f
}

func approvedSpace(t *testing.T) *space.Space {
	t.Helper()
	sp, err := builder.NewSpaceBuilder().BuildDomain()
	require.NoError(t, err)
	require.NoError(t, sp.SetModeration(space.ModerationApproved, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	return sp
}

func TestCreateBooking(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("creates pending booking with computed price", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		renterID := uuid.New()

		view, err := f.useCase.CreateBooking(context.Background(), commands.CreateBookingInput{
			SpaceID:   sp.ID(),
			StartTime: start,
			EndTime:   start.Add(3 * time.Hour),
		}, renterID)

		require.NoError(t, err)
		assert.Equal(t, "PENDING", view.Status)
		assert.Equal(t, "UNPAID", view.PaymentStatus)
		assert.Equal(t, int64(3000), view.TotalPriceCents)
		assert.Equal(t, renterID, view.RenterID)
		assert.Equal(t, sp.Title(), view.SpaceTitle)
		require.Len(t, f.bookings.created, 1)

		assert.Eventually(t, func() bool { return f.publisher.count() == 1 }, time.Second, 10*time.Millisecond)
	})

	t.Run("invalid window", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)

		_, err := f.useCase.CreateBooking(context.Background(), commands.CreateBookingInput{
			SpaceID:   sp.ID(),
			StartTime: start,
			EndTime:   start,
		}, uuid.New())

		require.ErrorIs(t, err, errs.ErrInvalidTimeWindow)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("unknown space", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.useCase.CreateBooking(context.Background(), commands.CreateBookingInput{
			SpaceID:   uuid.New(),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}, uuid.New())

		require.ErrorIs(t, err, errs.ErrSpaceNotFound)
	})

	t.Run("unapproved space is not bookable", func(t *testing.T) {
		sp, err := builder.NewSpaceBuilder().BuildDomain()
		require.NoError(t, err)
		f := newBookingFixture(t, sp)

		_, err = f.useCase.CreateBooking(context.Background(), commands.CreateBookingInput{
			SpaceID:   sp.ID(),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}, uuid.New())

		require.ErrorIs(t, err, errs.ErrSpaceUnavailable)
	})

	t.Run("repository conflict maps to booking conflict", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		f.bookings.createErr = infra.WrapRepoErr("overlap", nil, infra.KindConflict)

		_, err := f.useCase.CreateBooking(context.Background(), commands.CreateBookingInput{
			SpaceID:   sp.ID(),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}, uuid.New())

		require.ErrorIs(t, err, errs.ErrBookingConflict)
	})
}

func TestChangeStatus(t *testing.T) {
	seed := func(t *testing.T, f *bookingFixture, sp *space.Space) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().WithSpaceID(sp.ID()).BuildDomain()
		require.NoError(t, err)
		f.bookings.byID[b.ID()] = b
		return b
	}

	t.Run("owner confirms and charge succeeds", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		b := seed(t, f, sp)

		view, err := f.useCase.ChangeStatus(context.Background(), b.ID(), booking.StatusConfirmed, booking.UserActor(sp.OwnerID()))

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", view.Status)
		assert.Equal(t, "PAID", view.PaymentStatus)
		assert.Equal(t, 1, f.payments.charges)
	})

	t.Run("charge failure leaves booking pending", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		b := seed(t, f, sp)
		f.payments.chargeErr = errs.Mark(errs.New("declined"), errs.ErrPaymentFailed)

		_, err := f.useCase.ChangeStatus(context.Background(), b.ID(), booking.StatusConfirmed, booking.UserActor(sp.OwnerID()))

		require.ErrorIs(t, err, errs.ErrPaymentFailed)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Zero(t, f.bookings.updates)
	})

	t.Run("renter cannot confirm", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		b := seed(t, f, sp)

		_, err := f.useCase.ChangeStatus(context.Background(), b.ID(), booking.StatusConfirmed, booking.UserActor(b.RenterID()))

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Zero(t, f.payments.charges)
	})

	t.Run("renter cancels a paid booking and gets refunded", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		b := seed(t, f, sp)
		require.NoError(t, b.Transition(booking.StatusConfirmed, booking.UserActor(sp.OwnerID()), sp.OwnerID(), f.clock.Now()))
		b.MarkPaid(f.clock.Now())

		view, err := f.useCase.ChangeStatus(context.Background(), b.ID(), booking.StatusCancelled, booking.UserActor(b.RenterID()))

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", view.Status)
		assert.Equal(t, 1, f.payments.refunds)
		assert.Equal(t, booking.PaymentRefunded, b.PaymentStatus())
	})

	t.Run("refund failure keeps booking cancelled and paid", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		b := seed(t, f, sp)
		require.NoError(t, b.Transition(booking.StatusConfirmed, booking.UserActor(sp.OwnerID()), sp.OwnerID(), f.clock.Now()))
		b.MarkPaid(f.clock.Now())
		f.payments.refundErr = errs.Mark(errs.New("gateway down"), errs.ErrPaymentFailed)

		view, err := f.useCase.ChangeStatus(context.Background(), b.ID(), booking.StatusCancelled, booking.UserActor(b.RenterID()))

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", view.Status)
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})

	t.Run("completed booking rejects further transitions", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)
		b := seed(t, f, sp)
		require.NoError(t, b.Transition(booking.StatusConfirmed, booking.UserActor(sp.OwnerID()), sp.OwnerID(), f.clock.Now()))
		require.NoError(t, b.Transition(booking.StatusCompleted, booking.SystemActor(), sp.OwnerID(), f.clock.Now()))

		_, err := f.useCase.ChangeStatus(context.Background(), b.ID(), booking.StatusCancelled, booking.UserActor(b.RenterID()))

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)

		_, err := f.useCase.ChangeStatus(context.Background(), uuid.New(), booking.StatusConfirmed, booking.UserActor(sp.OwnerID()))

		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestCompleteElapsed(t *testing.T) {
	t.Run("completes confirmed bookings whose window ended", func(t *testing.T) {
		sp := approvedSpace(t)
		f := newBookingFixture(t, sp)

		var ended []*booking.Booking
		for i := 0; i < 3; i++ {
			b, err := builder.NewBookingBuilder().WithSpaceID(sp.ID()).BuildDomain()
			require.NoError(t, err)
			require.NoError(t, b.Transition(booking.StatusConfirmed, booking.UserActor(sp.OwnerID()), sp.OwnerID(), f.clock.Now()))
			ended = append(ended, b)
		}
		f.bookings.ended = ended

		n, err := f.useCase.CompleteElapsed(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		for _, b := range ended {
			assert.Equal(t, booking.StatusCompleted, b.Status())
		}
	})

	t.Run("no ended bookings is a no-op", func(t *testing.T) {
		f := newBookingFixture(t)

		n, err := f.useCase.CompleteElapsed(context.Background())

		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
