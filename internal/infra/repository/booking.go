package repository

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, space_id, renter_id, start_time, end_time, status, payment_status, total_price_cents, created_at, updated_at`

const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE space_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_time < $3
		  AND end_time > $2
	)`

// HasConflict reports whether any active booking for the space overlaps the
// half-open window [start, end).
func (r *BookingRepository) HasConflict(ctx context.Context, spaceID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, overlapQuery, spaceID, start, end).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check booking conflict", err)
	}
	return exists, nil
}

// Create runs the conflict check and the insert in one transaction holding a
// per-space advisory lock, so concurrent attempts on the same space are
// serialized: two requests for an overlapping window can never both pass the
// check before either commits.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return infra.WrapRepoErr("failed to begin booking transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, b.SpaceID()); err != nil {
		return infra.WrapRepoErr("failed to acquire space lock", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, overlapQuery, b.SpaceID(), b.Window().Start(), b.Window().End()).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check booking conflict", err)
	}
	if exists {
		return infra.WrapRepoErr("time window overlaps an active booking", nil, infra.KindConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, space_id, renter_id, start_time, end_time, status, payment_status, total_price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID(), b.SpaceID(), b.RenterID(),
		b.Window().Start(), b.Window().End(),
		b.Status().String(), b.PaymentStatus().String(),
		b.TotalPrice().Cents(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit booking transaction", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

// UpdateStatus persists the status and payment status produced by a state
// machine transition. The price columns are deliberately untouched.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $2, payment_status = $3, updated_at = $4
		WHERE id = $1`,
		b.ID(), b.Status().String(), b.PaymentStatus().String(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if cmd.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// ListConfirmedEndedBefore returns CONFIRMED bookings whose window has
// ended, for the completion sweeper.
func (r *BookingRepository) ListConfirmedEndedBefore(ctx context.Context, deadline time.Time) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = 'CONFIRMED' AND end_time <= $1
		ORDER BY end_time`, deadline)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ended bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, spaceID, renterID uuid.UUID
		start, end            time.Time
		status, payment       string
		priceCents            int64
		createdAt, updatedAt  time.Time
	)
	if err := row.Scan(&id, &spaceID, &renterID, &start, &end, &status, &payment, &priceCents, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	window, err := booking.NewTimeWindow(start, end)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, spaceID, renterID,
		window,
		booking.Status(status),
		booking.PaymentStatus(payment),
		price,
		createdAt, updatedAt,
	), nil
}
