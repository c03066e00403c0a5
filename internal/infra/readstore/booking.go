package readstore

import (
	"context"
	"errors"

	"parkspot/internal/infra"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	db *pgxpool.Pool
}

func NewBookingReadStore(db *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewQuery = `
	SELECT b.id, b.space_id, s.title, b.renter_id, b.start_time, b.end_time,
		b.status, b.payment_status, b.total_price_cents, b.created_at, b.updated_at
	FROM bookings b
	JOIN spaces s ON s.id = b.space_id`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingViewQuery+` WHERE b.id = $1`, id)
	v, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return v, nil
}

func (s *BookingReadStore) ListByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, bookingViewQuery+`
		WHERE b.renter_id = $1
		ORDER BY b.created_at DESC, b.id
		LIMIT $2 OFFSET $3`, renterID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by renter", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	if err := row.Scan(
		&v.ID, &v.SpaceID, &v.SpaceTitle, &v.RenterID, &v.StartTime, &v.EndTime,
		&v.Status, &v.PaymentStatus, &v.TotalPriceCents, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
