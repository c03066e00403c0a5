package repository

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/domain/space"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SpaceRepository struct {
	db *pgxpool.Pool
}

func NewSpaceRepository(db *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{db: db}
}

const spaceColumns = `id, owner_id, title, description, space_type, amenities, latitude, longitude,
	price_per_hour_cents, price_per_day_cents, price_per_month_cents,
	is_available, moderation_status, created_at, updated_at`

func (r *SpaceRepository) Create(ctx context.Context, s *space.Space) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO spaces (id, owner_id, title, description, space_type, amenities, latitude, longitude,
			price_per_hour_cents, price_per_day_cents, price_per_month_cents,
			is_available, moderation_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID(), s.OwnerID(), s.Title(), s.Description(), string(s.SpaceType()), s.Amenities(),
		s.Location().Latitude, s.Location().Longitude,
		s.Rates().HourlyCents(), s.Rates().DailyCents(), s.Rates().MonthlyCents(),
		s.IsAvailable(), s.Moderation().String(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert space", err)
	}
	return nil
}

func (r *SpaceRepository) Update(ctx context.Context, s *space.Space) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE spaces SET
			title = $2, description = $3, space_type = $4, amenities = $5,
			price_per_hour_cents = $6, price_per_day_cents = $7, price_per_month_cents = $8,
			is_available = $9, moderation_status = $10, updated_at = $11
		WHERE id = $1`,
		s.ID(), s.Title(), s.Description(), string(s.SpaceType()), s.Amenities(),
		s.Rates().HourlyCents(), s.Rates().DailyCents(), s.Rates().MonthlyCents(),
		s.IsAvailable(), s.Moderation().String(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update space", err)
	}
	if cmd.RowsAffected() == 0 {
		return infra.WrapRepoErr("space not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	row := r.db.QueryRow(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE id = $1`, id)
	s, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("space not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find space by ID", err)
	}
	return s, nil
}

func scanSpace(row pgx.Row) (*space.Space, error) {
	var (
		id, ownerID              uuid.UUID
		title, description       string
		spaceType                string
		amenities                []string
		lat, lon                 float64
		hourlyCents              int64
		dailyCents, monthlyCents *int64
		isAvailable              bool
		moderation               string
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(
		&id, &ownerID, &title, &description, &spaceType, &amenities, &lat, &lon,
		&hourlyCents, &dailyCents, &monthlyCents,
		&isAvailable, &moderation, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	coord, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	rates, err := space.NewRateCard(hourlyCents, dailyCents, monthlyCents)
	if err != nil {
		return nil, err
	}

	return space.ReconstructSpace(
		id, ownerID, title, description,
		space.Type(spaceType), amenities, coord, rates,
		isAvailable, space.ModerationStatus(moderation),
		createdAt, updatedAt,
	), nil
}
