package readstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parkspot/internal/infra"
	"parkspot/internal/pkg/geo"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SpaceReadStore struct {
	db *pgxpool.Pool
}

func NewSpaceReadStore(db *pgxpool.Pool) *SpaceReadStore {
	return &SpaceReadStore{db: db}
}

const spaceViewColumns = `id, owner_id, title, description, space_type, amenities, latitude, longitude,
	price_per_hour_cents, price_per_day_cents, price_per_month_cents,
	is_available, moderation_status, created_at, updated_at`

func (s *SpaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SpaceView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+spaceViewColumns+` FROM spaces WHERE id = $1`, id)
	v, err := scanSpaceView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("space not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find space by ID", err)
	}
	return v, nil
}

func (s *SpaceReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.SpaceView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+spaceViewColumns+` FROM spaces
		WHERE owner_id = $1
		ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces by owner", err)
	}
	defer rows.Close()
	return collectSpaceViews(rows)
}

// SearchWithinBox returns every bookable space whose coordinates fall inside
// the bounding box and that matches the filters. The box is a coarse
// pre-filter; callers apply the exact radius check themselves, so no ordering
// or paging happens here.
func (s *SpaceReadStore) SearchWithinBox(ctx context.Context, box geo.Box, filters queries.SpaceFilters) ([]*queries.SpaceView, error) {
	sql, args := buildSearchSQL(filters)
	sql += fmt.Sprintf(` AND latitude BETWEEN $%d AND $%d AND longitude BETWEEN $%d AND $%d`,
		len(args)+1, len(args)+2, len(args)+3, len(args)+4)
	args = append(args, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search spaces within box", err)
	}
	defer rows.Close()
	return collectSpaceViews(rows)
}

// SearchPage returns one page of bookable spaces matching the filters,
// ordered and paged in the store. Used for every sort except distance.
func (s *SpaceReadStore) SearchPage(ctx context.Context, filters queries.SpaceFilters, sort queries.SortKey, limit, offset int) ([]*queries.SpaceView, error) {
	sql, args := buildSearchSQL(filters)

	switch sort {
	case queries.SortPrice:
		sql += ` ORDER BY price_per_hour_cents, created_at DESC, id`
	default:
		sql += ` ORDER BY created_at DESC, id`
	}
	sql += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search spaces", err)
	}
	defer rows.Close()
	return collectSpaceViews(rows)
}

// buildSearchSQL assembles the shared WHERE clause: only available, approved
// spaces are ever surfaced by search.
func buildSearchSQL(filters queries.SpaceFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + spaceViewColumns + ` FROM spaces
		WHERE is_available AND moderation_status = 'APPROVED'`)

	var args []any
	arg := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if filters.MinPriceCents != nil {
		fmt.Fprintf(&sb, ` AND price_per_hour_cents >= $%d`, arg(*filters.MinPriceCents))
	}
	if filters.MaxPriceCents != nil {
		fmt.Fprintf(&sb, ` AND price_per_hour_cents <= $%d`, arg(*filters.MaxPriceCents))
	}
	if filters.SpaceType != nil {
		fmt.Fprintf(&sb, ` AND space_type = $%d`, arg(*filters.SpaceType))
	}
	if filters.Keyword != nil {
		n := arg("%" + *filters.Keyword + "%")
		fmt.Fprintf(&sb, ` AND (title ILIKE $%d OR description ILIKE $%d)`, n, n)
	}
	if len(filters.Amenities) > 0 {
		fmt.Fprintf(&sb, ` AND amenities @> $%d`, arg(filters.Amenities))
	}

	return sb.String(), args
}

func collectSpaceViews(rows pgx.Rows) ([]*queries.SpaceView, error) {
	var result []*queries.SpaceView
	for rows.Next() {
		v, err := scanSpaceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan space", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate spaces", err)
	}
	return result, nil
}

func scanSpaceView(row pgx.Row) (*queries.SpaceView, error) {
	var v queries.SpaceView
	if err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.SpaceType, &v.Amenities,
		&v.Latitude, &v.Longitude,
		&v.PricePerHourCents, &v.PricePerDayCents, &v.PricePerMonthCents,
		&v.IsAvailable, &v.ModerationStatus, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
