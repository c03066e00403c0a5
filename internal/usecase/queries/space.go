package queries

import (
	"context"
	"log/slog"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/space"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

type SpaceQueries interface {
	Search(ctx context.Context, query SearchSpacesQuery) (*SearchResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpaceView, error)
	Quote(ctx context.Context, spaceID uuid.UUID, start, end time.Time) (*QuoteView, error)
}

type SpaceViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpaceView, error)
}

// SpaceEntityRepo loads the domain entity when the query needs domain logic
// (quoting uses the rate card, not the flattened view).
type SpaceEntityRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
}

type SpaceCacheStore interface {
	GetSpace(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	SetSpace(ctx context.Context, view *SpaceView) error
}

type spaceQueriesImpl struct {
	store      SpaceSearchStore
	viewRepo   SpaceViewRepo
	entityRepo SpaceEntityRepo
	cache      SpaceCacheStore
	calculator booking.PriceCalculator
}

func NewSpaceQueries(
	store SpaceSearchStore,
	viewRepo SpaceViewRepo,
	entityRepo SpaceEntityRepo,
	cache SpaceCacheStore,
	calculator booking.PriceCalculator,
) SpaceQueries {
	return &spaceQueriesImpl{
		store:      store,
		viewRepo:   viewRepo,
		entityRepo: entityRepo,
		cache:      cache,
		calculator: calculator,
	}
}

// GetByID reads through the cache. Cache failures degrade to the store, they
// never fail the query.
func (q *spaceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error) {
	cached, err := q.cache.GetSpace(ctx, id)
	if err != nil {
		slog.Warn("space cache read failed", "space_id", id, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	view, err := q.viewRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := q.cache.SetSpace(ctx, view); err != nil {
		slog.Warn("space cache write failed", "space_id", id, "error", err)
	}
	return view, nil
}

func (q *spaceQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpaceView, error) {
	views, err := q.viewRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// Quote prices a hypothetical booking without creating anything. The same
// calculator prices real bookings, so a quote never drifts from the charge.
func (q *spaceQueriesImpl) Quote(ctx context.Context, spaceID uuid.UUID, start, end time.Time) (*QuoteView, error) {
	window, err := booking.NewTimeWindow(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeWindow)
	}

	sp, err := q.entityRepo.FindByID(ctx, spaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !sp.IsBookable() {
		return nil, errs.ErrSpaceUnavailable
	}

	price := q.calculator.Calculate(sp.Rates(), window)
	return &QuoteView{
		SpaceID:         spaceID,
		StartTime:       window.Start(),
		EndTime:         window.End(),
		BilledHours:     window.BilledHours(),
		TotalPriceCents: price.Cents(),
	}, nil
}
