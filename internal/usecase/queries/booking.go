package queries

import (
	"context"

	"parkspot/internal/infra"
	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*BookingView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, limit, offset int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	repo     BookingViewRepo
	viewRepo SpaceViewRepo
}

func NewBookingQueries(repo BookingViewRepo, viewRepo SpaceViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo, viewRepo: viewRepo}
}

// GetByID restricts visibility to the renter and the space owner.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.RenterID != actorID {
		sp, err := q.viewRepo.FindByID(ctx, view.SpaceID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if sp.OwnerID != actorID {
			return nil, errs.ErrForbidden
		}
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID, page, limit int) ([]*BookingView, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	views, err := q.repo.ListByRenter(ctx, renterID, limit, (page-1)*limit)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
