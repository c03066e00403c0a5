package commands

import (
	"context"
	"log/slog"

	"parkspot/internal/domain/space"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/pkg/geo"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateSpaceInput struct {
	Title              string
	Description        string
	SpaceType          string
	Amenities          []string
	Latitude           float64
	Longitude          float64
	PricePerHourCents  int64
	PricePerDayCents   *int64
	PricePerMonthCents *int64
}

type UpdateSpaceInput struct {
	Title              string
	Description        string
	SpaceType          string
	Amenities          []string
	PricePerHourCents  int64
	PricePerDayCents   *int64
	PricePerMonthCents *int64
	// nil leaves the stored availability untouched.
	IsAvailable *bool
}

type SpaceCommands interface {
	CreateSpace(ctx context.Context, input CreateSpaceInput, ownerID uuid.UUID) (*queries.SpaceView, error)
	UpdateSpace(ctx context.Context, spaceID uuid.UUID, input UpdateSpaceInput, actorID uuid.UUID) (*queries.SpaceView, error)
	SetModeration(ctx context.Context, spaceID uuid.UUID, status string) (*queries.SpaceView, error)
}

type spaceUseCaseImpl struct {
	spaceRepo SpaceRepository
	cache     SpaceCacheInvalidator
	clock     clock.Clock
}

func NewSpaceUseCase(spaceRepo SpaceRepository, cache SpaceCacheInvalidator, clock clock.Clock) SpaceCommands {
	return &spaceUseCaseImpl{spaceRepo: spaceRepo, cache: cache, clock: clock}
}

func (u *spaceUseCaseImpl) CreateSpace(ctx context.Context, input CreateSpaceInput, ownerID uuid.UUID) (*queries.SpaceView, error) {
	location, err := geo.NewCoordinate(input.Latitude, input.Longitude)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCoordinates)
	}
	rates, err := space.NewRateCard(input.PricePerHourCents, input.PricePerDayCents, input.PricePerMonthCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRates)
	}

	sp, err := space.NewSpace(ownerID, input.Title, input.Description,
		space.Type(input.SpaceType), input.Amenities, location, rates, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSpaceInput)
	}

	if err := u.spaceRepo.Create(ctx, sp); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return newSpaceView(sp), nil
}

func (u *spaceUseCaseImpl) UpdateSpace(ctx context.Context, spaceID uuid.UUID, input UpdateSpaceInput, actorID uuid.UUID) (*queries.SpaceView, error) {
	sp, err := u.findSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !sp.IsOwnedBy(actorID) {
		return nil, errs.ErrForbidden
	}

	rates, err := space.NewRateCard(input.PricePerHourCents, input.PricePerDayCents, input.PricePerMonthCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRates)
	}
	now := u.clock.Now()
	if err := sp.UpdateDetails(input.Title, input.Description, space.Type(input.SpaceType), input.Amenities, now); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSpaceInput)
	}
	sp.UpdateRates(rates, now)
	if input.IsAvailable != nil {
		sp.SetAvailability(*input.IsAvailable, now)
	}

	return u.persistAndInvalidate(ctx, sp)
}

// SetModeration is reachable only through the moderator-gated route.
func (u *spaceUseCaseImpl) SetModeration(ctx context.Context, spaceID uuid.UUID, status string) (*queries.SpaceView, error) {
	sp, err := u.findSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if err := sp.SetModeration(space.ModerationStatus(status), u.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidSpaceInput)
	}
	return u.persistAndInvalidate(ctx, sp)
}

func (u *spaceUseCaseImpl) findSpace(ctx context.Context, spaceID uuid.UUID) (*space.Space, error) {
	sp, err := u.spaceRepo.FindByID(ctx, spaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return sp, nil
}

func (u *spaceUseCaseImpl) persistAndInvalidate(ctx context.Context, sp *space.Space) (*queries.SpaceView, error) {
	if err := u.spaceRepo.Update(ctx, sp); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSpaceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := u.cache.InvalidateSpace(ctx, sp.ID()); err != nil {
		slog.Warn("failed to invalidate space cache", "space_id", sp.ID(), "error", err)
	}
	return newSpaceView(sp), nil
}

func newSpaceView(sp *space.Space) *queries.SpaceView {
	return &queries.SpaceView{
		ID:                 sp.ID(),
		OwnerID:            sp.OwnerID(),
		Title:              sp.Title(),
		Description:        sp.Description(),
		SpaceType:          string(sp.SpaceType()),
		Amenities:          sp.Amenities(),
		Latitude:           sp.Location().Latitude,
		Longitude:          sp.Location().Longitude,
		PricePerHourCents:  sp.Rates().HourlyCents(),
		PricePerDayCents:   sp.Rates().DailyCents(),
		PricePerMonthCents: sp.Rates().MonthlyCents(),
		IsAvailable:        sp.IsAvailable(),
		ModerationStatus:   sp.Moderation().String(),
		CreatedAt:          sp.CreatedAt(),
		UpdatedAt:          sp.UpdatedAt(),
	}
}
