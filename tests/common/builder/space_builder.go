package builder

import (
	"time"

	"parkspot/internal/domain/space"
	"parkspot/internal/pkg/geo"

	"github.com/google/uuid"
)

type SpaceBuilder struct {
	ownerID      uuid.UUID
	title        string
	description  string
	spaceType    space.Type
	amenities    []string
	latitude     float64
	longitude    float64
	hourlyCents  int64
	dailyCents   *int64
	monthlyCents *int64
	now          time.Time
}

func NewSpaceBuilder() *SpaceBuilder {
	return &SpaceBuilder{
		ownerID:     uuid.New(),
		title:       "Covered driveway near downtown",
		description: "Fits one mid-size car",
		spaceType:   space.TypeDriveway,
		amenities:   []string{"covered", "ev_charging"},
		latitude:    40.7128,
		longitude:   -74.0060,
		hourlyCents: 1000,
		now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *SpaceBuilder) With(mutate func(*SpaceBuilder)) *SpaceBuilder {
	mutate(b)
	return b
}

func (b *SpaceBuilder) WithOwnerID(id uuid.UUID) *SpaceBuilder {
	b.ownerID = id
	return b
}

func (b *SpaceBuilder) WithTitle(title string) *SpaceBuilder {
	b.title = title
	return b
}

func (b *SpaceBuilder) WithSpaceType(t space.Type) *SpaceBuilder {
	b.spaceType = t
	return b
}

func (b *SpaceBuilder) WithLocation(lat, lon float64) *SpaceBuilder {
	b.latitude = lat
	b.longitude = lon
	return b
}

func (b *SpaceBuilder) WithHourlyCents(cents int64) *SpaceBuilder {
	b.hourlyCents = cents
	return b
}

func (b *SpaceBuilder) WithDailyCents(cents int64) *SpaceBuilder {
	b.dailyCents = &cents
	return b
}

func (b *SpaceBuilder) WithMonthlyCents(cents int64) *SpaceBuilder {
	b.monthlyCents = &cents
	return b
}

func (b *SpaceBuilder) BuildRateCard() (space.RateCard, error) {
	return space.NewRateCard(b.hourlyCents, b.dailyCents, b.monthlyCents)
}

func (b *SpaceBuilder) BuildDomain() (*space.Space, error) {
	coord, err := geo.NewCoordinate(b.latitude, b.longitude)
	if err != nil {
		return nil, err
	}
	rates, err := b.BuildRateCard()
	if err != nil {
		return nil, err
	}
	return space.NewSpace(b.ownerID, b.title, b.description, b.spaceType, b.amenities, coord, rates, b.now)
}
