package space

import (
	"errors"
	"strings"
	"time"

	"parkspot/internal/pkg/geo"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidSpaceType = errors.New("invalid space type")
)

type Space struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       string
	description string
	spaceType   Type
	amenities   []string
	location    geo.Coordinate
	rates       RateCard
	isAvailable bool
	moderation  ModerationStatus
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSpace(
	ownerID uuid.UUID,
	title, description string,
	spaceType Type,
	amenities []string,
	location geo.Coordinate,
	rates RateCard,
	now time.Time,
) (*Space, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !spaceType.IsValid() {
		return nil, ErrInvalidSpaceType
	}

	return &Space{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		description: strings.TrimSpace(description),
		spaceType:   spaceType,
		amenities:   normalizeAmenities(amenities),
		location:    location,
		rates:       rates,
		isAvailable: true,
		moderation:  ModerationPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructSpace(
	id, ownerID uuid.UUID,
	title, description string,
	spaceType Type,
	amenities []string,
	location geo.Coordinate,
	rates RateCard,
	isAvailable bool,
	moderation ModerationStatus,
	createdAt, updatedAt time.Time,
) *Space {
	return &Space{
		id:          id,
		ownerID:     ownerID,
		title:       title,
		description: description,
		spaceType:   spaceType,
		amenities:   amenities,
		location:    location,
		rates:       rates,
		isAvailable: isAvailable,
		moderation:  moderation,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// IsBookable reports whether the space may accept new bookings. The
// availability flag is flipped by an unrelated suspension process, so this
// is re-checked inside the booking transaction; already-confirmed bookings
// are never affected by a flip.
func (s *Space) IsBookable() bool {
	return s.isAvailable && s.moderation == ModerationApproved
}

func (s *Space) IsOwnedBy(userID uuid.UUID) bool {
	return s.ownerID == userID
}

func (s *Space) UpdateDetails(title, description string, spaceType Type, amenities []string, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if !spaceType.IsValid() {
		return ErrInvalidSpaceType
	}
	s.title = title
	s.description = strings.TrimSpace(description)
	s.spaceType = spaceType
	s.amenities = normalizeAmenities(amenities)
	s.updatedAt = now
	return nil
}

func (s *Space) UpdateRates(rates RateCard, now time.Time) {
	s.rates = rates
	s.updatedAt = now
}

func (s *Space) SetAvailability(available bool, now time.Time) {
	s.isAvailable = available
	s.updatedAt = now
}

func (s *Space) SetModeration(status ModerationStatus, now time.Time) error {
	if !status.IsValid() {
		return errors.New("invalid moderation status")
	}
	s.moderation = status
	s.updatedAt = now
	return nil
}

func (s *Space) ID() uuid.UUID                { return s.id }
func (s *Space) OwnerID() uuid.UUID           { return s.ownerID }
func (s *Space) Title() string                { return s.title }
func (s *Space) Description() string          { return s.description }
func (s *Space) SpaceType() Type              { return s.spaceType }
func (s *Space) Amenities() []string          { return s.amenities }
func (s *Space) Location() geo.Coordinate     { return s.location }
func (s *Space) Rates() RateCard              { return s.rates }
func (s *Space) IsAvailable() bool            { return s.isAvailable }
func (s *Space) Moderation() ModerationStatus { return s.moderation }
func (s *Space) CreatedAt() time.Time         { return s.createdAt }
func (s *Space) UpdatedAt() time.Time         { return s.updatedAt }

func normalizeAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
