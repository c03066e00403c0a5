package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type SpaceView struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            uuid.UUID `json:"owner_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	SpaceType          string    `json:"space_type"`
	Amenities          []string  `json:"amenities"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	PricePerHourCents  int64     `json:"price_per_hour_cents"`
	PricePerDayCents   *int64    `json:"price_per_day_cents,omitempty"`
	PricePerMonthCents *int64    `json:"price_per_month_cents,omitempty"`
	IsAvailable        bool      `json:"is_available"`
	ModerationStatus   string    `json:"moderation_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SpaceSearchItem is a SpaceView ranked by a search; DistanceMiles is set
// only when the query had a center coordinate.
type SpaceSearchItem struct {
	SpaceView
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

type SearchResult struct {
	Items []*SpaceSearchItem `json:"items"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type BookingView struct {
	ID              uuid.UUID `json:"id"`
	SpaceID         uuid.UUID `json:"space_id"`
	SpaceTitle      string    `json:"space_title"`
	RenterID        uuid.UUID `json:"renter_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type QuoteView struct {
	SpaceID         uuid.UUID `json:"space_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	BilledHours     int64     `json:"billed_hours"`
	TotalPriceCents int64     `json:"total_price_cents"`
}

// SpaceFilters are the store-level predicates of a search, built once at
// the boundary from validated input.
type SpaceFilters struct {
	MinPriceCents *int64
	MaxPriceCents *int64
	SpaceType     *string
	Keyword       *string
	Amenities     []string
}

type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortPrice     SortKey = "price"
	SortDistance  SortKey = "distance"
)

func (s SortKey) IsValid() bool {
	switch s {
	case SortCreatedAt, SortPrice, SortDistance:
		return true
	default:
		return false
	}
}
