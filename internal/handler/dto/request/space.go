package request

import (
	"parkspot/internal/usecase/commands"
)

// Latitude, longitude and the hourly rate use pointers so that zero is a
// legal value; binding only checks presence.
type CreateSpaceRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	SpaceType          string   `json:"space_type" binding:"required"`
	Amenities          []string `json:"amenities"`
	Latitude           *float64 `json:"latitude" binding:"required"`
	Longitude          *float64 `json:"longitude" binding:"required"`
	PricePerHourCents  *int64   `json:"price_per_hour_cents" binding:"required"`
	PricePerDayCents   *int64   `json:"price_per_day_cents,omitempty"`
	PricePerMonthCents *int64   `json:"price_per_month_cents,omitempty"`
}

func (r CreateSpaceRequest) ToInput() commands.CreateSpaceInput {
	return commands.CreateSpaceInput{
		Title:              r.Title,
		Description:        r.Description,
		SpaceType:          r.SpaceType,
		Amenities:          r.Amenities,
		Latitude:           *r.Latitude,
		Longitude:          *r.Longitude,
		PricePerHourCents:  *r.PricePerHourCents,
		PricePerDayCents:   r.PricePerDayCents,
		PricePerMonthCents: r.PricePerMonthCents,
	}
}

type UpdateSpaceRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	SpaceType          string   `json:"space_type" binding:"required"`
	Amenities          []string `json:"amenities"`
	PricePerHourCents  *int64   `json:"price_per_hour_cents" binding:"required"`
	PricePerDayCents   *int64   `json:"price_per_day_cents,omitempty"`
	PricePerMonthCents *int64   `json:"price_per_month_cents,omitempty"`
	IsAvailable        *bool    `json:"is_available,omitempty"`
}

func (r UpdateSpaceRequest) ToInput() commands.UpdateSpaceInput {
	return commands.UpdateSpaceInput{
		Title:              r.Title,
		Description:        r.Description,
		SpaceType:          r.SpaceType,
		Amenities:          r.Amenities,
		PricePerHourCents:  *r.PricePerHourCents,
		PricePerDayCents:   r.PricePerDayCents,
		PricePerMonthCents: r.PricePerMonthCents,
		IsAvailable:        r.IsAvailable,
	}
}

type ModerateSpaceRequest struct {
	Status string `json:"status" binding:"required"`
}
