package response

import (
	"time"

	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceResponse struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            uuid.UUID `json:"ownerId"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	SpaceType          string    `json:"spaceType"`
	Amenities          []string  `json:"amenities"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	PricePerHourCents  int64     `json:"pricePerHourCents"`
	PricePerDayCents   *int64    `json:"pricePerDayCents,omitempty"`
	PricePerMonthCents *int64    `json:"pricePerMonthCents,omitempty"`
	IsAvailable        bool      `json:"isAvailable"`
	ModerationStatus   string    `json:"moderationStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type SpaceSearchItemResponse struct {
	SpaceResponse
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
}

type SearchSpacesResponse struct {
	Items []*SpaceSearchItemResponse `json:"items"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
}

type QuoteResponse struct {
	SpaceID         uuid.UUID `json:"spaceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	BilledHours     int64     `json:"billedHours"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	TotalPrice      string    `json:"totalPrice"`
}

func FromSpaceView(rm *queries.SpaceView) *SpaceResponse {
	return &SpaceResponse{
		ID:                 rm.ID,
		OwnerID:            rm.OwnerID,
		Title:              rm.Title,
		Description:        rm.Description,
		SpaceType:          rm.SpaceType,
		Amenities:          rm.Amenities,
		Latitude:           rm.Latitude,
		Longitude:          rm.Longitude,
		PricePerHourCents:  rm.PricePerHourCents,
		PricePerDayCents:   rm.PricePerDayCents,
		PricePerMonthCents: rm.PricePerMonthCents,
		IsAvailable:        rm.IsAvailable,
		ModerationStatus:   rm.ModerationStatus,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromSearchResult(rm *queries.SearchResult) *SearchSpacesResponse {
	items := make([]*SpaceSearchItemResponse, len(rm.Items))
	for i, item := range rm.Items {
		items[i] = &SpaceSearchItemResponse{
			SpaceResponse: *FromSpaceView(&item.SpaceView),
			DistanceMiles: item.DistanceMiles,
		}
	}
	return &SearchSpacesResponse{Items: items, Page: rm.Page, Limit: rm.Limit}
}

func FromQuoteView(rm *queries.QuoteView, formattedPrice string) *QuoteResponse {
	return &QuoteResponse{
		SpaceID:         rm.SpaceID,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		BilledHours:     rm.BilledHours,
		TotalPriceCents: rm.TotalPriceCents,
		TotalPrice:      formattedPrice,
	}
}
