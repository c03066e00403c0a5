package response

import (
	"time"

	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	SpaceID         uuid.UUID `json:"spaceId"`
	SpaceTitle      string    `json:"spaceTitle"`
	RenterID        uuid.UUID `json:"renterId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		SpaceID:         rm.SpaceID,
		SpaceTitle:      rm.SpaceTitle,
		RenterID:        rm.RenterID,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Status:          rm.Status,
		PaymentStatus:   rm.PaymentStatus,
		TotalPriceCents: rm.TotalPriceCents,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}
