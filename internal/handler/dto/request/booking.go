package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SpaceID   uuid.UUID `json:"space_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
