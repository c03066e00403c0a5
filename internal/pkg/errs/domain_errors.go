package errs

import "errors"

// Sentinel errors shared across usecase layers
var (
	// Space errors
	ErrSpaceNotFound      = errors.New("space not found")
	ErrSpaceUnavailable   = errors.New("space is not available for booking")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrInvalidRates       = errors.New("invalid rate configuration")
	ErrInvalidSpaceInput  = errors.New("invalid space input")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingConflict   = errors.New("time window conflicts with an active booking")
	ErrInvalidTimeWindow = errors.New("invalid time window")
	ErrIllegalTransition = errors.New("status transition not permitted")
	ErrForbidden         = errors.New("actor not permitted to perform this action")

	// Search errors
	ErrInvalidSearchQuery = errors.New("invalid search query")

	// Upstream collaborators
	ErrPaymentFailed      = errors.New("payment gateway failure")
	ErrNotificationFailed = errors.New("notification delivery failure")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
