package promotion

import "errors"

var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrInvalidTimeWindow = errors.New("end_time must not be before start_time")
)
