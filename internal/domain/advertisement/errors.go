package advertisement

import "errors"

var (
	ErrAdvertisementNotFound = errors.New("advertisement not found")
	ErrUnresolvableLanding   = errors.New("advertisement has no landing destination")
	ErrInvalidTimeWindow     = errors.New("end_time must not be before start_time")
)
