package types

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidTripParameters = errors.New("invalid trip parameters")
	ErrGenerationFailed      = errors.New("itinerary generation failed")
)
