package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrInvalidEventID       = errors.New("invalid event id")
	ErrOptionNotFound       = errors.New("option not found for this event")
	ErrNoOptions            = errors.New("event has no options")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrEventClosed          = errors.New("event poll is closed")
	ErrEventNotClosed       = errors.New("event poll is not closed")
	ErrTurfNotFound         = errors.New("turf not found")
	ErrBindingNotFound      = errors.New("no event bound to this phone number")
	ErrDeliveryFailure      = errors.New("message delivery failed")
)
