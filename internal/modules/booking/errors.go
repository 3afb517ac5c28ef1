package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrSlotTaken         = errors.New("slot already taken")
	ErrPhoneRequired     = errors.New("profile has no phone number")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
