package domain

import (
	"errors"
	"time"
)

// ErrStatusTerminal is returned by storage when a status update targets a
// row already in CANCELLED. No transition leaves CANCELLED.
var ErrStatusTerminal = errors.New("booking status is terminal")

type BookingStatus string

const (
	BookingPendingCall BookingStatus = "PENDING_CALL"
	BookingConfirmed   BookingStatus = "CONFIRMED"
	BookingCancelled   BookingStatus = "CANCELLED"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = time.Hour

// The facility opens at 06:00 and the last slot starts at 23:00. Bookings
// and the schedule grid share these bounds.
const (
	OpeningHour = 6
	HoursPerDay = 18
)

// Active reports whether the booking still occupies its slot.
// CANCELLED is terminal; everything else counts as occupying.
func (s BookingStatus) Active() bool { return s != BookingCancelled }

type Booking struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id" validate:"required"`
	StartTime   time.Time     `json:"start_time" validate:"required"`
	EndTime     time.Time     `json:"end_time" validate:"required"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}
