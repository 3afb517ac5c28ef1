package schedule

import (
	"time"

	"github.com/faa35/UHFC/internal/domain"
	"github.com/faa35/UHFC/internal/pkg/week"
)

// Grid dimensions, shared with booking validation.
const (
	OpeningHour = domain.OpeningHour
	HoursPerDay = domain.HoursPerDay
)

type SlotState string

const (
	SlotFree      SlotState = "free"
	SlotPast      SlotState = "past"
	SlotPending   SlotState = "pending"
	SlotConfirmed SlotState = "confirmed"
)

// Bookable reports whether a user can request the slot.
func (s SlotState) Bookable() bool { return s == SlotFree }

// SlotStart returns the instant a (day, hour) cell begins, relative to weekStart.
func SlotStart(weekStart time.Time, day, hour int) time.Time {
	d := week.AddDays(weekStart, day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
}

// MatchSlot returns the first booking in list order whose start falls on the
// given cell. Duplicates can only exist through a race the database already
// lost; the first one in fetch order wins.
func MatchSlot(bookings []domain.Booking, weekStart time.Time, day, hour int) *domain.Booking {
	start := SlotStart(weekStart, day, hour)
	for i := range bookings {
		bs := bookings[i].StartTime.In(start.Location())
		if bs.Year() == start.Year() && bs.YearDay() == start.YearDay() && bs.Hour() == hour {
			return &bookings[i]
		}
	}
	return nil
}

// SlotStateAt derives the render state of one cell from the fetched bookings.
func SlotStateAt(bookings []domain.Booking, weekStart time.Time, day, hour int, now time.Time) (SlotState, *domain.Booking) {
	if b := MatchSlot(bookings, weekStart, day, hour); b != nil {
		if b.Status == domain.BookingConfirmed {
			return SlotConfirmed, b
		}
		return SlotPending, b
	}
	if SlotStart(weekStart, day, hour).Before(now) {
		return SlotPast, nil
	}
	return SlotFree, nil
}
