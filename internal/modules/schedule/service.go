package schedule

import (
	"context"
	"time"

	"github.com/faa35/UHFC/internal/domain"
	"github.com/faa35/UHFC/internal/pkg/week"
)

// AvailabilityRepository fetches the non-cancelled bookings of one week.
type AvailabilityRepository interface {
	ForWeek(ctx context.Context, weekStart time.Time) ([]domain.Booking, error)
}

type Cell struct {
	Day       int       `json:"day"`
	Hour      int       `json:"hour"`
	Start     time.Time `json:"start"`
	State     SlotState `json:"state"`
	BookingID string    `json:"booking_id,omitempty"`
}

type WeekGrid struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Cells     []Cell    `json:"cells"`
}

type Service struct {
	bookings AvailabilityRepository
}

func NewService(bookings AvailabilityRepository) *Service {
	return &Service{bookings: bookings}
}

// Grid builds the 7-day hour grid for the week containing from. The requested
// week is clamped to the allowed navigation range before fetching.
func (s *Service) Grid(ctx context.Context, from, now time.Time) (*WeekGrid, error) {
	weekStart := week.Clamp(from, now)

	bookings, err := s.bookings.ForWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	grid := &WeekGrid{
		WeekStart: weekStart,
		WeekEnd:   week.End(weekStart),
		Cells:     make([]Cell, 0, week.Days*HoursPerDay),
	}

	for day := 0; day < week.Days; day++ {
		for h := 0; h < HoursPerDay; h++ {
			hour := OpeningHour + h
			state, match := SlotStateAt(bookings, weekStart, day, hour, now)
			cell := Cell{
				Day:   day,
				Hour:  hour,
				Start: SlotStart(weekStart, day, hour),
				State: state,
			}
			if match != nil {
				cell.BookingID = match.ID
			}
			grid.Cells = append(grid.Cells, cell)
		}
	}

	return grid, nil
}
