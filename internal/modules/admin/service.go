package admin

import (
	"context"
	"errors"
	"sort"

	"github.com/faa35/UHFC/internal/domain"
	"github.com/faa35/UHFC/internal/metrics"

	"gorm.io/gorm"
)

const bookingsTable = "bookings"

type Service struct {
	bookings BookingRepository
	feed     FeedPublisher
}

func NewService(bookings BookingRepository, feed FeedPublisher) *Service {
	return &Service{bookings: bookings, feed: feed}
}

// ListBookings returns every non-cancelled booking, calls-to-make first:
// PENDING_CALL rows partition before CONFIRMED, each partition soonest first.
func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		ri, rj := statusRank(bookings[i].Status), statusRank(bookings[j].Status)
		if ri != rj {
			return ri < rj
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})

	return bookings, nil
}

// Confirm moves a PENDING_CALL booking to CONFIRMED.
func (s *Service) Confirm(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPendingCall {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingConfirmed); err != nil {
		if errors.Is(err, domain.ErrStatusTerminal) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.IncBookingConfirmed()
	if s.feed != nil {
		s.feed.Broadcast(bookingsTable, "UPDATE", b.StartTime)
	}

	return s.getBooking(ctx, bookingID)
}

// Cancel marks any active booking CANCELLED. The row stays; the slot frees up.
func (s *Service) Cancel(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.Active() {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
		if errors.Is(err, domain.ErrStatusTerminal) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.IncBookingCancelled()
	if s.feed != nil {
		s.feed.Broadcast(bookingsTable, "UPDATE", b.StartTime)
	}

	return s.getBooking(ctx, bookingID)
}

func (s *Service) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func statusRank(s domain.BookingStatus) int {
	if s == domain.BookingPendingCall {
		return 0
	}
	return 1
}
