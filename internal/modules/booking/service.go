package booking

import (
	"context"
	"errors"
	"time"

	"github.com/faa35/UHFC/internal/domain"
	"github.com/faa35/UHFC/internal/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const bookingsTable = "bookings"

type Service struct {
	bookings BookingRepository
	profiles ProfileReader
	feed     FeedPublisher
}

func NewService(bookings BookingRepository, profiles ProfileReader, feed FeedPublisher) *Service {
	return &Service{
		bookings: bookings,
		profiles: profiles,
		feed:     feed,
	}
}

// RequestSlot creates a PENDING_CALL booking for one hour starting at start.
// The client never re-checks the slot first: the partial unique index decides
// the race, and a losing writer gets ErrSlotTaken.
func (s *Service) RequestSlot(ctx context.Context, userID string, start time.Time) (*domain.Booking, error) {
	if start.IsZero() || !onTheHour(start) || !withinOpeningHours(start) {
		return nil, ErrValidation
	}
	if !start.After(time.Now()) {
		return nil, ErrValidation
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Phone == "" {
		return nil, ErrPhoneRequired
	}

	b := &domain.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: start,
		EndTime:   start.Add(domain.SlotDuration),
		Status:    domain.BookingPendingCall,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			metrics.IncBookingConflict()
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	metrics.IncBookingCreated(string(b.Status))
	if s.feed != nil {
		s.feed.Broadcast(bookingsTable, "INSERT", b.StartTime)
	}

	return b, nil
}

// CancelOwn marks the caller's booking CANCELLED. Rows are never deleted.
func (s *Service) CancelOwn(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.UserID != userID {
		return nil, ErrForbidden
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

	return s.bookings.GetByID(ctx, bookingID)
}

// ListMine returns the caller's non-cancelled bookings, soonest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListActiveByUser(ctx, userID)
}

func onTheHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func withinOpeningHours(t time.Time) bool {
	h := t.Hour()
	return h >= domain.OpeningHour && h < domain.OpeningHour+domain.HoursPerDay
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
