package admin

import (
	"context"
	"testing"
	"time"

	"github.com/faa35/UHFC/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListActive(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockFeedPublisher struct {
	mock.Mock
}

func (m *MockFeedPublisher) Broadcast(table, action string, start time.Time) {
	m.Called(table, action, start)
}

func TestService_ListBookings_PendingFirstThenStart(t *testing.T) {
	base := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	fromRepo := []domain.Booking{
		{ID: "a", StartTime: base.Add(10 * time.Hour), Status: domain.BookingConfirmed},
		{ID: "b", StartTime: base.Add(9 * time.Hour), Status: domain.BookingPendingCall},
		{ID: "c", StartTime: base.Add(14 * time.Hour), Status: domain.BookingPendingCall},
		{ID: "d", StartTime: base.Add(8 * time.Hour), Status: domain.BookingConfirmed},
	}

	mockRepo := new(MockBookingRepository)
	mockRepo.On("ListActive", mock.Anything).Return(fromRepo, nil)

	service := NewService(mockRepo, nil)

	bookings, err := service.ListBookings(context.Background())

	assert.NoError(t, err)
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids)
}

func TestService_Confirm_Success(t *testing.T) {
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	pending := &domain.Booking{ID: "b-1", StartTime: start, Status: domain.BookingPendingCall}
	confirmed := &domain.Booking{ID: "b-1", StartTime: start, Status: domain.BookingConfirmed}

	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(pending, nil).Once()
	mockRepo.On("UpdateStatus", mock.Anything, "b-1", domain.BookingConfirmed).Return(nil)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(confirmed, nil).Once()

	mockFeed := new(MockFeedPublisher)
	mockFeed.On("Broadcast", "bookings", "UPDATE", start).Return()

	service := NewService(mockRepo, mockFeed)

	b, err := service.Confirm(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	mockFeed.AssertCalled(t, "Broadcast", "bookings", "UPDATE", start)
}

func TestService_Confirm_AlreadyConfirmed(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(&domain.Booking{
		ID:     "b-1",
		Status: domain.BookingConfirmed,
	}, nil)

	service := NewService(mockRepo, nil)

	_, err := service.Confirm(context.Background(), "b-1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Confirm_CancelledBooking(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(&domain.Booking{
		ID:     "b-1",
		Status: domain.BookingCancelled,
	}, nil)

	service := NewService(mockRepo, nil)

	_, err := service.Confirm(context.Background(), "b-1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Cancel_ConfirmedBooking(t *testing.T) {
	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	confirmed := &domain.Booking{ID: "b-1", StartTime: start, Status: domain.BookingConfirmed}
	cancelled := &domain.Booking{ID: "b-1", StartTime: start, Status: domain.BookingCancelled}

	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(confirmed, nil).Once()
	mockRepo.On("UpdateStatus", mock.Anything, "b-1", domain.BookingCancelled).Return(nil)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(cancelled, nil).Once()

	mockFeed := new(MockFeedPublisher)
	mockFeed.On("Broadcast", "bookings", "UPDATE", start).Return()

	service := NewService(mockRepo, mockFeed)

	b, err := service.Cancel(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(&domain.Booking{
		ID:     "b-1",
		Status: domain.BookingCancelled,
	}, nil)

	service := NewService(mockRepo, nil)

	_, err := service.Cancel(context.Background(), "b-1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Confirm_CancelledBetweenReadAndWrite(t *testing.T) {
	// Read sees PENDING_CALL, but another request cancels before the write
	// lands. The store refuses and the caller gets an invalid transition.
	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "b-1").Return(&domain.Booking{
		ID:     "b-1",
		Status: domain.BookingPendingCall,
	}, nil)
	mockRepo.On("UpdateStatus", mock.Anything, "b-1", domain.BookingConfirmed).
		Return(domain.ErrStatusTerminal)

	service := NewService(mockRepo, nil)

	_, err := service.Confirm(context.Background(), "b-1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Confirm_NotFound(t *testing.T) {
	mockRepo := new(MockBookingRepository)
	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockRepo, nil)

	_, err := service.Confirm(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}
