package booking

import (
	"context"
	"time"

	"github.com/faa35/UHFC/internal/domain"
)

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListActiveByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// ProfileReader looks up the requester's contact details
type ProfileReader interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

// FeedPublisher pushes change events to live calendar subscribers
type FeedPublisher interface {
	Broadcast(table, action string, start time.Time)
}
