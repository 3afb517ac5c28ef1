package admin

import (
	"context"
	"time"

	"github.com/faa35/UHFC/internal/domain"
)

// BookingRepository defines the storage the admin module needs
type BookingRepository interface {
	ListActive(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// FeedPublisher pushes change events to live calendar subscribers
type FeedPublisher interface {
	Broadcast(table, action string, start time.Time)
}
