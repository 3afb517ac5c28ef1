package repository

import (
	"context"
	"time"

	"github.com/faa35/UHFC/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	UserID      string     `gorm:"column:user_id;index"`
	StartTime   time.Time  `gorm:"column:start_time;index"`
	EndTime     time.Time  `gorm:"column:end_time"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		UserID:      m.UserID,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		UserID:      b.UserID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ForWeek returns every booking whose start falls in [weekStart, weekStart+7d)
// and whose status is not CANCELLED.
func (r *BookingRepository) ForWeek(ctx context.Context, weekStart time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", weekStart, weekStart.AddDate(0, 0, 7)).
		Where("status <> ?", string(domain.BookingCancelled)).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListActive returns all non-cancelled bookings ordered by start time.
func (r *BookingRepository) ListActive(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status <> ?", string(domain.BookingCancelled)).
		Order("start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListActiveByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status <> ?", string(domain.BookingCancelled)).
		Order("start_time").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatus refuses to touch CANCELLED rows at the store level, so a
// racing cancel and confirm cannot resurrect a cancelled booking no matter
// what the services saw when they read.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":     string(status),
		"updated_at": now,
	}
	if status == domain.BookingCancelled {
		updates["cancelled_at"] = now
	}

	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Where("status <> ?", string(domain.BookingCancelled)).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&bookingModel{}).
			Where("id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return domain.ErrStatusTerminal
	}
	return nil
}
