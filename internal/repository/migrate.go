package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema for every repository-owned table and the
// partial unique index that allows at most one non-cancelled booking per
// start instant. The index, not application code, is the source of truth for
// double-booking.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&profileModel{},
		&bookingModel{},
		&refreshTokenModel{},
	); err != nil {
		return err
	}

	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_start
ON bookings (start_time)
WHERE status <> 'CANCELLED'
`).Error
}
