package database

import (
	"log"
	"strings"

	"github.com/faa35/UHFC/internal/repository"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate brings the schema up to date, including the partial unique index
// that is the real arbiter of double-booking.
func Migrate(db *gorm.DB) error {
	return repository.AutoMigrate(db)
}
