package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/faa35/UHFC/internal/database"
	"github.com/faa35/UHFC/internal/domain"
	"github.com/faa35/UHFC/internal/pkg/week"
	"github.com/faa35/UHFC/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Dev-only seeder: wipes the local database and fills it with an admin, a
// few users, and a spread of bookings across the current week.
func main() {
	db, err := database.Connect("uhfc.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM profiles")

	ctx := context.Background()
	profiles := repository.NewProfileRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating profiles...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        "admin@uhfc.local",
		PasswordHash: string(adminHash),
		FullName:     "Front Desk",
		Phone:        "+1 604 555 0100",
		Role:         domain.RoleAdmin,
	}
	if err := profiles.Create(ctx, admin); err != nil {
		log.Fatal("admin create failed:", err)
	}
	log.Println("Admin created: admin@uhfc.local / admin123")

	users := make([]*domain.Profile, 0, 3)
	for i, email := range []string{"maya@example.com", "louis@example.com", "priya@example.com"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := &domain.Profile{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			FullName:     fmt.Sprintf("Player %d", i+1),
			Phone:        fmt.Sprintf("+1 604 555 01%02d", i+10),
			Role:         domain.RoleUser,
		}
		if err := profiles.Create(ctx, u); err != nil {
			log.Fatal("user create failed:", err)
		}
		users = append(users, u)
	}

	log.Println("Creating bookings...")

	weekStart := week.StartOf(time.Now())
	seedSlots := []struct {
		day    int
		hour   int
		user   int
		status domain.BookingStatus
	}{
		{1, 9, 0, domain.BookingPendingCall},
		{1, 18, 1, domain.BookingConfirmed},
		{3, 7, 2, domain.BookingConfirmed},
		{4, 20, 0, domain.BookingPendingCall},
		{5, 12, 1, domain.BookingPendingCall},
	}
	for _, s := range seedSlots {
		d := week.AddDays(weekStart, s.day)
		start := time.Date(d.Year(), d.Month(), d.Day(), s.hour, 0, 0, 0, d.Location())
		b := &domain.Booking{
			ID:        uuid.NewString(),
			UserID:    users[s.user].ID,
			StartTime: start,
			EndTime:   start.Add(domain.SlotDuration),
			Status:    s.status,
		}
		if err := bookings.Create(ctx, b); err != nil {
			log.Fatal("booking create failed:", err)
		}
	}

	log.Printf("Seed complete: %d profiles, %d bookings", len(users)+1, len(seedSlots))
}
