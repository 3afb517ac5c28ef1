package main

import (
	"context"
	"log"
	"os"

	"github.com/faa35/UHFC/internal/database"
	"github.com/faa35/UHFC/internal/repository"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokens := repository.NewRefreshTokenRepository(db)
	if err := tokens.DeleteExpired(context.Background()); err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Println("auth cleanup completed")
}
