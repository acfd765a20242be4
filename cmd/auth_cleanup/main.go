package main

import (
	"context"
	"log"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/repository"
)

// Purges refresh tokens that are expired or were revoked more than 30 days
// ago, and blacklist entries whose access tokens have expired. Meant to run
// from cron; the API never depends on it for correctness.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	refreshRepo := repository.NewRefreshTokenRepository(db)
	refreshRows, err := refreshRepo.DeleteExpired(ctx, now, now.AddDate(0, 0, -30))
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	blacklistRepo := repository.NewTokenBlacklistRepository(db)
	blacklistRows, err := blacklistRepo.DeleteExpired(ctx, now)
	if err != nil {
		log.Fatalf("cleanup token_blacklist failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d token_blacklist=%d", refreshRows, blacklistRows)
}
