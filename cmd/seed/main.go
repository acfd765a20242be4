package main

import (
	"log"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM tasks")
	db.Exec("DELETE FROM projects")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM token_blacklist")
	db.Exec("DELETE FROM users")

	log.Println("Creating demo user...")
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.PasswordCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}
	demo := domain.User{
		Email:        "demo@taskhub.dev",
		Name:         "Demo User",
		PasswordHash: string(hash),
	}
	if err := db.Create(&demo).Error; err != nil {
		log.Fatal("user create failed:", err)
	}

	log.Println("Creating projects...")
	website := domain.Project{
		Name:        "Website Redesign",
		Description: "Refresh the marketing site and move it to the new CMS",
		UserID:      demo.ID,
	}
	mobile := domain.Project{
		Name:        "Mobile App",
		Description: "MVP of the companion mobile application",
		UserID:      demo.ID,
	}
	db.Create(&website)
	db.Create(&mobile)

	log.Println("Creating tasks...")
	due := func(days int) *time.Time {
		t := time.Now().AddDate(0, 0, days)
		return &t
	}
	tasks := []domain.Task{
		{
			Title:       "Draft new landing page copy",
			Description: "Hero section plus the three feature blocks",
			Status:      domain.TaskStatusInProgress,
			Priority:    domain.TaskPriorityHigh,
			DueDate:     due(7),
			ProjectID:   website.ID,
			UserID:      demo.ID,
		},
		{
			Title:       "Migrate blog posts",
			Description: "Export from the old CMS and import into the new one",
			Status:      domain.TaskStatusPending,
			Priority:    domain.TaskPriorityMedium,
			DueDate:     due(14),
			ProjectID:   website.ID,
			UserID:      demo.ID,
		},
		{
			Title:       "Set up CI pipeline",
			Description: "Lint, test and build on every push",
			Status:      domain.TaskStatusDone,
			Priority:    domain.TaskPriorityUrgent,
			ProjectID:   mobile.ID,
			UserID:      demo.ID,
		},
		{
			Title:       "Design onboarding flow",
			Description: "Three screens, skip button on each",
			Status:      domain.TaskStatusPending,
			Priority:    domain.TaskPriorityLow,
			DueDate:     due(21),
			ProjectID:   mobile.ID,
			UserID:      demo.ID,
		},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			log.Fatal("task create failed:", err)
		}
	}

	log.Println("Seed completed!")
	log.Println("Demo account: demo@taskhub.dev / password123")
}
