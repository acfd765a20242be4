package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/middleware"
	"taskhub/internal/modules/auth"
	"taskhub/internal/modules/health"
	"taskhub/internal/modules/project"
	"taskhub/internal/modules/task"
	jwtsvc "taskhub/internal/pkg/jwt"
	"taskhub/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	blacklistRepo := repository.NewTokenBlacklistRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	signer := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, refreshRepo, blacklistRepo, signer, cfg.PasswordCost, cfg.RefreshTTL)
	authHandler := auth.NewHandler(authService)

	projectService := project.NewService(projectRepo)
	projectHandler := project.NewHandler(projectService)

	taskService := task.NewService(taskRepo, projectRepo)
	taskHandler := task.NewHandler(taskService)

	healthHandler := health.NewHandler(db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	v1 := r.Group("/api/v1")
	{
		// public
		healthHandler.RegisterRoutes(v1)
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(signer, blacklistRepo, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			projectHandler.RegisterRoutes(protected)
			taskHandler.RegisterRoutes(protected)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("api listening addr=%s env=%s", addr, cfg.AppEnv)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
