package main

import (
	"log"

	"github.com/investflow-dev/investflow/db"
	"github.com/investflow-dev/investflow/internal/auth"
	"github.com/investflow-dev/investflow/internal/config"
	"github.com/investflow-dev/investflow/internal/handlers"
	"github.com/investflow-dev/investflow/internal/repository"
	"github.com/investflow-dev/investflow/internal/router"
	"github.com/investflow-dev/investflow/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedAdminAccount(cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	userRepo := repository.NewUserRepository(db.DB)
	investmentRepo := repository.NewInvestmentRepository(db.DB)

	authHandler := handlers.NewAuthHandler(service.NewAuthService(userRepo))
	investmentHandler := handlers.NewInvestmentHandler(service.NewInvestmentService(investmentRepo))
	userHandler := handlers.NewUserHandler(service.NewUserService(userRepo))

	r := router.NewRouter(authHandler, investmentHandler, userHandler)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
