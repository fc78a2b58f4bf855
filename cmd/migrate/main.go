package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pageza/mealplan/backend/config"
	"github.com/pageza/mealplan/backend/internal/database"
	"github.com/pageza/mealplan/backend/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	logger.Info("migrations applied", "driver", cfg.DBDriver)
}
