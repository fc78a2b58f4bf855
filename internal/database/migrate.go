package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/mealplan/backend/internal/logger"
	"github.com/pageza/mealplan/backend/internal/model"
)

// RunMigrations creates or updates every table the service owns
func RunMigrations(db *gorm.DB) error {
	logger.Info("running auto-migration", "dialect", db.Dialector.Name())

	if err := db.AutoMigrate(&model.FetchLog{}); err != nil {
		return fmt.Errorf("failed to migrate fetch log: %w", err)
	}
	return nil
}
