package migrations

import (
	"context"
	"errors"
	"fmt"

	"checklist_manager/internal/database"
	"checklist_manager/internal/models"
	"checklist_manager/internal/repository"
	"checklist_manager/internal/services"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and creates the default admin.
// Existing rows are never dropped.
func RunMigrations(ctx context.Context, db *gorm.DB, adminPassword string) error {
	log.Info("Running database migrations...")
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := createDefaultData(ctx, db, adminPassword); err != nil {
		log.Warnf("Failed to create default data: %v", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// createDefaultData creates the admin user on an empty users table.
func createDefaultData(ctx context.Context, db *gorm.DB, adminPassword string) error {
	userService := services.NewUserService(repository.NewUserRepository(db))

	existing, err := userService.GetUserByUsername(ctx, "admin")
	if err == nil && existing != nil {
		log.Info("Admin user already exists")
		return nil
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	admin := &models.User{
		Username:   "admin",
		Name:       "Administrator",
		Email:      "admin@localhost",
		Department: "Administration",
		Role:       string(models.RoleAdmin),
		IsActive:   true,
	}
	if err := userService.CreateUser(ctx, admin, adminPassword); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.WithField("user_id", admin.ID).Info("Admin user created")
	return nil
}
