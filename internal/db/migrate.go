// Package db handles schema migrations and seed data.
package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/models"
)

// Migrate applies the GORM auto-migrations for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Template{},
		&models.GeneratedDocument{},
		&models.BrandingProfile{},
	); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
