package database

import (
	"fmt"

	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/utils"
	"gorm.io/gorm"
)

// Migrate membuat schema (postgres) lalu menjalankan AutoMigrate untuk
// stations dan reservations. stations harus dibuat lebih dulu karena
// reservations.uiccode mereferensikannya.
func Migrate(db *gorm.DB, schemaName string) error {
	if schemaName != "" && db.Dialector.Name() == "postgres" {
		stmt := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", schemaName)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create schema %s: %w", schemaName, err)
		}
		utils.InfoLogger.Printf("Schema %s ready", schemaName)
	}

	if err := db.AutoMigrate(&models.Station{}, &models.Reservation{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, table := range []interface{}{&models.Station{}, &models.Reservation{}} {
		if !db.Migrator().HasTable(table) {
			return fmt.Errorf("table for %T missing after migrate", table)
		}
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
