// Package database opens the postgres connection and keeps the schema
// migrated.
package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shipment-tracker/models"
)

// Connect opens the gorm connection and migrates the users, shipments and
// tracking_events tables.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Shipment{}, &models.TrackingEvent{}); err != nil {
		return nil, err
	}

	return db, nil
}
