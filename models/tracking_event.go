package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackingEvent is a timestamped history entry attached to a shipment.
// Events have no identity across edits: an update replaces the whole set.
type TrackingEvent struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ShipmentID  string    `gorm:"type:uuid;not null;index" json:"shipment_id"`
	Status      string    `gorm:"size:100;not null" json:"status"`
	Description string    `json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *TrackingEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
