package repositories

import (
	"errors"

	"gorm.io/gorm"

	"shipment-tracker/errs"
	"shipment-tracker/models"
)

// ShipmentRepository is the repo for accessing shipments and their tracking
// events. Events always come back ordered newest first.
type ShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new repository with DB dependency
func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func withOrderedEvents(db *gorm.DB) *gorm.DB {
	return db.Preload("Events", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("timestamp DESC")
	})
}

// ListByUser returns the shipments owned by a user, newest first.
func (r *ShipmentRepository) ListByUser(userID string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := withOrderedEvents(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&shipments).Error
	return shipments, err
}

// FindByID returns a shipment by id, unscoped by owner.
func (r *ShipmentRepository) FindByID(id string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := withOrderedEvents(r.db).Where("id = ?", id).First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// FindByIDForUser returns a shipment by id only when it belongs to the given
// user. A shipment owned by someone else reports the same errs.ErrNotFound
// as a missing one.
func (r *ShipmentRepository) FindByIDForUser(id, userID string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := withOrderedEvents(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// FindByTrackingNumber returns a shipment by its public tracking number.
func (r *ShipmentRepository) FindByTrackingNumber(trackingNumber string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := withOrderedEvents(r.db).
		Where("tracking_number = ?", trackingNumber).
		First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// Create inserts a shipment together with any events attached to it.
func (r *ShipmentRepository) Create(shipment *models.Shipment) error {
	return r.db.Create(shipment).Error
}

// Save persists field changes of an existing shipment. Attached events are
// not written here; event replacement goes through ReplaceEvents.
func (r *ShipmentRepository) Save(shipment *models.Shipment) error {
	return r.db.Omit("Events").Save(shipment).Error
}

// ReplaceEvents swaps the full event set of a shipment: delete all, insert
// the given ones. Both statements run in one transaction so no reader sees
// the shipment with zero events mid-swap.
func (r *ShipmentRepository) ReplaceEvents(shipmentID string, events []models.TrackingEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&models.TrackingEvent{}).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		for i := range events {
			events[i].ShipmentID = shipmentID
		}
		return tx.Create(&events).Error
	})
}

// Delete removes a shipment and its events.
func (r *ShipmentRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", id).Delete(&models.TrackingEvent{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Shipment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

// MissingCoordinates returns shipments that have address text but no
// resolved coordinates for at least one of origin, destination, or current
// location. Used by the geocode worker.
func (r *ShipmentRepository) MissingCoordinates() ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.
		Where("(origin_latitude IS NULL AND (origin <> '' OR origin_city <> ''))").
		Or("(destination_latitude IS NULL AND (destination <> '' OR destination_city <> ''))").
		Or("(current_latitude IS NULL AND current_location <> '')").
		Find(&shipments).Error
	return shipments, err
}

// SaveCoordinates persists only the coordinate columns of a shipment.
func (r *ShipmentRepository) SaveCoordinates(shipment *models.Shipment) error {
	return r.db.Model(shipment).Select(
		"origin_latitude", "origin_longitude",
		"destination_latitude", "destination_longitude",
		"current_latitude", "current_longitude",
	).Updates(shipment).Error
}
