package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shipment represents a row in the shipments table. The tracking number is
// the public lookup key; user_id is the optional owner.
type Shipment struct {
	ID             string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *string `gorm:"type:uuid;index" json:"user_id"`
	TrackingNumber string  `gorm:"size:100;not null;uniqueIndex" json:"tracking_number"`

	// Contact
	OrderReferenceNumber string `gorm:"size:100" json:"order_reference_number"`
	CustomerName         string `gorm:"size:100" json:"customer_name"`
	Email                string `gorm:"size:255" json:"email"`
	PhoneNumber          string `gorm:"size:50" json:"phone_number"`

	StatusDetails string `json:"status_details"`
	StatusColor   string `gorm:"size:50" json:"status_color"`

	// Origin address
	SenderName          string   `gorm:"size:100" json:"sender_name"`
	OriginStreetAddress string   `gorm:"size:255" json:"origin_street_address"`
	OriginCity          string   `gorm:"size:100" json:"origin_city"`
	OriginState         string   `gorm:"size:100" json:"origin_state"`
	OriginCountry       string   `gorm:"size:100" json:"origin_country"`
	OriginPostalCode    string   `gorm:"size:20" json:"origin_postal_code"`
	Origin              string   `gorm:"size:255" json:"origin"`
	OriginLatitude      *float64 `json:"origin_latitude"`
	OriginLongitude     *float64 `json:"origin_longitude"`

	// Destination address
	ReceiverName             string   `gorm:"size:100" json:"receiver_name"`
	DestinationStreetAddress string   `gorm:"size:255" json:"destination_street_address"`
	DestinationCity          string   `gorm:"size:100" json:"destination_city"`
	DestinationState         string   `gorm:"size:100" json:"destination_state"`
	DestinationCountry       string   `gorm:"size:100" json:"destination_country"`
	DestinationPostalCode    string   `gorm:"size:20" json:"destination_postal_code"`
	Destination              string   `gorm:"size:255" json:"destination"`
	DestinationLatitude      *float64 `json:"destination_latitude"`
	DestinationLongitude     *float64 `json:"destination_longitude"`

	// Package details
	Weight              string `gorm:"size:50" json:"weight"`
	Length              string `gorm:"size:50" json:"length"`
	Width               string `gorm:"size:50" json:"width"`
	Height              string `gorm:"size:50" json:"height"`
	PackageType         string `gorm:"size:50" json:"package_type"`
	ContentsDescription string `json:"contents_description"`
	DeclaredValue       string `gorm:"size:50" json:"declared_value"`

	// Shipping details
	ShippingMethod        string     `gorm:"size:100" json:"shipping_method"`
	TrackingProgress      string     `gorm:"size:50" json:"tracking_progress"`
	ShipmentStatus        string     `gorm:"size:100" json:"shipment_status"`
	CurrentLocation       string     `gorm:"size:255" json:"current_location"`
	CurrentLatitude       *float64   `json:"current_latitude"`
	CurrentLongitude      *float64   `json:"current_longitude"`
	Description           string     `json:"description"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	ShipmentDate          *time.Time `json:"shipment_date"`
	InsuranceDetails      string     `json:"insurance_details"`

	// Additional information
	SpecialInstructions string `json:"special_instructions"`
	ReturnInstructions  string `json:"return_instructions"`
	CustomerNotes       string `json:"customer_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Events []TrackingEvent `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"events"`
}

func (s *Shipment) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
