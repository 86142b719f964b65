package handlers

import (
	"fmt"
	"time"

	"shipment-tracker/models"
	"shipment-tracker/tracking"
)

// EventPayload is one tracking event as submitted by a client.
type EventPayload struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Timestamp   string `json:"timestamp"`
}

// ShipmentPayload is the allow-listed set of shipment fields a client may
// submit. Unknown keys are dropped on decode; nothing is spread into the
// update blindly.
//
// Events is a pointer so the two cases stay distinguishable: an omitted
// events field leaves stored events untouched, an empty array deletes them.
type ShipmentPayload struct {
	TrackingNumber string `json:"trackingNumber" validate:"required"`

	OrderReferenceNumber string `json:"orderReferenceNumber"`
	CustomerName         string `json:"customerName"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`

	StatusDetails string `json:"statusDetails"`
	StatusColor   string `json:"statusColor"`

	SenderName          string   `json:"senderName"`
	OriginStreetAddress string   `json:"originStreetAddress"`
	OriginCity          string   `json:"originCity"`
	OriginState         string   `json:"originState"`
	OriginCountry       string   `json:"originCountry"`
	OriginPostalCode    string   `json:"originPostalCode"`
	Origin              string   `json:"origin"`
	OriginLatitude      *float64 `json:"originLatitude"`
	OriginLongitude     *float64 `json:"originLongitude"`

	ReceiverName             string   `json:"receiverName"`
	DestinationStreetAddress string   `json:"destinationStreetAddress"`
	DestinationCity          string   `json:"destinationCity"`
	DestinationState         string   `json:"destinationState"`
	DestinationCountry       string   `json:"destinationCountry"`
	DestinationPostalCode    string   `json:"destinationPostalCode"`
	Destination              string   `json:"destination"`
	DestinationLatitude      *float64 `json:"destinationLatitude"`
	DestinationLongitude     *float64 `json:"destinationLongitude"`

	Weight              string `json:"weight"`
	Length              string `json:"length"`
	Width               string `json:"width"`
	Height              string `json:"height"`
	PackageType         string `json:"packageType"`
	ContentsDescription string `json:"contentsDescription"`
	DeclaredValue       string `json:"declaredValue"`

	ShippingMethod        string   `json:"shippingMethod"`
	TrackingProgress      string   `json:"trackingProgress"`
	ShipmentStatus        string   `json:"shipmentStatus"`
	CurrentLocation       string   `json:"currentLocation"`
	CurrentLatitude       *float64 `json:"currentLatitude"`
	CurrentLongitude      *float64 `json:"currentLongitude"`
	Description           string   `json:"description"`
	EstimatedDeliveryDate *string  `json:"estimatedDeliveryDate"`
	ShipmentDate          *string  `json:"shipmentDate"`
	InsuranceDetails      string   `json:"insuranceDetails"`

	SpecialInstructions string `json:"specialInstructions"`
	ReturnInstructions  string `json:"returnInstructions"`
	CustomerNotes       string `json:"customerNotes"`

	// Accepted from the shipment form but not persisted.
	CurrentCity  string `json:"currentCity"`
	CurrentState string `json:"currentState"`

	// Admin scope may assign ownership explicitly; user scope ignores this.
	UserID *string `json:"userId"`

	Events *[]EventPayload `json:"events"`
}

// Apply copies the payload onto a shipment model. Ownership and events are
// handled by the callers.
func (p *ShipmentPayload) Apply(s *models.Shipment) error {
	estimated, err := parseDate(p.EstimatedDeliveryDate)
	if err != nil {
		return fmt.Errorf("estimatedDeliveryDate: %w", err)
	}
	shipped, err := parseDate(p.ShipmentDate)
	if err != nil {
		return fmt.Errorf("shipmentDate: %w", err)
	}

	s.TrackingNumber = p.TrackingNumber
	s.OrderReferenceNumber = p.OrderReferenceNumber
	s.CustomerName = p.CustomerName
	s.Email = p.Email
	s.PhoneNumber = p.PhoneNumber
	s.StatusDetails = p.StatusDetails
	s.StatusColor = p.StatusColor

	s.SenderName = p.SenderName
	s.OriginStreetAddress = p.OriginStreetAddress
	s.OriginCity = p.OriginCity
	s.OriginState = p.OriginState
	s.OriginCountry = p.OriginCountry
	s.OriginPostalCode = p.OriginPostalCode
	s.Origin = p.Origin
	s.OriginLatitude = p.OriginLatitude
	s.OriginLongitude = p.OriginLongitude

	s.ReceiverName = p.ReceiverName
	s.DestinationStreetAddress = p.DestinationStreetAddress
	s.DestinationCity = p.DestinationCity
	s.DestinationState = p.DestinationState
	s.DestinationCountry = p.DestinationCountry
	s.DestinationPostalCode = p.DestinationPostalCode
	s.Destination = p.Destination
	s.DestinationLatitude = p.DestinationLatitude
	s.DestinationLongitude = p.DestinationLongitude

	s.Weight = p.Weight
	s.Length = p.Length
	s.Width = p.Width
	s.Height = p.Height
	s.PackageType = p.PackageType
	s.ContentsDescription = p.ContentsDescription
	s.DeclaredValue = p.DeclaredValue

	s.ShippingMethod = p.ShippingMethod
	s.TrackingProgress = p.TrackingProgress
	s.ShipmentStatus = p.ShipmentStatus
	s.CurrentLocation = p.CurrentLocation
	s.CurrentLatitude = p.CurrentLatitude
	s.CurrentLongitude = p.CurrentLongitude
	s.Description = p.Description
	s.EstimatedDeliveryDate = estimated
	s.ShipmentDate = shipped
	s.InsuranceDetails = p.InsuranceDetails

	s.SpecialInstructions = p.SpecialInstructions
	s.ReturnInstructions = p.ReturnInstructions
	s.CustomerNotes = p.CustomerNotes

	return nil
}

// EventModels converts submitted events to models. A missing timestamp
// becomes now; the "MMM DD" display form is accepted back.
func (p *ShipmentPayload) EventModels() []models.TrackingEvent {
	if p.Events == nil {
		return nil
	}
	now := time.Now().UTC()
	events := make([]models.TrackingEvent, 0, len(*p.Events))
	for _, ev := range *p.Events {
		events = append(events, models.TrackingEvent{
			Status:      ev.Status,
			Description: ev.Description,
			Location:    ev.Location,
			Timestamp:   tracking.ParseEventDate(ev.Timestamp, now),
		})
	}
	return events
}

// parseDate normalizes a client-submitted date. Empty strings mean absent:
// the store rejects '' for timestamp columns.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
