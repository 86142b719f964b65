// Package geocode runs the background job that resolves shipment addresses
// to coordinates, so the tracking page can render markers without calling
// the geocoder itself.
package geocode

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shipment-tracker/errs"
	"shipment-tracker/geocode"
	"shipment-tracker/models"
	"shipment-tracker/repositories"
)

// Geocoder resolves a free-text location to coordinates.
type Geocoder interface {
	Lookup(query string) (*geocode.Coordinates, error)
}

// Repository is the slice of the shipment repository the worker consumes.
type Repository interface {
	MissingCoordinates() ([]models.Shipment, error)
	SaveCoordinates(shipment *models.Shipment) error
}

type Worker struct {
	logger   *zap.Logger
	repo     Repository
	geocoder Geocoder
	mu       sync.Mutex
	busy     bool
}

func NewWorker(logger *zap.Logger, db *gorm.DB, geocoder Geocoder) *Worker {
	return &Worker{
		logger:   logger,
		repo:     repositories.NewShipmentRepository(db),
		geocoder: geocoder,
	}
}

// NewWorkerWithRepo wires an explicit repository, used in tests.
func NewWorkerWithRepo(logger *zap.Logger, repo Repository, geocoder Geocoder) *Worker {
	return &Worker{logger: logger, repo: repo, geocoder: geocoder}
}

func (w *Worker) Schedule() string {
	return "*/10 * * * *"
}

func (w *Worker) Ready(time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.busy
}

func (w *Worker) Execute() {
	w.mu.Lock()
	w.busy = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	w.logger.Info("Starting geocode pass.")

	shipments, err := w.repo.MissingCoordinates()
	if err != nil {
		w.logger.Error("Failed to fetch shipments for geocoding", zap.Error(err))
		return
	}

	if len(shipments) == 0 {
		w.logger.Info("No shipments missing coordinates. Geocode work completed 😴")
		return
	}

	var wg sync.WaitGroup
	for _, shipment := range shipments {
		wg.Add(1)
		go func(sh models.Shipment) {
			defer wg.Done()
			w.geocodeShipment(&sh)
		}(shipment)
	}

	wg.Wait()
	w.logger.Info("Geocode work completed 😴")
}

func (w *Worker) geocodeShipment(sh *models.Shipment) {
	changed := false

	if sh.OriginLatitude == nil {
		query := originQuery(sh)
		if coords := w.lookup(sh.TrackingNumber, query); coords != nil {
			sh.OriginLatitude = &coords.Latitude
			sh.OriginLongitude = &coords.Longitude
			changed = true
		}
	}

	if sh.DestinationLatitude == nil {
		query := destinationQuery(sh)
		if coords := w.lookup(sh.TrackingNumber, query); coords != nil {
			sh.DestinationLatitude = &coords.Latitude
			sh.DestinationLongitude = &coords.Longitude
			changed = true
		}
	}

	if sh.CurrentLatitude == nil && sh.CurrentLocation != "" {
		if coords := w.lookup(sh.TrackingNumber, sh.CurrentLocation); coords != nil {
			sh.CurrentLatitude = &coords.Latitude
			sh.CurrentLongitude = &coords.Longitude
			changed = true
		}
	}

	if !changed {
		return
	}

	if err := w.repo.SaveCoordinates(sh); err != nil {
		w.logger.Error("Failed to save coordinates",
			zap.String("tracking_number", sh.TrackingNumber),
			zap.Error(err),
		)
		return
	}

	w.logger.Info("Shipment geocoded",
		zap.String("tracking_number", sh.TrackingNumber),
	)
}

// lookup resolves one location, treating every failure as "no marker".
func (w *Worker) lookup(trackingNumber, query string) *geocode.Coordinates {
	if query == "" {
		return nil
	}
	coords, err := w.geocoder.Lookup(query)
	if err != nil {
		if !errors.Is(err, errs.ErrNoResult) {
			w.logger.Warn("Geocoding failed",
				zap.String("tracking_number", trackingNumber),
				zap.String("query", query),
				zap.Error(err),
			)
		}
		return nil
	}
	return coords
}

func originQuery(sh *models.Shipment) string {
	if sh.Origin != "" {
		return sh.Origin
	}
	return geocode.FormatAddress(sh.OriginStreetAddress, sh.OriginCity, sh.OriginState, sh.OriginCountry)
}

func destinationQuery(sh *models.Shipment) string {
	if sh.Destination != "" {
		return sh.Destination
	}
	return geocode.FormatAddress(sh.DestinationStreetAddress, sh.DestinationCity, sh.DestinationState, sh.DestinationCountry)
}
