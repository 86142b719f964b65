package geocode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shipment-tracker/errs"
	geoclient "shipment-tracker/geocode"
	"shipment-tracker/models"
)

type fakeRepo struct {
	pending []models.Shipment
	saved   []*models.Shipment
}

func (r *fakeRepo) MissingCoordinates() ([]models.Shipment, error) {
	return r.pending, nil
}

func (r *fakeRepo) SaveCoordinates(shipment *models.Shipment) error {
	r.saved = append(r.saved, shipment)
	return nil
}

type fakeGeocoder struct {
	results map[string]*geoclient.Coordinates
	err     error
}

func (g *fakeGeocoder) Lookup(query string) (*geoclient.Coordinates, error) {
	if g.err != nil {
		return nil, g.err
	}
	if coords, ok := g.results[query]; ok {
		return coords, nil
	}
	return nil, errs.ErrNoResult
}

func TestWorkerFillsMissingCoordinates(t *testing.T) {
	repo := &fakeRepo{pending: []models.Shipment{{
		TrackingNumber:  "TRK1",
		Origin:          "Berlin, Germany",
		DestinationCity: "Paris",
		CurrentLocation: "Brussels",
	}}}
	geocoder := &fakeGeocoder{results: map[string]*geoclient.Coordinates{
		"Berlin, Germany": {Latitude: 52.52, Longitude: 13.40},
		"Paris":           {Latitude: 48.85, Longitude: 2.35},
		"Brussels":        {Latitude: 50.85, Longitude: 4.35},
	}}

	w := NewWorkerWithRepo(zap.NewNop(), repo, geocoder)
	w.Execute()

	require.Len(t, repo.saved, 1)
	sh := repo.saved[0]
	require.NotNil(t, sh.OriginLatitude)
	assert.Equal(t, 52.52, *sh.OriginLatitude)
	require.NotNil(t, sh.DestinationLatitude)
	assert.Equal(t, 48.85, *sh.DestinationLatitude)
	require.NotNil(t, sh.CurrentLatitude)
	assert.Equal(t, 50.85, *sh.CurrentLatitude)
}

func TestWorkerSkipsResolvedAndFailed(t *testing.T) {
	lat, lng := 1.0, 2.0

	t.Run("already resolved shipments save nothing", func(t *testing.T) {
		repo := &fakeRepo{pending: []models.Shipment{{
			TrackingNumber:  "TRK1",
			Origin:          "Berlin",
			OriginLatitude:  &lat,
			OriginLongitude: &lng,
		}}}
		w := NewWorkerWithRepo(zap.NewNop(), repo, &fakeGeocoder{})
		w.Execute()
		assert.Empty(t, repo.saved)
	})

	t.Run("geocoder failure is no marker, not an error", func(t *testing.T) {
		repo := &fakeRepo{pending: []models.Shipment{{
			TrackingNumber: "TRK1",
			Origin:         "Berlin",
		}}}
		w := NewWorkerWithRepo(zap.NewNop(), repo, &fakeGeocoder{err: errors.New("upstream down")})
		w.Execute()
		assert.Empty(t, repo.saved)
	})
}

func TestWorkerBusyGate(t *testing.T) {
	w := NewWorkerWithRepo(zap.NewNop(), &fakeRepo{}, &fakeGeocoder{})

	assert.True(t, w.Ready(time.Now()))
	w.mu.Lock()
	w.busy = true
	w.mu.Unlock()
	assert.False(t, w.Ready(time.Now()))
}

func TestQueryFallsBackToAddressParts(t *testing.T) {
	sh := &models.Shipment{
		OriginStreetAddress: "1 Main St",
		OriginCity:          "Springfield",
		OriginCountry:       "USA",
	}
	assert.Equal(t, "1 Main St, Springfield, USA", originQuery(sh))

	sh.Origin = "Somewhere else"
	assert.Equal(t, "Somewhere else", originQuery(sh))

	dst := &models.Shipment{DestinationCity: "Paris", DestinationCountry: "France"}
	assert.Equal(t, "Paris, France", destinationQuery(dst))
}
