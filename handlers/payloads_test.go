package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracker/models"
)

func TestEventsPresenceSurvivesDecoding(t *testing.T) {
	t.Run("omitted", func(t *testing.T) {
		var p ShipmentPayload
		require.NoError(t, json.Unmarshal([]byte(`{"trackingNumber":"TRK1"}`), &p))
		assert.Nil(t, p.Events)
		assert.Nil(t, p.EventModels())
	})

	t.Run("empty array", func(t *testing.T) {
		var p ShipmentPayload
		require.NoError(t, json.Unmarshal([]byte(`{"trackingNumber":"TRK1","events":[]}`), &p))
		require.NotNil(t, p.Events)
		assert.Len(t, *p.Events, 0)
		assert.NotNil(t, p.EventModels())
		assert.Len(t, p.EventModels(), 0)
	})
}

func TestEventModels(t *testing.T) {
	events := []EventPayload{
		{Status: "Shipped", Timestamp: "2024-01-10T08:00:00Z", Location: "Berlin"},
		{Status: "Delivered"}, // no timestamp: stamped now
	}
	p := ShipmentPayload{Events: &events}

	got := p.EventModels()
	require.Len(t, got, 2)

	assert.Equal(t, "Shipped", got[0].Status)
	assert.Equal(t, "Berlin", got[0].Location)
	assert.Equal(t, time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC), got[0].Timestamp)

	assert.WithinDuration(t, time.Now().UTC(), got[1].Timestamp, time.Minute)
}

func TestApplyNormalizesDates(t *testing.T) {
	empty := ""
	iso := "2024-05-01T00:00:00Z"
	dateOnly := "2024-05-01"

	t.Run("empty string means absent", func(t *testing.T) {
		p := ShipmentPayload{TrackingNumber: "TRK1", EstimatedDeliveryDate: &empty, ShipmentDate: &empty}
		var s models.Shipment
		require.NoError(t, p.Apply(&s))
		assert.Nil(t, s.EstimatedDeliveryDate)
		assert.Nil(t, s.ShipmentDate)
	})

	t.Run("iso and date-only both parse", func(t *testing.T) {
		p := ShipmentPayload{TrackingNumber: "TRK1", EstimatedDeliveryDate: &iso, ShipmentDate: &dateOnly}
		var s models.Shipment
		require.NoError(t, p.Apply(&s))
		require.NotNil(t, s.EstimatedDeliveryDate)
		require.NotNil(t, s.ShipmentDate)
		assert.Equal(t, 2024, s.EstimatedDeliveryDate.Year())
		assert.Equal(t, time.May, s.ShipmentDate.Month())
	})

	t.Run("unparseable date fails", func(t *testing.T) {
		bad := "next tuesday"
		p := ShipmentPayload{TrackingNumber: "TRK1", ShipmentDate: &bad}
		var s models.Shipment
		assert.Error(t, p.Apply(&s))
	})
}

func TestApplyCopiesFields(t *testing.T) {
	lat := 52.52
	p := ShipmentPayload{
		TrackingNumber:   "TRK1",
		CustomerName:     "Ada",
		TrackingProgress: "Out for Delivery",
		OriginCity:       "Berlin",
		OriginLatitude:   &lat,
		CurrentCity:      "form-only, not persisted",
	}

	var s models.Shipment
	require.NoError(t, p.Apply(&s))

	assert.Equal(t, "TRK1", s.TrackingNumber)
	assert.Equal(t, "Ada", s.CustomerName)
	assert.Equal(t, "Out for Delivery", s.TrackingProgress)
	assert.Equal(t, "Berlin", s.OriginCity)
	require.NotNil(t, s.OriginLatitude)
	assert.Equal(t, 52.52, *s.OriginLatitude)
}
