package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeToCamel(t *testing.T) {
	cases := map[string]string{
		"tracking_number":         "trackingNumber",
		"origin_street_address":   "originStreetAddress",
		"is_admin":                "isAdmin",
		"id":                      "id",
		"estimated_delivery_date": "estimatedDeliveryDate",
	}
	for in, want := range cases {
		assert.Equal(t, want, SnakeToCamel(in), in)
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"trackingNumber":        "tracking_number",
		"originStreetAddress":   "origin_street_address",
		"isAdmin":               "is_admin",
		"id":                    "id",
		"estimatedDeliveryDate": "estimated_delivery_date",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelToSnake(in), in)
	}
}

func TestToCamelNested(t *testing.T) {
	in := map[string]any{
		"tracking_number": "TRK123",
		"current_location": map[string]any{
			"city_name": "Berlin",
		},
		"events": []any{
			map[string]any{"shipment_id": "abc", "timestamp": "2024-01-10"},
		},
		"weight": 4.5,
		"active": true,
	}

	got, ok := ToCamel(in).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "TRK123", got["trackingNumber"])
	assert.Equal(t, 4.5, got["weight"])
	assert.Equal(t, true, got["active"])

	loc, ok := got["currentLocation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Berlin", loc["cityName"])

	events, ok := got["events"].([]any)
	require.True(t, ok)
	ev, ok := events[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", ev["shipmentId"])
}

func TestScalarsPassThrough(t *testing.T) {
	assert.Equal(t, "hello", ToCamel("hello"))
	assert.Equal(t, 42, ToSnake(42))
	assert.Nil(t, ToCamel(nil))
}

func TestRoundTrip(t *testing.T) {
	in := map[string]any{
		"tracking_number": "TRK123",
		"origin": map[string]any{
			"street_address": "1 Main St",
			"postal_code":    "10001",
		},
		"events": []any{
			map[string]any{"status": "Shipped", "shipment_id": "s1"},
			map[string]any{"status": "Delivered", "shipment_id": "s2"},
		},
		"declared_value": "120.00",
	}

	assert.Equal(t, in, ToSnake(ToCamel(in)))
}

func TestWireUsesJSONTags(t *testing.T) {
	type record struct {
		TrackingNumber string `json:"tracking_number"`
		StatusColor    string `json:"status_color"`
	}

	got, err := Wire(record{TrackingNumber: "TRK1", StatusColor: "green"})
	require.NoError(t, err)

	m, ok := got.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "TRK1", m["trackingNumber"])
	assert.Equal(t, "green", m["statusColor"])
}
