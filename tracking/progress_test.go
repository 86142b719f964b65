package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStageIndex(t *testing.T) {
	for i, stage := range Stages {
		assert.Equal(t, i, StageIndex(stage), stage)
	}

	// Anything outside the fixed set maps to the first stage.
	assert.Equal(t, 0, StageIndex(""))
	assert.Equal(t, 0, StageIndex("Lost"))
	assert.Equal(t, 0, StageIndex("in transit"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent("Pickup"))
	assert.Equal(t, 50.0, Percent("In Transit"))
	assert.Equal(t, 100.0, Percent("Delivered"))
	assert.Equal(t, 0.0, Percent("bogus"))
}

func TestComputeProgress(t *testing.T) {
	p := ComputeProgress("Out for Delivery")
	assert.Equal(t, Stages, p.Stages)
	assert.Equal(t, 3, p.CurrentIndex)
	assert.Equal(t, 75.0, p.Percent)
}

func TestFormatEventDate(t *testing.T) {
	ts := time.Date(2023, time.January, 10, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "Jan 10", FormatEventDate(ts))

	ts = time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Nov 3", FormatEventDate(ts))
}

func TestParseEventDate(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("display form reinterprets against current year", func(t *testing.T) {
		got := ParseEventDate("Jan 10", now)
		assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("round trip loses the year", func(t *testing.T) {
		orig := time.Date(2023, time.March, 5, 9, 0, 0, 0, time.UTC)
		got := ParseEventDate(FormatEventDate(orig), now)
		assert.Equal(t, now.Year(), got.Year())
		assert.Equal(t, orig.Month(), got.Month())
		assert.Equal(t, orig.Day(), got.Day())
	})

	t.Run("iso input passes through", func(t *testing.T) {
		got := ParseEventDate("2023-03-05T09:00:00Z", now)
		assert.Equal(t, time.Date(2023, time.March, 5, 9, 0, 0, 0, time.UTC), got)

		got = ParseEventDate("2023-03-05", now)
		assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("garbage falls back to now", func(t *testing.T) {
		assert.Equal(t, now, ParseEventDate("", now))
		assert.Equal(t, now, ParseEventDate("sometime soon", now))
	})
}
