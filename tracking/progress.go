// Package tracking holds the lifecycle stage model behind the progress bar
// and the display format used for event timestamps.
package tracking

import (
	"strconv"
	"strings"
	"time"
)

// Stages is the fixed ordered lifecycle of a shipment. The stored
// tracking_progress value is matched against these literals exactly.
var Stages = []string{"Pickup", "Shipped", "In Transit", "Out for Delivery", "Delivered"}

// StageIndex returns the position of progress in Stages.
// Any unmatched value maps to the first stage.
func StageIndex(progress string) int {
	for i, s := range Stages {
		if s == progress {
			return i
		}
	}
	return 0
}

// Percent returns how far along the progress bar fills, in [0, 100].
func Percent(progress string) float64 {
	return float64(StageIndex(progress)) / float64(len(Stages)-1) * 100
}

// Progress is the computed block attached to public tracking responses.
type Progress struct {
	Stages       []string `json:"stages"`
	CurrentIndex int      `json:"current_index"`
	Percent      float64  `json:"percent"`
}

// ComputeProgress builds the progress block for a stored progress value.
func ComputeProgress(progress string) Progress {
	return Progress{
		Stages:       Stages,
		CurrentIndex: StageIndex(progress),
		Percent:      Percent(progress),
	}
}

// FormatEventDate renders an event timestamp in the "MMM DD" display form,
// e.g. "Jan 10". The year is dropped.
func FormatEventDate(t time.Time) string {
	return t.Format("Jan 2")
}

var months = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// ParseEventDate reads a timestamp back from user input. ISO-style input is
// parsed as-is; the "MMM DD" display form is reinterpreted against the
// current year, so the round-trip loses the original year. Anything else
// falls back to now.
func ParseEventDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}

	if strings.ContainsAny(s, "T-") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}

	parts := strings.Fields(s)
	if len(parts) >= 2 {
		month, ok := months[parts[0]]
		day, err := strconv.Atoi(parts[1])
		if ok && err == nil {
			return time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
		}
	}

	return now
}
