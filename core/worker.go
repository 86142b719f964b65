package core

import "time"

// Worker is a background job driven by the cron orchestrator.
type Worker interface {
	// Schedule returns the cron expression the worker runs on.
	Schedule() string
	// Ready reports whether a run may start; a run already in flight
	// returns false.
	Ready(now time.Time) bool
	Execute()
}
