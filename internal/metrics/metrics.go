// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// Profile store metrics
	IncUserCreated()

	// Order ledger metrics
	IncOrderCreated()
	IncUserCascadeDeleted(ordersRemoved int64)

	// Transport metrics
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}
