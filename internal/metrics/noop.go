package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncOrderCreated is a no-op.
func (n *NoopRecorder) IncOrderCreated() {}

// IncUserCascadeDeleted is a no-op.
func (n *NoopRecorder) IncUserCascadeDeleted(ordersRemoved int64) {}

// RecordHTTPRequest is a no-op.
func (n *NoopRecorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {}
