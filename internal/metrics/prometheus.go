package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements Recorder on top of Prometheus.
type Collector struct {
	usersCreated   prometheus.Counter
	ordersCreated  prometheus.Counter
	cascadeDeletes prometheus.Counter
	ordersRemoved  prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proledger_users_created_total",
			Help: "Total number of user profiles created.",
		}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proledger_orders_created_total",
			Help: "Total number of orders created.",
		}),
		cascadeDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proledger_cascade_deletes_total",
			Help: "Total number of completed cascading user deletions.",
		}),
		ordersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proledger_cascade_orders_removed_total",
			Help: "Total number of orders removed by cascading deletions.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proledger_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "path", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "proledger_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		c.usersCreated,
		c.ordersCreated,
		c.cascadeDeletes,
		c.ordersRemoved,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// IncUserCreated records a created user profile.
func (c *Collector) IncUserCreated() {
	c.usersCreated.Inc()
}

// IncOrderCreated records a created order.
func (c *Collector) IncOrderCreated() {
	c.ordersCreated.Inc()
}

// IncUserCascadeDeleted records a completed cascading deletion and the
// number of orders it removed.
func (c *Collector) IncUserCascadeDeleted(ordersRemoved int64) {
	c.cascadeDeletes.Inc()
	c.ordersRemoved.Add(float64(ordersRemoved))
}

// RecordHTTPRequest records one handled HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
