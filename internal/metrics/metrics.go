package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Reservation metrics
	ReservationOperationsTotal *prometheus.CounterVec
	ReservationConflictsTotal  prometheus.Counter

	// Database operation metrics
	DBOperationDuration *prometheus.HistogramVec
)

// Init registers all Prometheus metrics under the given name prefix.
// Must be called once before the router starts serving.
func Init(prefix string) {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ReservationOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reservation_operations_total",
			Help: "Total number of reservation operations",
		},
		[]string{"operation"},
	)

	ReservationConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_reservation_conflicts_total",
			Help: "Total number of reservation requests rejected due to time conflicts",
		},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// RecordReservationOperation increments the counter for reservation operations.
func RecordReservationOperation(operation string) {
	if ReservationOperationsTotal != nil {
		ReservationOperationsTotal.WithLabelValues(operation).Inc()
	}
}

// RecordConflict increments the conflict-rejection counter.
func RecordConflict() {
	if ReservationConflictsTotal != nil {
		ReservationConflictsTotal.Inc()
	}
}

// TrackDBOperation returns a function that records the duration of a database
// operation when invoked with the operation start time.
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DBOperationDuration != nil {
			DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
		}
	}
}
