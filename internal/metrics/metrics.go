package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking results
const (
	ResultConfirmed  = "confirmed"
	ResultFull       = "full"
	ResultDuplicate  = "duplicate"
	ResultContention = "contention"
	ResultError      = "error"
)

var (
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_bookings_total",
			Help: "Booking attempts by result",
		},
		[]string{"result"},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "volunteer_cancellations_total",
			Help: "Bookings cancelled by their volunteer",
		},
	)

	SlotsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_slots_created_total",
			Help: "Slots created, by origin",
		},
		[]string{"origin"}, // manual, recurrence
	)

	LockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "volunteer_slot_lock_duration_seconds",
			Help:    "Time spent inside the locked booking/cancellation transaction",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volunteer_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "volunteer_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func RecordBooking(result string) {
	BookingsTotal.WithLabelValues(result).Inc()
}

func RecordCancellation() {
	CancellationsTotal.Inc()
}

// RecordSlotsCreated adds n to the slot counter for origin
func RecordSlotsCreated(origin string, n int) {
	SlotsCreated.WithLabelValues(origin).Add(float64(n))
}

func ObserveLockWait(seconds float64) {
	LockWaitDuration.Observe(seconds)
}

func RecordHTTPRequest(method, endpoint, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}
