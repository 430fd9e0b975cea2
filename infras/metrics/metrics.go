package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. Counters are registered
// once on the default registry; DI hands a single instance to whoever records.
type Metrics struct {
	HTTPRequestsTotal  *prometheus.CounterVec
	BookingsCreated    prometheus.Counter
	BookingTransitions *prometheus.CounterVec
	PropertyViews      prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nyumbani_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nyumbani_booking_requests_created_total",
			Help: "Total booking requests created.",
		}),
		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nyumbani_booking_transitions_total",
			Help: "Booking status transitions by target status.",
		}, []string{"status"}),
		PropertyViews: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nyumbani_property_views_total",
			Help: "Total property detail views recorded.",
		}),
	}
}
