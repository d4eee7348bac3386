package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oceanview",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "oceanview",
			Name:      "reservations_created_total",
			Help:      "Reservations successfully created.",
		},
	)

	reservationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oceanview",
			Name:      "reservation_transitions_total",
			Help:      "Reservation status transitions by target status.",
		},
		[]string{"to"},
	)

	billsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "oceanview",
			Name:      "bills_generated_total",
			Help:      "Bills successfully generated.",
		},
	)

	conflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oceanview",
			Name:      "conflicts_total",
			Help:      "Rejected operations by conflict kind (room_taken, duplicate_bill, invalid_transition).",
		},
		[]string{"kind"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			reservationsCreated,
			reservationTransitions,
			billsGenerated,
			conflicts,
		)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncReservationCreated() {
	reservationsCreated.Inc()
}

func IncReservationTransition(to string) {
	reservationTransitions.WithLabelValues(to).Inc()
}

func IncBillGenerated() {
	billsGenerated.Inc()
}

func IncConflict(kind string) {
	conflicts.WithLabelValues(kind).Inc()
}
