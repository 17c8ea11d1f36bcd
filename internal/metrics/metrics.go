package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// OrderEventsTotal counts consumed order events by outcome.
	OrderEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_total",
			Help: "Total number of consumed order events by outcome",
		},
		[]string{"outcome"},
	)

	// DeliveryStatusUpdatesTotal counts courier-driven status changes by target status.
	DeliveryStatusUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_status_updates_total",
			Help: "Total number of delivery status updates by target status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(OrderEventsTotal, DeliveryStatusUpdatesTotal)
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
