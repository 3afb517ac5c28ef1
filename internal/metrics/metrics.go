package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uhfc",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "uhfc",
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected because the slot was taken.",
		},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "uhfc",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	bookingConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "uhfc",
			Name:      "booking_confirmed_total",
			Help:      "Count of bookings confirmed by admins.",
		},
	)

	feedEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uhfc",
			Name:      "feed_events_total",
			Help:      "Count of change events broadcast to feed subscribers by table.",
		},
		[]string{"table"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, bookingCancelled, bookingConfirmed, feedEvents)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncBookingConfirmed() {
	bookingConfirmed.Inc()
}

func IncFeedEvent(table string) {
	feedEvents.WithLabelValues(table).Inc()
}
