// Package metrics exposes Prometheus counters for the booking engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BookingsTotal counts booking attempts by outcome tier.
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "requests_total",
		Help:      "Total booking requests by outcome (fully_booked, lead_only, conflict, invalid, error)",
	},
	[]string{"outcome"},
)

// SlotsScanned tracks how many candidate slots the oracle checked per search.
var SlotsScanned = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "booking",
	Name:      "slots_scanned",
	Help:      "Candidate slots checked against the calendar provider per availability search",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
})

// CalendarLookupErrors counts provider failures that were degraded to
// "assume free" by the availability oracle.
var CalendarLookupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "booking",
	Name:      "calendar_lookup_errors_total",
	Help:      "Calendar provider lookup failures handled fail-open",
})

// LeadsIngested counts leads captured via the public webhook.
var LeadsIngested = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "booking",
	Name:      "leads_ingested_total",
	Help:      "Leads created or merged through webhook ingestion",
})

// IntegrationErrors counts outbound integration failures by service.
var IntegrationErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "integration_errors_total",
		Help:      "Total number of integration errors",
	},
	[]string{"service"},
)
