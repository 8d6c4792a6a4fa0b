// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qrlinks"

// Redirect outcomes used as label values.
const (
	OutcomeRedirect = "redirect"
	OutcomeNotFound = "not_found"
	OutcomeDisabled = "link_disabled"
)

var (
	// Redirects counts redirect requests by outcome.
	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirects_total",
		Help:      "Redirect requests by outcome.",
	}, []string{"outcome"})

	// RedirectLookupErrors counts failed storage lookups. Those requests are
	// also counted once in Redirects, as not_found.
	RedirectLookupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirect_lookup_errors_total",
		Help:      "Short code lookups that failed in storage.",
	})

	// RedirectLookupDuration observes the single storage lookup of the hot path.
	RedirectLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "redirect_lookup_seconds",
		Help:      "Latency of the short code lookup.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	})

	// LinksCreated counts committed links.
	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_created_total",
		Help:      "Short links committed.",
	})

	// AllocationCollisions counts generated codes rejected by the pre-check or the unique index.
	AllocationCollisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allocation_collisions_total",
		Help:      "Candidate codes that collided, by detection point.",
	}, []string{"stage"})

	// AllocationFailures counts requests that exhausted the attempt budget.
	AllocationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allocation_failures_total",
		Help:      "Creations that ran out of allocation attempts.",
	})

	// ScansRecorded counts scan events written.
	ScansRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_recorded_total",
		Help:      "Scan events persisted.",
	})

	// ScansDropped counts scan events lost, by reason.
	ScansDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_dropped_total",
		Help:      "Scan events dropped before or during persistence.",
	}, []string{"reason"})
)

// DestinationsUnreachable is the number of active destinations that failed the last monitor check.
var DestinationsUnreachable = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "destinations_unreachable",
	Help:      "Active link destinations failing the last health check.",
})
