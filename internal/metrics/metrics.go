// Package metrics holds the Prometheus collectors of the sync engine.
//
// Collectors register on the default registry through promauto and are
// exposed by the local API under /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "cuesync"
	subsystem = "sync"

	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Total number of finished sync operations by outcome",
		},
		[]string{"document", "operation", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Duration of sync operations in seconds",
		},
		[]string{"document", "operation"},
	)

	rejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_total",
			Help:      "Total number of sync requests rejected because another one was in flight",
		},
		[]string{"document", "operation"},
	)

	mergedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "merged_total",
			Help:      "Total number of sync operations that adopted remote state",
		},
		[]string{"document", "operation"},
	)

	state = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "state",
			Help:      "Current coordinator state (0=idle, 1=pushing, 2=pulling)",
		},
		[]string{"document"},
	)

	remoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Total number of remote object requests by method and result",
		},
		[]string{"method", "result"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeConflict = "conflict"
	OutcomeSkipped  = "skipped"
)

// RecordOperation counts a finished operation and observes its duration.
func RecordOperation(document, operation, outcome string, took time.Duration) {
	operationsTotal.WithLabelValues(document, operation, outcome).Inc()
	operationDuration.WithLabelValues(document, operation).Observe(took.Seconds())
}

// RecordRejected counts a start request refused while another operation ran.
func RecordRejected(document, operation string) {
	rejectedTotal.WithLabelValues(document, operation).Inc()
}

// RecordMerged counts an operation that brought remote data into the local
// document.
func RecordMerged(document, operation string) {
	mergedTotal.WithLabelValues(document, operation).Inc()
}

// SetState publishes the coordinator state as a numeric gauge.
func SetState(document, current string) {
	var v float64
	switch current {
	case "pushing":
		v = 1
	case "pulling":
		v = 2
	}
	state.WithLabelValues(document).Set(v)
}

// RecordRemoteRequest counts one request to the remote object API.
func RecordRemoteRequest(method, result string) {
	remoteRequestsTotal.WithLabelValues(method, result).Inc()
}

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of local API requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of local API requests in seconds",
		},
		[]string{"method", "route"},
	)
)

// RecordAPIRequest counts one served local API request. route is the
// matched pattern, not the raw path, to keep label cardinality bounded.
func RecordAPIRequest(method, route string, status int, took time.Duration) {
	apiRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

var jobRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "runs_total",
		Help:      "Total number of periodic sync rounds by outcome",
	},
	[]string{"outcome"},
)

// RecordJobRun counts one round of the periodic sync job.
func RecordJobRun(outcome string) {
	jobRunsTotal.WithLabelValues(outcome).Inc()
}
