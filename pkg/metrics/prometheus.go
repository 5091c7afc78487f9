package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RexCreated            prometheus.Counter
	OpportunitiesNotified prometheus.Counter
	ValidationFailures    prometheus.Counter
	ScanDuration          prometheus.Histogram
	ErrorsCount           *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RexCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rex_created_total",
			Help:      "The total number of REX records created",
		}),
		OpportunitiesNotified: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "opportunities_notified_total",
			Help:      "The total number of REX opportunity prompts pushed",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "The total number of rejected REX submissions",
		}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "opportunity_scan_duration_seconds",
			Help:      "Time taken by one opportunity scan pass",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
