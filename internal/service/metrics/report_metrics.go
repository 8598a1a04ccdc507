package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ReportLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chartpulse",
			Subsystem: "reports",
			Name:      "latency_seconds",
			Help:      "Latency of report operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ReportErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chartpulse",
			Subsystem: "reports",
			Name:      "errors_total",
			Help:      "Errors by kind",
		},
		[]string{"kind"},
	)

	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chartpulse",
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Response cache lookups by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chartpulse",
			Subsystem: "upstream",
			Name:      "attempts_total",
			Help:      "Upstream fetch attempts by endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ReportLatency, ReportErrors, CacheRequests, UpstreamAttempts)
	})
}

// Recorder adapts the registered vectors to the domain metrics interface.
type Recorder struct{}

func NewRecorder() *Recorder {
	Register()
	return &Recorder{}
}

func (Recorder) RecordError(kind string) {
	ReportErrors.WithLabelValues(kind).Inc()
}

func (Recorder) RecordLatency(op string, seconds float64) {
	ReportLatency.WithLabelValues(op).Observe(seconds)
}

func (Recorder) RecordCacheHit(endpoint string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheRequests.WithLabelValues(endpoint, outcome).Inc()
}

func (Recorder) RecordUpstreamAttempt(endpoint string) {
	UpstreamAttempts.WithLabelValues(endpoint).Inc()
}
