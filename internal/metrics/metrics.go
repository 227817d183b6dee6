// Package metrics provides optional Prometheus counters for cclink's six
// verbs. Collection is opt-in (config.MetricsEnabled); the zero value of
// Metrics is never read directly outside this package.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cclink"

// Metrics holds the counters and histograms cclink emits. A CounterVec is
// used for outcome-labeled counts so success/failure/retry breakdowns
// don't require separate metric names.
type Metrics struct {
	PublishTotal   *prometheus.CounterVec
	PickupTotal    *prometheus.CounterVec
	RevokeTotal    *prometheus.CounterVec
	ResolveTotal   *prometheus.CounterVec
	RetryAttempts  prometheus.Counter
	PublishLatency prometheus.Histogram
	ResolveLatency prometheus.Histogram
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Default returns the process-wide Metrics instance, registering it
// against the default Prometheus registry on first use.
func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// Disabled returns a Metrics instance registered to a private registry
// that nothing ever reads. Callers whose config opts out of collection
// (config.MetricsEnabled == false, the default) use this instead of
// Default so the orchestrator always has live counters to call without
// polluting the process-wide registry when collection wasn't requested.
func Disabled() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// NewMetrics registers a fresh set of counters against reg. Tests that
// want isolation from the process-wide registry should pass their own
// prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PublishTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Total publish verb invocations by outcome",
		}, []string{"outcome"}),
		PickupTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pickup_total",
			Help:      "Total pickup verb invocations by outcome",
		}, []string{"outcome"}),
		RevokeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revoke_total",
			Help:      "Total revoke verb invocations by outcome",
		}, []string{"outcome"}),
		ResolveTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_total",
			Help:      "Total DHT resolve calls by outcome",
		}, []string{"outcome"}),
		RetryAttempts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_retry_attempts_total",
			Help:      "Total transport retry attempts across publish/resolve/revoke",
		}),
		PublishLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_latency_seconds",
			Help:      "Publish verb wall-clock latency",
			Buckets:   prometheus.DefBuckets,
		}),
		ResolveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_latency_seconds",
			Help:      "DHT resolve wall-clock latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
