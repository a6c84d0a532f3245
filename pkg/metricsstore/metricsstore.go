// Package metricsstore implements a Prometheus metrics store for CertMe invocations.
package metricsstore

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/AbsaOSS/CertMe/pkg/constants"
)

// metricsRootNamespace is the root namespace for all the metrics emitted.
// Ex: certme_<metric-name>
const metricsRootNamespace = constants.CertMeName

// MetricsStore is a type that provides functionality related to metrics
type MetricsStore struct {
	/*
	 * Pipeline metrics
	 */
	// StageDuration is the histogram to track the time spent in each pipeline stage
	StageDuration *prometheus.HistogramVec

	/*
	 * Certificate metrics
	 */
	// CertIssuedCount is the metric counter for the number of certificates issued and imported
	CertIssuedCount *prometheus.CounterVec

	// CertIssuedTime the histogram to track the time to issue and import a certificate
	CertIssuedTime *prometheus.HistogramVec

	/*
	 * Error metrics
	 */
	// ErrCodeCounter is the metric counter for the number of errors by error code
	ErrCodeCounter *prometheus.CounterVec

	/*
	 * MetricsStore internals should be defined below --------------
	 */
	registry *prometheus.Registry
}

var defaultMetricsStore MetricsStore

// DefaultMetricsStore is the default metrics store
var DefaultMetricsStore = &defaultMetricsStore

func init() {
	/*
	 * Pipeline metrics
	 */
	defaultMetricsStore.StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsRootNamespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			Help:      "Histogram to track time spent in each stage of the issuance pipeline",
		},
		[]string{
			"stage",   // the state reached by the stage
			"success", // further labels if the stage succeeded or not
		})

	/*
	 * Certificate metrics
	 */
	defaultMetricsStore.CertIssuedCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsRootNamespace,
			Subsystem: "cert",
			Name:      "issued_count",
			Help:      "represents the total number of certificates signed and imported",
		},
		[]string{"mode"})

	defaultMetricsStore.CertIssuedTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsRootNamespace,
			Subsystem: "cert",
			Name:      "issued_time",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 40, 90},
			Help:      "Histogram to track time spent to issue and import a certificate",
		},
		[]string{})

	/*
	 * Error metrics
	 */
	defaultMetricsStore.ErrCodeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsRootNamespace,
			Name:      "error_code_count",
			Help:      "Number of errors encountered, labeled by error code",
		},
		[]string{"err_code"})

	defaultMetricsStore.registry = prometheus.NewRegistry()
}

// Start store
func (ms *MetricsStore) Start(cs ...prometheus.Collector) {
	ms.registry.MustRegister(cs...)
}

// Stop store
func (ms *MetricsStore) Stop(cs ...prometheus.Collector) {
	for _, c := range cs {
		ms.registry.Unregister(c)
	}
}

// Collectors returns every metric owned by the store.
func (ms *MetricsStore) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ms.StageDuration,
		ms.CertIssuedCount,
		ms.CertIssuedTime,
		ms.ErrCodeCounter,
	}
}

// Push sends the registered metrics to the Pushgateway at url under the given job name.
func (ms *MetricsStore) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(ms.registry).PushContext(ctx)
}
