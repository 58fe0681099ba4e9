package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"medreminder/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncCachePurges()
	ObservePersistenceDuration(key string, duration time.Duration)
	SetMedicationsTotal(count int)
	SetPendingTimers(count int)
	IncRebuilds()
	IncFirings()
	IncNotifications(outcome string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	cachePurges         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	medicationsTotal    prometheus.Gauge
	pendingTimers       prometheus.Gauge
	rebuildsTotal       prometheus.Counter
	firingsTotal        prometheus.Counter
	notificationsTotal  *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncCachePurges() {
	m.cachePurges.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(key string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(key).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetMedicationsTotal(count int) {
	m.medicationsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetPendingTimers(count int) {
	m.pendingTimers.Set(float64(count))
}

func (m *MetricsProvider) IncRebuilds() {
	m.rebuildsTotal.Inc()
}

func (m *MetricsProvider) IncFirings() {
	m.firingsTotal.Inc()
}

func (m *MetricsProvider) IncNotifications(outcome string) {
	m.notificationsTotal.WithLabelValues(outcome).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medreminder_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medreminder_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medreminder_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medreminder_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		cachePurges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medreminder_cache_purges_total",
			Help: "Total number of cache purges after list mutations",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medreminder_persistence_duration_seconds",
			Help:    "Duration of store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"key"}),

		medicationsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "medreminder_medications_total",
			Help: "Number of medications in the list",
		}),

		pendingTimers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "medreminder_pending_timers",
			Help: "Number of armed reminder timers",
		}),

		rebuildsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medreminder_scheduler_rebuilds_total",
			Help: "Total number of scheduler rebuilds",
		}),

		firingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medreminder_scheduler_firings_total",
			Help: "Total number of reminder timers fired",
		}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medreminder_notifications_total",
			Help: "Notifications by outcome",
		}, []string{"outcome"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) IncCachePurges()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetMedicationsTotal(_ int)                            {}
func (n *noopMetrics) SetPendingTimers(_ int)                               {}
func (n *noopMetrics) IncRebuilds()                                         {}
func (n *noopMetrics) IncFirings()                                          {}
func (n *noopMetrics) IncNotifications(_ string)                            {}
