package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	applicationsByStatusDesc = prometheus.NewDesc(
		"jobtracker_applications",
		"Number of stored job applications by status",
		[]string{"status"},
		nil,
	)

	analyticsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_analytics_summaries_total",
			Help: "Total analytics summaries computed by input source",
		},
		[]string{"source"},
	)

	analyticsRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_analytics_records_total",
			Help: "Total application records aggregated by input source",
		},
		[]string{"source"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobtracker_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status code",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "code"},
	)

	databaseUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jobtracker_database_up",
		Help: "Whether the last database probe succeeded (1) or failed (0)",
	})
)

// Analytics input sources.
const (
	SourcePayload = "payload"
	SourceStored  = "stored"
)

// StatusCounter provides per-status application counts.
type StatusCounter interface {
	GetStatusCounts(ctx context.Context) (map[string]int64, error)
}

// StatusCollector is a custom Prometheus collector that reads application
// counts from the database on each scrape.
type StatusCollector struct {
	source  StatusCounter
	timeout time.Duration
}

// NewStatusCollector creates a collector backed by source.
func NewStatusCollector(source StatusCounter) *StatusCollector {
	return &StatusCollector{source: source, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- applicationsByStatusDesc
}

// Collect queries the database for status counts and emits them as gauges.
func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.source.GetStatusCounts(ctx)
	if err != nil {
		slog.Error("failed to collect application status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			applicationsByStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

var initOnce sync.Once

// Init registers all collectors with the default registry.
// Must be called once at startup.
func Init(source StatusCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			NewStatusCollector(source),
			analyticsRequests,
			analyticsRecords,
			requestDuration,
			databaseUp,
		)
	})
}

// RecordSummary counts one computed summary over n records.
func RecordSummary(source string, n int) {
	analyticsRequests.WithLabelValues(source).Inc()
	analyticsRecords.WithLabelValues(source).Add(float64(n))
}

// ObserveRequest records the latency of a handled HTTP request.
func ObserveRequest(method, route string, code int, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// SetDatabaseUp records the outcome of the latest database probe.
func SetDatabaseUp(up bool) {
	if up {
		databaseUp.Set(1)
		return
	}
	databaseUp.Set(0)
}
