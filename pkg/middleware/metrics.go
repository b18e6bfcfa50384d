package middleware

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/soar/internal/errors"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "soar").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "soar",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors for page rendering.
type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	pageBytes      *prometheus.HistogramVec
	stylesheets    prometheus.Counter
	pagesBuilt     prometheus.Counter
}

// globalMetrics is created on the first call to Prometheus and shared by
// every middleware built afterwards, since collectors can only be
// registered once per registry.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of page renders",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Page render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed page renders by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "code"}),

		pageBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "page_size_bytes",
			Help:        "Size of rendered pages in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(512, 4, 7), // 512B to 2MB
		}, []string{"path"}),

		stylesheets: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stylesheets_compiled_total",
			Help:        "Total number of non-empty stylesheets emitted",
			ConstLabels: config.ConstLabels,
		}),

		pagesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pages_built_total",
			Help:        "Total number of pages written by static builds",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for page
// renders.
//
// Metrics collected:
//   - soar_renders_total: Counter of renders by path and status
//   - soar_render_duration_seconds: Histogram of render duration
//   - soar_render_errors_total: Counter of failed renders by path and error code
//   - soar_page_size_bytes: Histogram of rendered page sizes
//   - soar_stylesheets_compiled_total: Counter of emitted stylesheets (RecordStylesheet)
//   - soar_pages_built_total: Counter of pages written by builds (RecordPageBuilt)
//
// Example:
//
//	s := site.New(cfg, site.WithMiddleware(
//	    middleware.Prometheus(middleware.WithNamespace("docs")),
//	))
//
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next Handler) Handler {
		return func(ctx context.Context, path string) ([]byte, error) {
			path = normalizePath(path)

			start := time.Now()
			page, err := next(ctx, path)
			m.renderDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.renderErrors.WithLabelValues(path, errorCode(err)).Inc()
			} else {
				m.pageBytes.WithLabelValues(path).Observe(float64(len(page)))
			}
			m.rendersTotal.WithLabelValues(path, status).Inc()

			return page, err
		}
	}
}

// errorCode returns the code of the outermost SoarError in err's chain, or
// "internal". Codes keep the label cardinality bounded.
func errorCode(err error) string {
	var se *errors.SoarError
	if stderrors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "internal"
}

// RecordStylesheet counts a non-empty stylesheet emitted by a render.
func RecordStylesheet() {
	if globalMetrics != nil {
		globalMetrics.stylesheets.Inc()
	}
}

// RecordPageBuilt counts a page written to disk by a static build.
func RecordPageBuilt() {
	if globalMetrics != nil {
		globalMetrics.pagesBuilt.Inc()
	}
}
