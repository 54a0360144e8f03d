// Package metrics holds the Prometheus instrumentation for the service:
// generic HTTP and queue metrics plus the register-floor counters the
// dashboards are built on.
//
// Wire it up once at boot:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spectra",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spectra",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "spectra",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// QueueJobsProcessed counts processed queue jobs by status.
	QueueJobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spectra",
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total queue jobs processed.",
		},
		[]string{"status"}, // "success" | "failed"
	)

	// QueueJobDuration tracks how long queue jobs take.
	QueueJobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spectra",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Duration of queue job processing in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job_type"},
	)

	// CacheHits / CacheMisses track cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spectra",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spectra",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)

	// CheckoutsTotal counts completed checkouts, split by whether the sale
	// was tied to a registered customer.
	CheckoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spectra",
			Subsystem: "pos",
			Name:      "checkouts_total",
			Help:      "Total completed checkouts.",
		},
		[]string{"customer"}, // "registered" | "walk_in"
	)

	// CheckoutRejections counts checkouts refused before any state changed.
	CheckoutRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spectra",
			Subsystem: "pos",
			Name:      "checkout_rejections_total",
			Help:      "Checkouts rejected without side effects.",
		},
		[]string{"reason"}, // "insufficient_stock" | "duplicate_line" | "unknown_product"
	)

	// SaleAmount tracks the value distribution of completed sales.
	SaleAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "spectra",
		Subsystem: "pos",
		Name:      "sale_amount",
		Help:      "Completed sale totals in store currency.",
		Buckets:   []float64{100, 500, 1_000, 5_000, 10_000, 50_000, 100_000},
	})

	// PointsIssued and PointsRedeemed track the loyalty ledger flow.
	PointsIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "spectra",
		Subsystem: "loyalty",
		Name:      "points_issued_total",
		Help:      "Loyalty points credited to customers.",
	})
	PointsRedeemed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "spectra",
		Subsystem: "loyalty",
		Name:      "points_redeemed_total",
		Help:      "Loyalty points redeemed by customers.",
	})

	// LowStockProducts tracks how many products are at or below the
	// configured low-stock threshold.
	LowStockProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "spectra",
		Subsystem: "pos",
		Name:      "low_stock_products",
		Help:      "Products at or below the low stock threshold.",
	})
)

// DefaultRegistry is the Prometheus registry all service metrics live in.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		QueueJobsProcessed,
		QueueJobDuration,
		CacheHits,
		CacheMisses,
		CheckoutsTotal,
		CheckoutRejections,
		SaleAmount,
		PointsIssued,
		PointsRedeemed,
		LowStockProducts,
	)
}

// MustRegister adds collectors to the service registry.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, count, and in-flight gauge for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus scrape endpoint. Mount it on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// RecordQueueJob records a queue job result.
func RecordQueueJob(jobType, status string, start time.Time) {
	QueueJobsProcessed.WithLabelValues(status).Inc()
	QueueJobDuration.WithLabelValues(jobType).Observe(time.Since(start).Seconds())
}
