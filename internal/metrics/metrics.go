package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "book_catalog",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "book_catalog",
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request durations in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	bookOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "book_catalog",
		Name:      "book_operations_total",
		Help:      "Total number of catalog operations by operation and result",
	}, []string{"operation", "result"})
	booksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "book_catalog",
		Name:      "books_total",
		Help:      "Number of books seen by the most recent listing",
	})
)

// Register adds the collectors to the default Prometheus registry (idempotent).
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookOperations, booksGauge)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func IncBookOperation(operation, result string) {
	bookOperations.WithLabelValues(operation, result).Inc()
}

func SetBooks(count int) { booksGauge.Set(float64(count)) }
