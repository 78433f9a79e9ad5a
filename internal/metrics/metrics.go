package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		},
		[]string{"method", "endpoint"},
	)

	// Business metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)

	inquirySubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Total number of inquiries submitted through the public form",
		},
		[]string{"category"},
	)

	inquiryUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiry_updates_total",
			Help: "Total number of admin updates applied to inquiries",
		},
	)
)

// Middleware records Prometheus metrics for every request
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip the metrics endpoint itself
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, statusCode).Observe(duration)
		if size := c.Writer.Size(); size > 0 {
			httpResponseSize.WithLabelValues(c.Request.Method, endpoint).Observe(float64(size))
		}
	}
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	authAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordInquirySubmission records a new inquiry submission
func RecordInquirySubmission(category string) {
	inquirySubmissionsTotal.WithLabelValues(category).Inc()
}

// RecordInquiryUpdate records an admin update to an inquiry
func RecordInquiryUpdate() {
	inquiryUpdatesTotal.Inc()
}
