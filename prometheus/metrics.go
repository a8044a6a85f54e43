package prometheus

import (
	"strconv"
	"time"

	"reservation-service/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Intake metrics
	ReservationCreatedCounter *prometheus.CounterVec
	ValidationRejectedCounter *prometheus.CounterVec
	DuplicateRejectedCounter  *prometheus.CounterVec
	EmailSendCounter          *prometheus.CounterVec

	// Database operation metrics
	DBOperationHistogram *prometheus.HistogramVec

	// Request metrics
	RequestDurationHistogram *prometheus.HistogramVec
	APIRequestCounter        *prometheus.CounterVec
	APIErrorCounter          *prometheus.CounterVec

	// Namespace prefix for metrics
	namespace string
)

// InitMetrics initializes all Prometheus metrics
func InitMetrics(cfg *config.Config) {
	namespace = cfg.Metrics.Prefix

	// Intake metrics
	ReservationCreatedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Total number of reservations created",
		},
		[]string{"unit_type"},
	)

	ValidationRejectedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejected_total",
			Help:      "Total number of requests rejected by input validation",
		},
		[]string{"reason"},
	)

	DuplicateRejectedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_rejected_total",
			Help:      "Total number of requests rejected as duplicates",
		},
		[]string{"field"},
	)

	EmailSendCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_send_total",
			Help:      "Total number of notification email attempts",
		},
		[]string{"recipient", "outcome"},
	)

	// Database operation metrics
	DBOperationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Request metrics
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path"},
	)

	APIErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors",
		},
		[]string{"method", "path", "status"},
	)
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			APIRequestCounter.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Inc()

			// Process the request
			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			RequestDurationHistogram.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
				"status": status,
			}).Observe(duration)

			if c.Response().Status >= 400 {
				APIErrorCounter.With(prometheus.Labels{
					"method": c.Request().Method,
					"path":   c.Path(),
					"status": status,
				}).Inc()
			}

			return err
		}
	}
}

// HandlerFunc returns a HTTP handler for metrics endpoint
func HandlerFunc() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// TrackDBOperation returns a function that tracks database operation duration
func TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		if DBOperationHistogram == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		DBOperationHistogram.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordReservationCreated increments the created counter for a unit type
func RecordReservationCreated(unitType string) {
	if ReservationCreatedCounter == nil {
		return
	}
	ReservationCreatedCounter.With(prometheus.Labels{"unit_type": unitType}).Inc()
}

// RecordValidationRejected increments the validation rejection counter
func RecordValidationRejected(reason string) {
	if ValidationRejectedCounter == nil {
		return
	}
	ValidationRejectedCounter.With(prometheus.Labels{"reason": reason}).Inc()
}

// RecordDuplicateRejected increments the duplicate rejection counter
func RecordDuplicateRejected(field string) {
	if DuplicateRejectedCounter == nil {
		return
	}
	DuplicateRejectedCounter.With(prometheus.Labels{"field": field}).Inc()
}

// RecordEmailSend increments the email attempt counter
func RecordEmailSend(recipient string, sent bool) {
	if EmailSendCounter == nil {
		return
	}
	outcome := "sent"
	if !sent {
		outcome = "failed"
	}
	EmailSendCounter.With(prometheus.Labels{"recipient": recipient, "outcome": outcome}).Inc()
}
