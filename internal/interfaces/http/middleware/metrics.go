package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	Enabled       bool
	Logger        *zap.Logger
}

// httpMetrics holds the HTTP instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	requestSize     *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

var sizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter, "http_server_request_total", "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	requestSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_size_bytes",
		Description: "HTTP request body size distribution in bytes",
		Unit:        "By",
		Boundaries:  sizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  sizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestSize:     requestSize,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a middleware recording request count, latency, body
// sizes and in-flight requests. Routes are labelled by their pattern.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return passThrough
	}
	return HTTPMetricsWithMeter(cfg.MeterProvider.Meter("http.server"), cfg.Logger)
}

// HTTPMetricsWithMeter builds the metrics middleware on an existing meter
func HTTPMetricsWithMeter(meter metric.Meter, logger *zap.Logger) gin.HandlerFunc {
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		if logger != nil {
			logger.Warn("HTTP metrics disabled", zap.Error(err))
		}
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		metrics.activeRequests.Add(ctx, 1)
		c.Next()
		metrics.activeRequests.Add(ctx, -1)

		metrics.record(ctx, c.Request.Method, routePattern(c), c.Writer.Status(),
			time.Since(start), c.Request.ContentLength, c.Writer.Size())
	}
}

func (m *httpMetrics) record(ctx context.Context, method, route string, status int, d time.Duration, reqSize int64, respSize int) {
	base := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
	}
	m.requestTotal.Inc(ctx, append(base, telemetry.AttrHTTPStatusCode.Int(status))...)
	m.requestDuration.RecordDuration(ctx, d, base...)
	if reqSize > 0 {
		m.requestSize.Record(ctx, float64(reqSize), base...)
	}
	if respSize > 0 {
		m.responseSize.Record(ctx, float64(respSize), base...)
	}
}

// routePattern returns the matched route, "/api/v1/products/:id" rather than
// the raw path, to keep label cardinality bounded
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

// StatusGroup buckets a status code into its class
func StatusGroup(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}
