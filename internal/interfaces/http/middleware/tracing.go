package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/infrastructure/logger"
	"github.com/jewelry/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns the otelgin middleware followed by an injector that adds
// request_id and idempotency_key to the server span. Install RequestID and
// the Idempotency-Key check first.
func Tracing(serviceName string, enabled bool) []gin.HandlerFunc {
	if !enabled {
		return nil
	}
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), TracingAttributeInjector()}
}

// TracingAttributeInjector enriches the span created by otelgin
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if key := c.GetHeader(logger.IdempotencyKeyHeader); key != "" {
				span.SetAttributes(attribute.String(telemetry.SpanAttrIdempotencyKey, key))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker sets an error status on the server span when the response
// is a 4xx or 5xx. Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}

		msg := "Client Error"
		switch {
		case status >= http.StatusInternalServerError:
			msg = "Internal Server Error"
		case status == http.StatusNotFound:
			msg = "Not Found"
		case status == http.StatusConflict:
			msg = "Conflict"
		case status == http.StatusUnprocessableEntity:
			msg = "Unprocessable Entity"
		}
		span.SetStatus(codes.Error, msg)
		span.SetAttributes(attribute.Int("http.status_code", status))
		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last().Err)
		}
	}
}
