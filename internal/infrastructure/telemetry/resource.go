// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope profiling for the sales backend.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdownWithTimeout bounds a provider shutdown so a stuck exporter cannot hold up exit
func shutdownWithTimeout(ctx context.Context, what string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("failed to shutdown %s: %w", what, err)
	}
	return nil
}
