package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health probes and the API docs
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health", "/healthz", "/ready"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// Profiling attaches route and method pprof labels to the request so
// Pyroscope profiles can be filtered per endpoint.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.Contains(cfg.SkipPaths, path) {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  c.FullPath(),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
