package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/grafana/pyroscope-go"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Profiler runs Pyroscope continuous profiling. Mutex and block profiles are
// collected because sale transactions contend on product row locks.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	mu       sync.Mutex
}

// NewProfiler starts profiling when enabled
func NewProfiler(cfg config.TelemetryConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.ProfilingEnabled {
		return p, nil
	}
	if cfg.ProfilingServerURL == "" {
		return nil, fmt.Errorf("profiling server url is required when profiling is enabled")
	}

	runtime.SetMutexProfileFraction(5)
	runtime.SetBlockProfileRate(5)

	tags := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.ProfilingServerURL,
		Logger:          pyroscopeLogger{logger: logger.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Profiling enabled", zap.String("server_address", cfg.ProfilingServerURL))
	return p, nil
}

// IsEnabled reports whether the profiler is running
func (p *Profiler) IsEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profiler != nil
}

// Stop flushes and stops the profiler. Safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.profiler == nil {
		return nil
	}
	err := p.profiler.Stop()
	p.profiler = nil
	return err
}

type pyroscopeLogger struct {
	logger *zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.logger.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.logger.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.logger.Errorf(format, args...) }

// Profiling label keys
const (
	ProfilingLabelRoute   = "route"
	ProfilingLabelMethod  = "method"
	ProfilingLabelVariant = "variant"
)

const maxLabelValueLength = 128

// WithProfilingLabels runs fn with pprof labels attached so CPU samples can be
// filtered by route or sale variant. Empty values are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	var kv []string
	for k, v := range labels {
		if v == "" {
			continue
		}
		if len(v) > maxLabelValueLength {
			v = v[:maxLabelValueLength]
		}
		kv = append(kv, strings.ToLower(k), v)
	}
	if len(kv) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(kv...), fn)
}
