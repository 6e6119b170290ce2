package logger

import (
	"os"
	"strings"

	"github.com/jewelry/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Options controls how the process logger is built
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // json, console
	Output  string // stdout, stderr, or file path
	Service string
	Env     string
}

// OptionsFromConfig builds logger options from application configuration.
// Production always logs JSON regardless of the configured format.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
	}
	if opts.Env == "production" {
		opts.Format = "json"
	}
	return opts
}

// New creates a zap logger. Every entry carries the service and env fields
// when they are set.
func New(opts Options) (*zap.Logger, error) {
	writer, err := openWriter(opts.Output)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(opts.Format), writer, parseLevel(opts.Level))
	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	var fields []zap.Field
	if opts.Service != "" {
		fields = append(fields, zap.String("service", opts.Service))
	}
	if opts.Env != "" {
		fields = append(fields, zap.String("env", opts.Env))
	}
	return logger.With(fields...), nil
}

// NewForEnvironment creates a stdout logger: JSON in production, console elsewhere
func NewForEnvironment(env string) (*zap.Logger, error) {
	format := "console"
	if env == "production" {
		format = "json"
	}
	return New(Options{Level: "info", Format: format, Output: "stdout", Env: env})
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if strings.EqualFold(format, "console") {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// openWriter resolves stdout, stderr or a file path. Unlike stdout, a log
// file that cannot be opened is a startup error.
func openWriter(output string) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	}
	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}

// Sync flushes buffered entries. Syncing a terminal returns EINVAL on
// some platforms, which is not worth reporting.
func Sync(logger *zap.Logger) error {
	err := logger.Sync()
	if err != nil && strings.Contains(err.Error(), "invalid argument") {
		return nil
	}
	return err
}
