package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Sales     SalesConfig
	Swagger   SwaggerConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres, mysql, sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string // file path for sqlite
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int           // in minutes
	ConnMaxIdleTime int           // in minutes
	LockTimeout     time.Duration // how long a transaction waits for a row lock
	SlowQueryThresh time.Duration
}

// RedisConfig holds Redis connection settings.
// An empty Host disables Redis and the in-memory idempotency store is used.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// SalesConfig holds sale transaction settings
type SalesConfig struct {
	TransactionTimeout time.Duration // upper bound for one sale transaction
	IdempotencyEnabled bool
	IdempotencyTTL     time.Duration
	IdempotencyLockTTL time.Duration
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled    bool
	AllowedIPs []string // IP whitelist (empty = allow all)
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	// Database tracing options
	DBTraceEnabled bool // Enable database query tracing (otelgorm)
	DBLogFullSQL   bool // Log full SQL statements (dev only)
	// Metrics and log export
	MetricsEnabled        bool
	MetricsExportInterval time.Duration
	LogExportEnabled      bool
	// Continuous profiling
	ProfilingEnabled   bool
	ProfilingServerURL string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with JEWELRY_ prefix (e.g., JEWELRY_DATABASE_PASSWORD), including values from .env
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/jewelry")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("JEWELRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("sales.idempotency_enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			LockTimeout:     v.GetDuration("database.lock_timeout"),
			SlowQueryThresh: v.GetDuration("database.slow_query_threshold"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Sales: SalesConfig{
			TransactionTimeout: v.GetDuration("sales.transaction_timeout"),
			IdempotencyEnabled: v.GetBool("sales.idempotency_enabled"),
			IdempotencyTTL:     v.GetDuration("sales.idempotency_ttl"),
			IdempotencyLockTTL: v.GetDuration("sales.idempotency_lock_ttl"),
		},
		Swagger: SwaggerConfig{
			Enabled:    v.GetBool("swagger.enabled"),
			AllowedIPs: v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:               v.GetBool("telemetry.enabled"),
			CollectorEndpoint:     v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:         v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:           v.GetString("telemetry.service_name"),
			Insecure:              v.GetBool("telemetry.insecure"),
			DBTraceEnabled:        v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:          v.GetBool("telemetry.db_log_full_sql"),
			MetricsEnabled:        v.GetBool("telemetry.metrics_enabled"),
			MetricsExportInterval: v.GetDuration("telemetry.metrics_export_interval"),
			LogExportEnabled:      v.GetBool("telemetry.log_export_enabled"),
			ProfilingEnabled:      v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerURL:    v.GetString("telemetry.profiling_server_url"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "jewelry-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverPostgres
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		switch cfg.Database.Driver {
		case DriverMySQL:
			cfg.Database.Port = 3306
		default:
			cfg.Database.Port = 5432
		}
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "jewelry"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.LockTimeout == 0 {
		cfg.Database.LockTimeout = 5 * time.Second
	}
	if cfg.Database.SlowQueryThresh == 0 {
		cfg.Database.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 2 << 20 // 2MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// No CORS origin default: cross-origin requests stay blocked until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID", "Idempotency-Key"}
	}
	if cfg.Sales.TransactionTimeout == 0 {
		cfg.Sales.TransactionTimeout = 10 * time.Second
	}
	if cfg.Sales.IdempotencyTTL == 0 {
		cfg.Sales.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.Sales.IdempotencyLockTTL == 0 {
		cfg.Sales.IdempotencyLockTTL = 30 * time.Second
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "jewelry-backend"
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
	if cfg.Telemetry.ProfilingServerURL == "" {
		cfg.Telemetry.ProfilingServerURL = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be one of postgres, mysql, sqlite, got %q", c.Database.Driver)
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Sales.TransactionTimeout < 0 {
		return fmt.Errorf("sales.transaction_timeout cannot be negative")
	}

	if c.App.Env == "production" {
		if c.Database.Driver == DriverSQLite {
			return fmt.Errorf("database.driver sqlite is not supported in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.Driver == DriverPostgres && c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Swagger.Enabled && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled or IP restricted in production")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the connection string for the configured driver with properly escaped values
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName)
		if d.LockTimeout > 0 {
			// the driver sends unknown params as SET on every new pooled connection
			dsn += fmt.Sprintf("&innodb_lock_wait_timeout=%d", mysqlLockWaitSeconds(d.LockTimeout))
		}
		return dsn
	case DriverSQLite:
		return d.DBName
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// mysqlLockWaitSeconds rounds up to whole seconds, the unit of innodb_lock_wait_timeout
func mysqlLockWaitSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}

// MigrationURL returns the golang-migrate database URL for the configured driver
func (d *DatabaseConfig) MigrationURL() string {
	switch d.Driver {
	case DriverMySQL:
		return "mysql://" + fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?multiStatements=true",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	case DriverSQLite:
		return "sqlite3://" + d.DBName
	}
	return d.DSN()
}

// RedisEnabled reports whether a Redis host is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}
