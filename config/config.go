package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Upstream      UpstreamConfig
	Session       SessionConfig
	RateLimit     RateLimitConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
	AppEnv  string
	BaseURL string
}

// UpstreamConfig configures the client for the upstream recipe/account API.
type UpstreamConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	RetryMaxGET     int // extra attempts for idempotent GETs; writes are never retried
	BreakerDisabled bool
}

type SessionConfig struct {
	Secret       string
	TTLMinutes   int
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "2020")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:2020")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	v.SetDefault("UPSTREAM_RETRY_MAX_GET", 2)
	v.SetDefault("UPSTREAM_BREAKER_DISABLED", false)
	v.SetDefault("SESSION_TTL_MINUTES", 15)
	v.SetDefault("SESSION_COOKIE_NAME", "recipenest_session")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	// Parity with the old front-end limiter: 100 requests per 3 minutes.
	v.SetDefault("RATE_LIMIT_RPS", 0.55)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("O11Y_BE_SERVICE_NAME", "recipenest-web")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "recipenest")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "recipenest-web")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
			AppEnv:  v.GetString("APP_ENV"),
			BaseURL: v.GetString("BASE_URL"),
		},
		Upstream: UpstreamConfig{
			BaseURL:         strings.TrimSuffix(v.GetString("UPSTREAM_API_URL"), "/"),
			TimeoutSeconds:  v.GetInt("UPSTREAM_TIMEOUT_SECONDS"),
			RetryMaxGET:     v.GetInt("UPSTREAM_RETRY_MAX_GET"),
			BreakerDisabled: v.GetBool("UPSTREAM_BREAKER_DISABLED"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			TTLMinutes:   v.GetInt("SESSION_TTL_MINUTES"),
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_API_URL is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}
	return nil
}

// SessionTTL returns the configured session lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// UpstreamTimeout returns the per-call timeout for upstream requests
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
