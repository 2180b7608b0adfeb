package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Lock     LockConfig
	Tenant   TenantConfig
	Auth     AuthConfig
	Events   EventsConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	Breaker  BreakerConfig
	Retry    RetryConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
	Metrics  MetricsConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// LockConfig controls the named lock taken while a transaction group is staged
type LockConfig struct {
	Prefix     string
	Expiry     time.Duration
	Tries      int
	RetryDelay time.Duration
}

// TenantConfig describes how tenant schemas are resolved
type TenantConfig struct {
	Default      string
	SchemaSuffix string
}

// AuthConfig controls how the Okapi token is read. An empty secret means the
// signature was already verified by the gateway and is not checked again.
type AuthConfig struct {
	TokenSecret  string
	RequireToken bool
}

// EventsConfig selects the broker used to announce committed transactions
type EventsConfig struct {
	Enabled bool
	Broker  string // "nats" or "nsq"
	Topic   string
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ producer configuration
type NSQConfig struct {
	Address string
}

// BreakerConfig configures the circuit breaker around event publishing
type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// RetryConfig configures retries for event publishing
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// NewRelicConfig contains New Relic configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level string
	Type  string // "console" or "json"
}

// MetricsConfig toggles the prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Path    string
}
