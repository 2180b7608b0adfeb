package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// InitConfig loads the .env file in local mode and builds the config from the environment
func InitConfig(configPath string) *models.Config {
	if GetEnv("APP_ENV", "local") == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "mod-finance-storage")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8081)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 30)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 30)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "localhost")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "okapi_modules")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 20)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 5)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "localhost")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 10)

	// Named lock config
	configs.Lock.Prefix = GetEnv("LOCK_PREFIX", "finance:lock:")
	configs.Lock.Expiry = GetEnvAsDuration("LOCK_EXPIRY", 30*time.Second)
	configs.Lock.Tries = GetEnvAsInt("LOCK_TRIES", 64)
	configs.Lock.RetryDelay = GetEnvAsDuration("LOCK_RETRY_DELAY", 250*time.Millisecond)

	// Tenant config
	configs.Tenant.Default = GetEnv("TENANT_DEFAULT", "")
	configs.Tenant.SchemaSuffix = GetEnv("TENANT_SCHEMA_SUFFIX", "_mod_finance_storage")

	// Auth config
	configs.Auth.TokenSecret = GetEnv("OKAPI_TOKEN_SECRET", "")
	configs.Auth.RequireToken = GetEnvAsBool("OKAPI_REQUIRE_TOKEN", false)

	// Events config
	configs.Events.Enabled = GetEnvAsBool("EVENTS_ENABLED", false)
	configs.Events.Broker = strings.ToLower(GetEnv("EVENTS_BROKER", "nats"))
	configs.Events.Topic = GetEnv("EVENTS_TOPIC", "finance.transactions.committed")

	// NATS / NSQ config
	configs.NATS.URL = GetEnv("NATS_URL", "nats://localhost:4222")
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "localhost:4150")

	// Circuit breaker config
	configs.Breaker.MaxRequests = uint32(GetEnvAsInt("BREAKER_MAX_REQUESTS", 1))
	configs.Breaker.Interval = GetEnvAsDuration("BREAKER_INTERVAL", 60*time.Second)
	configs.Breaker.Timeout = GetEnvAsDuration("BREAKER_TIMEOUT", 30*time.Second)
	configs.Breaker.FailureRatio = GetEnvAsFloat("BREAKER_FAILURE_RATIO", 0.5)
	configs.Breaker.MinRequests = uint32(GetEnvAsInt("BREAKER_MIN_REQUESTS", 5))

	// Retry config
	configs.Retry.MaxAttempts = GetEnvAsInt("RETRY_MAX_ATTEMPTS", 3)
	configs.Retry.InitialDelay = GetEnvAsDuration("RETRY_INITIAL_DELAY", 100*time.Millisecond)
	configs.Retry.MaxDelay = GetEnvAsDuration("RETRY_MAX_DELAY", 2*time.Second)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", configs.App.Name)
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.LogsEnabled = GetEnvAsBool("NEW_RELIC_LOGS_ENABLED", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.Type = GetEnv("LOG_TYPE", "json")

	// Metrics config
	configs.Metrics.Enabled = GetEnvAsBool("METRICS_ENABLED", true)
	configs.Metrics.Path = GetEnv("METRICS_PATH", "/metrics")

	return configs
}

// GetEnv returns the variable or defaultValue when unset or empty
func GetEnv(key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	if GetEnv(key, "") == "" {
		return defaultValue
	}
	value, err := cast.ToIntE(env.Get(key))
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	if GetEnv(key, "") == "" {
		return defaultValue
	}
	value, err := cast.ToBoolE(env.Get(key))
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if GetEnv(key, "") == "" {
		return defaultValue
	}
	value, err := cast.ToFloat64E(env.Get(key))
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go duration strings ("30s") or plain milliseconds
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := cast.ToInt64E(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
	return defaultValue
}
