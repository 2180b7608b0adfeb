package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SERVER_PORT", "9130")
	t.Setenv("LOCK_EXPIRY", "30000")
	t.Setenv("EVENTS_BROKER", "NSQ")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.25")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("TENANT_DEFAULT", "diku")

	cfg := InitConfig("does-not-exist.env")

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, 9130, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Lock.Expiry)
	assert.Equal(t, "nsq", cfg.Events.Broker)
	assert.Equal(t, 0.25, cfg.Breaker.FailureRatio)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "diku", cfg.Tenant.Default)
	assert.Equal(t, "_mod_finance_storage", cfg.Tenant.SchemaSuffix)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_BAD_INT", "forty-two")
	t.Setenv("CFG_BOOL", "true")
	t.Setenv("CFG_DURATION", "1m")
	t.Setenv("CFG_BAD_DURATION", "soon")

	assert.Equal(t, "fallback", GetEnv("CFG_UNSET", "fallback"))
	assert.Equal(t, 42, GetEnvAsInt("CFG_INT", 0))
	assert.Equal(t, 7, GetEnvAsInt("CFG_BAD_INT", 7))
	assert.True(t, GetEnvAsBool("CFG_BOOL", false))
	assert.Equal(t, time.Minute, GetEnvAsDuration("CFG_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDuration("CFG_BAD_DURATION", time.Second))
}
