package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &ZapLogger{Logger: zap.New(core)}, logs
}

func TestNewZapLogger(t *testing.T) {
	l, err := NewZapLogger(ZapConfig{Level: "debug", Type: "console", ServiceName: "finance-storage"}, nil)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = NewZapLogger(ZapConfig{Level: "not-a-level"}, nil)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestFromContext(t *testing.T) {
	l, logs := observed(zapcore.InfoLevel)
	ctx := ToContext(context.Background(), l.With(String("tenant", "diku")))

	InfoCtx(ctx, "committed", Int("count", 2))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "committed", entry.Message)
	assert.Equal(t, "diku", entry.ContextMap()["tenant"])
	assert.EqualValues(t, 2, entry.ContextMap()["count"])
}

func TestGlobalLogger(t *testing.T) {
	l, logs := observed(zapcore.DebugLevel)
	prev := GetGlobalLogger()
	SetGlobalLogger(l)
	defer SetGlobalLogger(prev)

	Info("info")
	Warn("warn")
	Debug("debug")
	Error("error", Err(errors.New("boom")))

	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, "boom", logs.FilterMessage("error").All()[0].ContextMap()["error"])
}

func TestZapEchoMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		handler echo.HandlerFunc
		status  int
		level   zapcore.Level
	}{
		{
			name:    "success",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
			status:  http.StatusNoContent,
			level:   zapcore.InfoLevel,
		},
		{
			name:    "client error",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "bad") },
			status:  http.StatusBadRequest,
			level:   zapcore.WarnLevel,
		},
		{
			name:    "server error",
			handler: func(c echo.Context) error { return errors.New("database down") },
			status:  http.StatusInternalServerError,
			level:   zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, logs := observed(zapcore.DebugLevel)
			e := echo.New()
			e.Use(ZapEchoMiddleware(l))
			e.POST("/finance-storage/transactions", tt.handler)

			req := httptest.NewRequest(http.MethodPost, "/finance-storage/transactions", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.EqualValues(t, tt.status, entry.ContextMap()["status"])
		})
	}
}
