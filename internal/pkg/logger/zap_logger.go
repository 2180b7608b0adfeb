package logger

import (
	"os"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/finstorage/internal/pkg/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap with the service name and an optional New Relic application
type ZapLogger struct {
	*zap.Logger
	service string
	nrApp   *newrelic.Application
}

// ZapConfig holds Zap logger configuration
type ZapConfig struct {
	Level       string `json:"level" mapstructure:"level"`
	Type        string `json:"type" mapstructure:"type"` // "json" or "console"
	ServiceName string `json:"service_name" mapstructure:"service_name"`
}

// newRelicCore forwards log entries to New Relic log management
type newRelicCore struct {
	level   zapcore.Level
	service string
	fields  []zapcore.Field
	nrApp   *newrelic.Application
}

func (c *newRelicCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *newRelicCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return &clone
}

func (c *newRelicCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *newRelicCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.nrApp == nil {
		return nil
	}

	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(encoder)
	}
	for _, field := range fields {
		field.AddTo(encoder)
	}

	attrs := encoder.Fields
	attrs["service"] = c.service
	attrs["caller"] = entry.Caller.TrimmedPath()
	if entry.Stack != "" {
		attrs["stacktrace"] = entry.Stack
	}

	c.nrApp.RecordLog(newrelic.LogData{
		Timestamp:  entry.Time.UnixMilli(),
		Message:    entry.Message,
		Severity:   entry.Level.String(),
		Attributes: attrs,
	})
	return nil
}

func (c *newRelicCore) Sync() error {
	return nil
}

// NewZapLogger creates a new Zap application logger writing to stdout
func NewZapLogger(config ZapConfig, nrApp *newrelic.Application) (*ZapLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(config.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if config.Type == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)}
	if nrApp != nil {
		cores = append(cores, &newRelicCore{level: level, service: config.ServiceName, nrApp: nrApp})
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if config.ServiceName != "" {
		logger = logger.With(zap.String("service", config.ServiceName))
	}

	return &ZapLogger{
		Logger:  logger,
		service: config.ServiceName,
		nrApp:   nrApp,
	}, nil
}

// InitZapLoggerFromConfig initializes Zap logger directly from config models
func InitZapLoggerFromConfig(configs *models.Config, nrApp *newrelic.Application) (*ZapLogger, error) {
	return NewZapLogger(ZapConfig{
		Level:       configs.Logger.Level,
		Type:        configs.Logger.Type,
		ServiceName: configs.App.Name,
	}, nrApp)
}

// NewNopLogger returns a logger that discards everything, used in tests
func NewNopLogger() *ZapLogger {
	return &ZapLogger{Logger: zap.NewNop()}
}

// Close flushes buffered entries
func (zl *ZapLogger) Close() error {
	return zl.Logger.Sync()
}

// With returns a child logger carrying the given fields
func (zl *ZapLogger) With(fields ...Field) *ZapLogger {
	return &ZapLogger{Logger: zl.Logger.With(fields...), service: zl.service, nrApp: zl.nrApp}
}

// WithNewRelicContext adds trace correlation fields from the New Relic transaction
func (zl *ZapLogger) WithNewRelicContext(txn *newrelic.Transaction) *ZapLogger {
	if txn == nil {
		return zl
	}
	md := txn.GetLinkingMetadata()
	if md.TraceID == "" {
		return zl
	}
	return zl.With(zap.String("trace.id", md.TraceID), zap.String("span.id", md.SpanID))
}

// WithError creates a logger with an error field
func (zl *ZapLogger) WithError(err error) *ZapLogger {
	return zl.With(zap.Error(err))
}

// LogHTTPRequest logs one served request at a level derived from the status code
func (zl *ZapLogger) LogHTTPRequest(txn *newrelic.Transaction, req HTTPRequestLog) {
	l := zl.WithNewRelicContext(txn).With(
		zap.Int("status", req.Status),
		zap.Int64("latency_ms", req.Latency.Milliseconds()),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("client_ip", req.ClientIP),
		zap.String("tenant", req.Tenant),
		zap.String("user_id", req.UserID),
		zap.String("request_id", req.RequestID),
	)

	switch {
	case req.Status >= 500:
		l.Error("Server error", zap.Error(req.Err))
	case req.Status >= 400:
		l.Warn("Client error", zap.Error(req.Err))
	default:
		l.Info("Request processed")
	}
}
