package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// HTTPRequestLog is the set of attributes logged for every served request
type HTTPRequestLog struct {
	Method    string
	Path      string
	ClientIP  string
	Tenant    string
	UserID    string
	RequestID string
	Status    int
	Latency   time.Duration
	Err       error
}

// ZapEchoMiddleware logs each request and decorates the New Relic transaction
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := req.URL.Path
			if raw := req.URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			scoped := logger.With(String("request_id", requestID))
			c.SetRequest(req.WithContext(ToContext(req.Context(), scoped)))

			err := next(c)
			if err != nil {
				// let echo render the error so the logged status is the real one
				c.Error(err)
			}

			entry := HTTPRequestLog{
				Method:    req.Method,
				Path:      path,
				ClientIP:  c.RealIP(),
				Tenant:    stringValue(c.Get("tenant")),
				UserID:    stringValue(c.Get("user_id")),
				RequestID: requestID,
				Status:    c.Response().Status,
				Latency:   time.Since(start),
				Err:       err,
			}
			if entry.UserID == "" {
				entry.UserID = "anonymous"
			}

			txn := newrelic.FromContext(c.Request().Context())
			if txn != nil {
				txn.AddAttribute("tenant", entry.Tenant)
				txn.AddAttribute("request_id", entry.RequestID)
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(txn, entry)
			return nil
		}
	}
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
