package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey type for context keys to avoid collisions
type ContextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey ContextKey = "request_id"
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "user_id"
	// TenantKey is the context key for the Okapi tenant
	TenantKey ContextKey = "tenant"
	// ServiceNameKey is the context key for service name
	ServiceNameKey ContextKey = "service_name"
)

const (
	// HeaderTenant carries the tenant id on every Okapi request
	HeaderTenant = "X-Okapi-Tenant"
	// HeaderToken carries the Okapi JWT
	HeaderToken = "X-Okapi-Token"
	// HeaderUserID is set by Okapi once the token was validated upstream
	HeaderUserID = "X-Okapi-User-Id"
)

// RequestContext holds request-specific information
type RequestContext struct {
	RequestID   string
	UserID      string
	Tenant      string
	ServiceName string
	StartTime   time.Time
}

// WithRequestContext adds request context to the given context
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, reqCtx.RequestID)
	ctx = context.WithValue(ctx, UserIDKey, reqCtx.UserID)
	ctx = context.WithValue(ctx, TenantKey, reqCtx.Tenant)
	ctx = context.WithValue(ctx, ServiceNameKey, reqCtx.ServiceName)
	return ctx
}

// WithTenant returns a copy of ctx bound to tenant
func WithTenant(ctx context.Context, tenant string) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

// WithUserID returns a copy of ctx carrying the acting user
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// FromEchoContext extracts request context from Echo context
func FromEchoContext(c echo.Context) *RequestContext {
	req := c.Request()
	reqCtx := &RequestContext{
		StartTime: time.Now(),
		Tenant:    req.Header.Get(HeaderTenant),
		UserID:    req.Header.Get(HeaderUserID),
	}

	if requestID := req.Header.Get(echo.HeaderXRequestID); requestID != "" {
		reqCtx.RequestID = requestID
	} else {
		reqCtx.RequestID = uuid.New().String()
	}

	if userID, ok := c.Get("user_id").(string); ok && userID != "" {
		reqCtx.UserID = userID
	}

	return reqCtx
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetTenant extracts the tenant id from context
func GetTenant(ctx context.Context) string {
	if tenant, ok := ctx.Value(TenantKey).(string); ok {
		return tenant
	}
	return ""
}

// GetServiceName extracts service name from context
func GetServiceName(ctx context.Context) string {
	if serviceName, ok := ctx.Value(ServiceNameKey).(string); ok {
		return serviceName
	}
	return ""
}
