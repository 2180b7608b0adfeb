package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	jwtpkg "github.com/piresc/finstorage/internal/pkg/jwt"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/requestcontext"
)

// OkapiConfig controls how tenant and user are resolved from Okapi headers
type OkapiConfig struct {
	ServiceName   string
	DefaultTenant string
	Auth          models.AuthConfig
}

// OkapiMiddleware resolves the tenant and the acting user of a request and
// binds them to the request context. The tenant header wins over the token
// claim, the configured default applies when neither is present.
func OkapiMiddleware(cfg OkapiConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := requestcontext.FromEchoContext(c)
			reqCtx.ServiceName = cfg.ServiceName

			token := c.Request().Header.Get(requestcontext.HeaderToken)
			switch {
			case token != "":
				claims, err := jwtpkg.ParseOkapiToken(token, cfg.Auth.TokenSecret)
				if err != nil {
					logger.Warn("Rejected Okapi token",
						logger.String("path", c.Request().URL.Path),
						logger.Err(err))
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"statusCode": http.StatusUnauthorized,
						"message":    "Invalid X-Okapi-Token",
					})
				}
				if reqCtx.Tenant == "" {
					reqCtx.Tenant = claims.Tenant
				}
				if reqCtx.UserID == "" {
					reqCtx.UserID = claims.UserID
				}
			case cfg.Auth.RequireToken:
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "X-Okapi-Token header is required",
				})
			}

			if reqCtx.Tenant == "" {
				reqCtx.Tenant = cfg.DefaultTenant
			}
			reqCtx.Tenant = strings.ToLower(reqCtx.Tenant)
			if reqCtx.Tenant == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"statusCode": http.StatusBadRequest,
					"message":    "X-Okapi-Tenant header is required",
				})
			}

			c.Set("request_context", reqCtx)
			c.Set("tenant", reqCtx.Tenant)
			if reqCtx.UserID != "" {
				c.Set("user_id", reqCtx.UserID)
			}
			c.SetRequest(c.Request().WithContext(requestcontext.WithRequestContext(c.Request().Context(), reqCtx)))
			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)

			return next(c)
		}
	}
}

// GetRequestContext extracts request context from Echo context
func GetRequestContext(c echo.Context) *requestcontext.RequestContext {
	if reqCtx, ok := c.Get("request_context").(*requestcontext.RequestContext); ok {
		return reqCtx
	}
	return nil
}
