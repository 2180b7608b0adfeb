package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/finstorage/internal/pkg/jwt"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/requestcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOkapiMiddleware(t *testing.T) {
	const secret = "okapi-secret"
	validToken, err := jwtpkg.GenerateToken("user-1", "college", "jdoe", secret, time.Hour)
	require.NoError(t, err)
	forged, err := jwtpkg.GenerateToken("user-1", "college", "jdoe", "other-secret", time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name         string
		cfg          OkapiConfig
		headers      map[string]string
		expectStatus int
		expectTenant string
		expectUser   string
	}{
		{
			name:         "tenant header is lower cased",
			cfg:          OkapiConfig{DefaultTenant: "diku"},
			headers:      map[string]string{requestcontext.HeaderTenant: "College", requestcontext.HeaderUserID: "user-9"},
			expectStatus: http.StatusOK,
			expectTenant: "college",
			expectUser:   "user-9",
		},
		{
			name:         "default tenant without header",
			cfg:          OkapiConfig{DefaultTenant: "diku"},
			expectStatus: http.StatusOK,
			expectTenant: "diku",
		},
		{
			name:         "no tenant at all",
			cfg:          OkapiConfig{},
			expectStatus: http.StatusBadRequest,
		},
		{
			name:         "tenant and user from token",
			cfg:          OkapiConfig{Auth: models.AuthConfig{TokenSecret: secret}},
			headers:      map[string]string{requestcontext.HeaderToken: validToken},
			expectStatus: http.StatusOK,
			expectTenant: "college",
			expectUser:   "user-1",
		},
		{
			name:         "forged token",
			cfg:          OkapiConfig{Auth: models.AuthConfig{TokenSecret: secret}},
			headers:      map[string]string{requestcontext.HeaderToken: forged},
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:         "token required but missing",
			cfg:          OkapiConfig{DefaultTenant: "diku", Auth: models.AuthConfig{RequireToken: true}},
			expectStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			e := echo.New()
			var gotTenant, gotUser string
			handler := OkapiMiddleware(tc.cfg)(func(c echo.Context) error {
				gotTenant = requestcontext.GetTenant(c.Request().Context())
				gotUser = requestcontext.GetUserID(c.Request().Context())
				return c.NoContent(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/finance-storage/budgets/b-1", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// Act
			err := handler(c)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectStatus, rec.Code)
			if tc.expectStatus == http.StatusOK {
				assert.Equal(t, tc.expectTenant, gotTenant)
				assert.Equal(t, tc.expectUser, gotUser)
				assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
			}
		})
	}
}
