package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/finstorage/internal/pkg/metrics"
	"github.com/piresc/finstorage/internal/pkg/middleware"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions/mocks"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := echo.New()
	h := NewHandler(mocks.NewMockTransactionUC(ctrl), metrics.New("finance_storage"), "")
	h.RegisterRoutes(e, middleware.OkapiMiddleware(middleware.OkapiConfig{DefaultTenant: "diku"}))

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"POST /finance-storage/transactions",
		"PUT /finance-storage/transactions/:id",
		"GET /finance-storage/transactions/:id",
		"POST /finance-storage/transactions/batch-all-or-nothing",
		"POST /finance-storage/order-transaction-summaries",
		"PUT /finance-storage/order-transaction-summaries/:id",
		"POST /finance-storage/invoice-transaction-summaries",
		"PUT /finance-storage/invoice-transaction-summaries/:id",
		"GET /finance-storage/budgets/:id",
		"DELETE /finance-storage/budgets/:id",
		"GET /metrics",
	} {
		assert.True(t, registered[route], route)
	}
}

func TestRegisterRoutes_ServesThroughTenantMiddleware(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockUC := mocks.NewMockTransactionUC(ctrl)
	mockUC.EXPECT().GetBudget(gomock.Any(), "5f1d4c3e-8a4b-4b77-9d6b-1c2a3b4c5d6e").
		Return(&models.Budget{ID: "5f1d4c3e-8a4b-4b77-9d6b-1c2a3b4c5d6e"}, nil)

	e := echo.New()
	NewHandler(mockUC, nil, "").RegisterRoutes(e, middleware.OkapiMiddleware(middleware.OkapiConfig{DefaultTenant: "diku"}))

	// Act
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/finance-storage/budgets/5f1d4c3e-8a4b-4b77-9d6b-1c2a3b4c5d6e", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRegisterRoutes_UnknownRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := echo.New()
	NewHandler(mocks.NewMockTransactionUC(ctrl), nil, "").RegisterRoutes(e, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/finance-storage/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"statusCode":404`)
}
