package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/finstorage/internal/pkg/metrics"
	"github.com/piresc/finstorage/services/transactions"
	httpHandler "github.com/piresc/finstorage/services/transactions/handler/http"
)

// Handler combines all handlers for the finance storage service
type Handler struct {
	transactionHTTP *httpHandler.TransactionHandler
	metrics         *metrics.Collector
	metricsPath     string
}

// NewHandler creates a new combined handler. A nil collector disables /metrics.
func NewHandler(transactionUC transactions.TransactionUC, collector *metrics.Collector, metricsPath string) *Handler {
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Handler{
		transactionHTTP: httpHandler.NewTransactionHandler(transactionUC),
		metrics:         collector,
		metricsPath:     metricsPath,
	}
}

// RegisterRoutes registers all HTTP routes. Tenant resolution runs on the
// finance-storage group only so probes and scrapes need no Okapi headers.
func (h *Handler) RegisterRoutes(e *echo.Echo, okapi echo.MiddlewareFunc) {
	e.HTTPErrorHandler = httpHandler.HTTPErrorHandler

	if h.metrics != nil {
		e.GET(h.metricsPath, echo.WrapHandler(h.metrics.Handler()))
	}

	var mw []echo.MiddlewareFunc
	if okapi != nil {
		mw = append(mw, okapi)
	}
	fs := e.Group("/finance-storage", mw...)

	txns := fs.Group("/transactions")
	txns.POST("", h.transactionHTTP.CreateTransaction)
	txns.POST("/batch-all-or-nothing", h.transactionHTTP.ProcessBatch)
	txns.GET("/:id", h.transactionHTTP.GetTransaction)
	txns.PUT("/:id", h.transactionHTTP.UpdateTransaction)

	orders := fs.Group("/order-transaction-summaries")
	orders.POST("", h.transactionHTTP.CreateOrderSummary)
	orders.PUT("/:id", h.transactionHTTP.UpdateOrderSummary)

	invoices := fs.Group("/invoice-transaction-summaries")
	invoices.POST("", h.transactionHTTP.CreateInvoiceSummary)
	invoices.PUT("/:id", h.transactionHTTP.UpdateInvoiceSummary)

	budgets := fs.Group("/budgets")
	budgets.GET("/:id", h.transactionHTTP.GetBudget)
	budgets.DELETE("/:id", h.transactionHTTP.DeleteBudget)
}
