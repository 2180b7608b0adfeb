package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetBudget returns a budget with its derived totals
func (h *TransactionHandler) GetBudget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	budget, err := h.transactionUC.GetBudget(c.Request().Context(), id)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget deletes a budget that holds no money
func (h *TransactionHandler) DeleteBudget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	if err := h.transactionUC.DeleteBudget(c.Request().Context(), id); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
