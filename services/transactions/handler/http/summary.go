package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
)

// CreateOrderSummary declares how many encumbrances an order will stage
func (h *TransactionHandler) CreateOrderSummary(c echo.Context) error {
	var summary models.OrderTransactionSummary
	if err := c.Bind(&summary); err != nil {
		return BadRequestResponse(c, err)
	}

	if err := h.transactionUC.SaveOrderSummary(c.Request().Context(), &summary); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.JSON(http.StatusCreated, summary)
}

// UpdateOrderSummary re-declares the count, reopening the order for staging
func (h *TransactionHandler) UpdateOrderSummary(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	var summary models.OrderTransactionSummary
	if err := c.Bind(&summary); err != nil {
		return BadRequestResponse(c, err)
	}
	if err := matchID(id, &summary.ID); err != nil {
		return ErrorResponseHandler(c, err)
	}

	if err := h.transactionUC.SaveOrderSummary(c.Request().Context(), &summary); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateInvoiceSummary declares the pending payments and payments/credits of an invoice
func (h *TransactionHandler) CreateInvoiceSummary(c echo.Context) error {
	var summary models.InvoiceTransactionSummary
	if err := c.Bind(&summary); err != nil {
		return BadRequestResponse(c, err)
	}

	if err := h.transactionUC.SaveInvoiceSummary(c.Request().Context(), &summary); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.JSON(http.StatusCreated, summary)
}

// UpdateInvoiceSummary re-declares the counts of an invoice
func (h *TransactionHandler) UpdateInvoiceSummary(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	var summary models.InvoiceTransactionSummary
	if err := c.Bind(&summary); err != nil {
		return BadRequestResponse(c, err)
	}
	if err := matchID(id, &summary.ID); err != nil {
		return ErrorResponseHandler(c, err)
	}

	if err := h.transactionUC.SaveInvoiceSummary(c.Request().Context(), &summary); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// matchID fills an empty body id from the path and rejects a different one
func matchID(pathID string, bodyID *string) error {
	if *bodyID == "" {
		*bodyID = pathID
		return nil
	}
	if *bodyID != pathID {
		return apperror.BadRequest(apperror.CodeIDMismatch, apperror.Param("id", *bodyID))
	}
	return nil
}
