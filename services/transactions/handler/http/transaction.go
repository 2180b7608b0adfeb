package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/middleware"
	"github.com/piresc/finstorage/services/transactions"
)

// TransactionHandler handles HTTP requests for the transaction commit engine
type TransactionHandler struct {
	transactionUC transactions.TransactionUC
}

// NewTransactionHandler creates a new transaction HTTP handler
func NewTransactionHandler(transactionUC transactions.TransactionUC) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
	}
}

// CreateTransaction stages one transaction, committing its group when complete
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var txn models.Transaction
	if err := c.Bind(&txn); err != nil {
		return BadRequestResponse(c, err)
	}
	middleware.SetGroupID(c, txn.GroupID())
	middleware.SetTransactionType(c, string(txn.TransactionType))

	created, err := h.transactionUC.CreateTransaction(c.Request().Context(), &txn)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, c.Request().URL.Path+"/"+created.ID)
	return c.JSON(http.StatusCreated, created)
}

// UpdateTransaction stages the new state of an existing transaction
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	var txn models.Transaction
	if err := c.Bind(&txn); err != nil {
		return BadRequestResponse(c, err)
	}
	middleware.SetGroupID(c, txn.GroupID())

	if err := h.transactionUC.UpdateTransaction(c.Request().Context(), id, &txn); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTransaction returns one committed transaction
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}

	txn, err := h.transactionUC.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.JSON(http.StatusOK, txn)
}

// ProcessBatch commits a batch all or nothing
func (h *TransactionHandler) ProcessBatch(c echo.Context) error {
	var batch models.Batch
	if err := c.Bind(&batch); err != nil {
		return BadRequestResponse(c, err)
	}
	middleware.SetBatchSize(c, len(batch.TransactionsToCreate)+len(batch.TransactionsToUpdate)+
		len(batch.IdsOfTransactionsToDelete)+len(batch.TransactionPatches))

	if err := h.transactionUC.ProcessBatch(c.Request().Context(), &batch); err != nil {
		return ErrorResponseHandler(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
