package middleware

import (
	"github.com/labstack/echo/v4"

	nrpkg "github.com/piresc/finstorage/internal/pkg/newrelic"
)

const (
	attrGroupID  = "finance.group_id"
	attrTxnType  = "finance.transaction_type"
	attrBatchSize = "finance.batch_size"
)

// SetGroupID tags the transaction with the order or invoice being committed
func SetGroupID(c echo.Context, groupID string) {
	if groupID == "" {
		return
	}
	nrpkg.AddTransactionAttribute(c.Request().Context(), attrGroupID, groupID)
}

// SetTransactionType tags the transaction with the finance transaction type
func SetTransactionType(c echo.Context, txnType string) {
	nrpkg.AddTransactionAttribute(c.Request().Context(), attrTxnType, txnType)
}

// SetBatchSize records how many entries a batch carried
func SetBatchSize(c echo.Context, n int) {
	nrpkg.AddTransactionAttribute(c.Request().Context(), attrBatchSize, n)
}
