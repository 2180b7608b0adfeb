package transactions

import (
	"context"

	"github.com/piresc/finstorage/internal/pkg/models"
)

// TransactionUC defines the interface for the transaction commit engine
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/finstorage/services/transactions TransactionUC
type TransactionUC interface {
	CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, txn *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ProcessBatch(ctx context.Context, batch *models.Batch) error

	SaveOrderSummary(ctx context.Context, summary *models.OrderTransactionSummary) error
	SaveInvoiceSummary(ctx context.Context, summary *models.InvoiceTransactionSummary) error

	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error
}
