package transactions

import (
	"context"
	"errors"

	"github.com/piresc/finstorage/internal/pkg/models"
)

// ErrNotFound is returned by single row lookups that matched nothing
var ErrNotFound = errors.New("not found")

// TransactionRepo defines the data access of the finance storage tables. The
// tenant schema is resolved from the request context.
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/finstorage/services/transactions TransactionRepo,TransactionTx
type TransactionRepo interface {
	// WithTx runs fn inside one database transaction, committing when fn returns nil
	WithTx(ctx context.Context, fn func(tx TransactionTx) error) error

	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	GetBudget(ctx context.Context, id string) (*models.Budget, error)

	GetSummary(ctx context.Context, family models.SummaryFamily, id string) (*models.TransactionSummary, error)
	SaveOrderSummary(ctx context.Context, summary *models.OrderTransactionSummary) error
	SaveInvoiceSummary(ctx context.Context, summary *models.InvoiceTransactionSummary) error

	// Staging is committed on its own so staged rows survive a failed commit
	StageTransaction(ctx context.Context, stage models.Stage, txn *models.Transaction) error
	CountStaged(ctx context.Context, stage models.Stage, groupID string) (int, error)
}

// TransactionTx is the set of operations available inside a commit
type TransactionTx interface {
	GetSummaryForUpdate(ctx context.Context, family models.SummaryFamily, id string) (*models.TransactionSummary, error)
	MarkStageProcessed(ctx context.Context, stage models.Stage, id string) error
	GetStagedTransactions(ctx context.Context, stage models.Stage, groupID string) ([]*models.Transaction, error)
	DeleteStagedTransactions(ctx context.Context, stage models.Stage, groupID string) error

	GetTransactionsByIDs(ctx context.Context, ids []string) ([]*models.Transaction, error)
	GetPendingPaymentsByInvoice(ctx context.Context, invoiceID string) ([]*models.Transaction, error)
	// GetReferencingIDs maps each id to the transactions still pointing at it
	GetReferencingIDs(ctx context.Context, ids []string) (map[string][]string, error)

	// LockBudgets selects the budgets FOR UPDATE in id order
	LockBudgets(ctx context.Context, keys []models.BudgetKey) ([]*models.Budget, error)
	GetFunds(ctx context.Context, ids []string) ([]*models.Fund, error)
	GetLedgers(ctx context.Context, ids []string) ([]*models.Ledger, error)
	// GetBudgetForUpdate selects one budget FOR UPDATE by id
	GetBudgetForUpdate(ctx context.Context, id string) (*models.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	CreateTransactions(ctx context.Context, txns []*models.Transaction) error
	UpdateTransactions(ctx context.Context, txns []*models.Transaction) error
	DeleteTransactions(ctx context.Context, ids []string) error
	UpdateBudgets(ctx context.Context, budgets []*models.Budget) error
}
