package usecase

import (
	"time"

	"github.com/piresc/finstorage/internal/pkg/metrics"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
)

// TransactionUC commits transactions through the staged and the batch protocols
type TransactionUC struct {
	cfg     *models.Config
	repo    transactions.TransactionRepo
	lockGW  transactions.LockGW
	eventGW transactions.EventGW
	metrics *metrics.Collector
	now     func() time.Time
}

// NewTransactionUC creates a new transaction usecase instance. eventGW and
// collector may be nil.
func NewTransactionUC(
	cfg *models.Config,
	repo transactions.TransactionRepo,
	lockGW transactions.LockGW,
	eventGW transactions.EventGW,
	collector *metrics.Collector,
) *TransactionUC {
	return &TransactionUC{
		cfg:     cfg,
		repo:    repo,
		lockGW:  lockGW,
		eventGW: eventGW,
		metrics: collector,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ transactions.TransactionUC = (*TransactionUC)(nil)
