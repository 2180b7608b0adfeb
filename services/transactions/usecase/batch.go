package usecase

import (
	"context"
	"time"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
)

// ProcessBatch commits every create, update and delete of batch in one
// database transaction, or none of them
func (uc *TransactionUC) ProcessBatch(ctx context.Context, batch *models.Batch) error {
	if err := checkBatch(batch); err != nil {
		return err
	}

	req := commitRequest{
		protocol:     protocolBatch,
		deleteIDs:    batch.IdsOfTransactionsToDelete,
		checkVersion: true,
		existsCode:   apperror.CodeTransactionExists,
	}
	for i := range batch.TransactionsToCreate {
		req.creates = append(req.creates, &batch.TransactionsToCreate[i])
	}
	for i := range batch.TransactionsToUpdate {
		req.updates = append(req.updates, &batch.TransactionsToUpdate[i])
	}

	start := time.Now()
	var event *models.TransactionsCommittedEvent
	err := uc.repo.WithTx(ctx, func(tx transactions.TransactionTx) error {
		var err error
		event, err = uc.commit(ctx, tx, req)
		return err
	})
	uc.metrics.ObserveCommit(protocolBatch, err, time.Since(start))
	if err != nil {
		logger.Warn("Batch rejected",
			logger.Int("creates", len(req.creates)),
			logger.Int("updates", len(req.updates)),
			logger.Int("deletes", len(req.deleteIDs)),
			logger.Err(err))
		return err
	}

	uc.publish(ctx, event)
	return nil
}

// publish announces a commit. The commit already happened, so a broker
// failure is logged and swallowed.
func (uc *TransactionUC) publish(ctx context.Context, event *models.TransactionsCommittedEvent) {
	if uc.eventGW == nil || event == nil {
		return
	}
	err := uc.eventGW.PublishCommitted(ctx, event)
	uc.metrics.IncPublished(err)
	if err != nil {
		logger.Warn("Failed to publish committed event",
			logger.String("tenant", event.Tenant),
			logger.String("protocol", event.Protocol),
			logger.String("group_id", event.GroupID),
			logger.Err(err))
	}
}
