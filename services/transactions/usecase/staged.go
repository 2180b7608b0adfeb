package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/constants"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
)

// CreateTransaction stages txn and commits its group once every transaction
// declared by the group summary arrived. Allocations and transfers have no
// group and are committed at once.
func (uc *TransactionUC) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	stage, staged := models.StageOf(txn.TransactionType)
	if !staged {
		if err := uc.commitDirect(ctx, txn); err != nil {
			return nil, err
		}
		return txn, nil
	}

	if err := uc.stage(ctx, stage, txn, true); err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction stages a new version of a committed transaction
func (uc *TransactionUC) UpdateTransaction(ctx context.Context, id string, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = id
	} else if txn.ID != id {
		return apperror.BadRequest(apperror.CodeIDMismatch, apperror.Param("id", txn.ID))
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	stage, staged := models.StageOf(txn.TransactionType)
	if !staged {
		return apperror.BadRequest(apperror.CodeUpdateNotAllowed,
			apperror.Param("id", id), apperror.Param("transactionType", string(txn.TransactionType)))
	}
	return uc.stage(ctx, stage, txn, false)
}

// GetTransaction returns a committed transaction
func (uc *TransactionUC) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	txn, err := uc.repo.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			return nil, apperror.NotFound(apperror.CodeTransactionNotFound, apperror.Param("id", id))
		}
		return nil, err
	}
	return txn, nil
}

// stage writes txn to the staging table of its group under the group lock,
// then commits the stage when the declared count is reached
func (uc *TransactionUC) stage(ctx context.Context, stage models.Stage, txn *models.Transaction, create bool) error {
	groupID := txn.GroupID()
	key := fmt.Sprintf(constants.KeyStageLock, uc.tenant(ctx), stage, groupID)

	return uc.lockGW.WithLock(ctx, key, func(ctx context.Context) error {
		summary, err := uc.repo.GetSummary(ctx, stage.Family(), groupID)
		if err != nil {
			return summaryError(err, groupID)
		}
		if summary.IsProcessed(stage) {
			return apperror.BadRequest(apperror.CodeAllAlreadyProcessed, apperror.Param("id", groupID))
		}

		_, err = uc.repo.GetTransaction(ctx, txn.ID)
		switch {
		case err == nil && create:
			return apperror.BadRequest(apperror.CodeTransactionAlreadyProcessed, apperror.Param("id", txn.ID))
		case errors.Is(err, transactions.ErrNotFound):
			if !create {
				return apperror.NotFound(apperror.CodeTransactionNotFound, apperror.Param("id", txn.ID))
			}
		case err != nil:
			return err
		}

		if err := uc.repo.StageTransaction(ctx, stage, txn); err != nil {
			return err
		}
		uc.metrics.IncStaged(string(stage))

		count, err := uc.repo.CountStaged(ctx, stage, groupID)
		if err != nil {
			return err
		}
		if count < summary.Expected(stage) {
			logger.Debug("Transaction staged",
				logger.String("id", txn.ID),
				logger.String("stage", string(stage)),
				logger.String("group_id", groupID),
				logger.Int("staged", count),
				logger.Int("expected", summary.Expected(stage)))
			return nil
		}
		return uc.commitStage(ctx, stage, groupID)
	})
}

// commitStage moves the staged transactions of a group to the permanent table.
// Staged rows stay in place when the commit fails so the group can be retried.
func (uc *TransactionUC) commitStage(ctx context.Context, stage models.Stage, groupID string) error {
	start := time.Now()
	var event *models.TransactionsCommittedEvent

	err := uc.repo.WithTx(ctx, func(tx transactions.TransactionTx) error {
		// the row lock keeps a second process from committing the stage twice
		summary, err := tx.GetSummaryForUpdate(ctx, stage.Family(), groupID)
		if err != nil {
			return summaryError(err, groupID)
		}
		if summary.IsProcessed(stage) {
			return apperror.BadRequest(apperror.CodeAllAlreadyProcessed, apperror.Param("id", groupID))
		}

		staged, err := tx.GetStagedTransactions(ctx, stage, groupID)
		if err != nil {
			return err
		}
		event, err = uc.commit(ctx, tx, commitRequest{
			protocol:   protocolStaged,
			groupID:    groupID,
			creates:    staged,
			upsert:     true,
			existsCode: apperror.CodeTransactionAlreadyProcessed,
		})
		if err != nil {
			return err
		}

		if err := tx.DeleteStagedTransactions(ctx, stage, groupID); err != nil {
			return err
		}
		return tx.MarkStageProcessed(ctx, stage, groupID)
	})
	uc.metrics.ObserveCommit(protocolStaged, err, time.Since(start))
	if err != nil {
		logger.Warn("Staged commit failed",
			logger.String("stage", string(stage)),
			logger.String("group_id", groupID),
			logger.Err(err))
		return err
	}

	uc.publish(ctx, event)
	return nil
}

// commitDirect commits an allocation or a transfer without staging
func (uc *TransactionUC) commitDirect(ctx context.Context, txn *models.Transaction) error {
	start := time.Now()
	var event *models.TransactionsCommittedEvent

	err := uc.repo.WithTx(ctx, func(tx transactions.TransactionTx) error {
		var err error
		event, err = uc.commit(ctx, tx, commitRequest{
			protocol:   protocolDirect,
			creates:    []*models.Transaction{txn},
			existsCode: apperror.CodeTransactionAlreadyProcessed,
		})
		return err
	})
	uc.metrics.ObserveCommit(protocolDirect, err, time.Since(start))
	if err != nil {
		return err
	}

	uc.publish(ctx, event)
	return nil
}

func summaryError(err error, groupID string) error {
	if errors.Is(err, transactions.ErrNotFound) {
		return apperror.BadRequest(apperror.CodeSummaryNotFound, apperror.Param("id", groupID))
	}
	return err
}
