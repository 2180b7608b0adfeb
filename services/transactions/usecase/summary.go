package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
)

// SaveOrderSummary declares how many encumbrances an order posts. Saving it
// again reopens the order for a new round of staging.
func (uc *TransactionUC) SaveOrderSummary(ctx context.Context, summary *models.OrderTransactionSummary) error {
	if summary.ID == "" {
		return apperror.FieldRequired("id")
	}
	if summary.NumTransactions < 0 {
		return apperror.Unprocessable(apperror.CodeInvalidValue,
			apperror.Param("numTransactions", strconv.Itoa(summary.NumTransactions)))
	}
	summary.Processed = false

	if err := uc.repo.SaveOrderSummary(ctx, summary); err != nil {
		return err
	}
	logger.Info("Order transaction summary saved",
		logger.String("id", summary.ID),
		logger.Int("num_transactions", summary.NumTransactions))
	return nil
}

// SaveInvoiceSummary declares the pending payments and payments/credits of an
// invoice and reopens both stages
func (uc *TransactionUC) SaveInvoiceSummary(ctx context.Context, summary *models.InvoiceTransactionSummary) error {
	if summary.ID == "" {
		return apperror.FieldRequired("id")
	}
	if summary.NumPendingPayments < 0 {
		return apperror.Unprocessable(apperror.CodeInvalidValue,
			apperror.Param("numPendingPayments", strconv.Itoa(summary.NumPendingPayments)))
	}
	if summary.NumPaymentsCredits < 0 {
		return apperror.Unprocessable(apperror.CodeInvalidValue,
			apperror.Param("numPaymentsCredits", strconv.Itoa(summary.NumPaymentsCredits)))
	}
	summary.PendingPaymentsProcessed = false
	summary.PaymentsCreditsProcessed = false

	if err := uc.repo.SaveInvoiceSummary(ctx, summary); err != nil {
		return err
	}
	logger.Info("Invoice transaction summary saved",
		logger.String("id", summary.ID),
		logger.Int("num_pending_payments", summary.NumPendingPayments),
		logger.Int("num_payments_credits", summary.NumPaymentsCredits))
	return nil
}

// GetBudget returns a budget by id
func (uc *TransactionUC) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	budget, err := uc.repo.GetBudget(ctx, id)
	if err != nil {
		if errors.Is(err, transactions.ErrNotFound) {
			return nil, apperror.NotFound(apperror.CodeBudgetNotFound, apperror.Param("id", id))
		}
		return nil, err
	}
	return budget, nil
}

// DeleteBudget removes a budget that carries no encumbered, awaiting or expended
// money. The row stays locked between the check and the delete so a commit
// cannot move money into it in between.
func (uc *TransactionUC) DeleteBudget(ctx context.Context, id string) error {
	err := uc.repo.WithTx(ctx, func(tx transactions.TransactionTx) error {
		budget, err := tx.GetBudgetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if budget.HasMoney() {
			return apperror.BadRequest(apperror.CodeBudgetHasMoney, apperror.Param("id", id))
		}
		return tx.DeleteBudget(ctx, id)
	})
	if errors.Is(err, transactions.ErrNotFound) {
		return apperror.NotFound(apperror.CodeBudgetNotFound, apperror.Param("id", id))
	}
	return err
}
