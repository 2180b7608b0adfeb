package usecase

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/piresc/finstorage/services/transactions/strategy"
)

// validateTransaction runs the checks that need no database access
func validateTransaction(txn *models.Transaction) error {
	var missing []*apperror.HTTPError
	if txn.TransactionType == "" {
		missing = append(missing, apperror.FieldRequired("transactionType"))
	}
	if txn.Currency == "" {
		missing = append(missing, apperror.FieldRequired("currency"))
	}
	if txn.FiscalYearID == "" {
		missing = append(missing, apperror.FieldRequired("fiscalYearId"))
	}
	if len(missing) > 0 {
		return apperror.Join(missing...)
	}

	if _, err := money.For(txn.Currency); err != nil {
		return apperror.Unprocessable(apperror.CodeInvalidCurrency, apperror.Param("currency", txn.Currency))
	}
	return strategy.Validate(txn)
}

// checkBatch rejects malformed batches before anything is loaded
func checkBatch(batch *models.Batch) error {
	if batch.IsEmpty() {
		return apperror.BadRequest(apperror.CodeEmptyBatch)
	}

	seen := make(map[string]bool)
	unique := func(id string) error {
		if id == "" {
			return apperror.BadRequest(apperror.CodeIDIsRequired)
		}
		if seen[id] {
			return apperror.BadRequest(apperror.CodeDuplicateTransactionIDs, apperror.Param("id", id))
		}
		seen[id] = true
		return nil
	}

	for _, list := range [][]models.Transaction{batch.TransactionsToCreate, batch.TransactionsToUpdate} {
		for i := range list {
			if err := unique(list[i].ID); err != nil {
				return err
			}
		}
	}
	for _, id := range batch.IdsOfTransactionsToDelete {
		if err := unique(id); err != nil {
			return err
		}
	}
	for _, patch := range batch.TransactionPatches {
		if patch.ID() == "" {
			return apperror.BadRequest(apperror.CodeIDIsRequired)
		}
	}

	for _, list := range [][]models.Transaction{batch.TransactionsToCreate, batch.TransactionsToUpdate} {
		for i := range list {
			if err := validateTransaction(&list[i]); err != nil {
				return err
			}
		}
	}

	if len(batch.TransactionPatches) > 0 {
		return apperror.NotImplemented("transactionPatches")
	}
	return nil
}
