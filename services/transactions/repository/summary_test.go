package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary(t *testing.T) {
	t.Run("Order summary", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, num_transactions, processed FROM ` + schema + `.order_transaction_summaries WHERE id = $1`)).
			WithArgs("order-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "num_transactions", "processed"}).AddRow("order-1", 2, false))

		summary, err := repo.GetSummary(context.Background(), models.SummaryFamilyOrder, "order-1")

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Expected(models.StageEncumbrances))
		assert.False(t, summary.IsProcessed(models.StageEncumbrances))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invoice summary not found", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(`FROM (.+)invoice_transaction_summaries`).
			WithArgs("inv-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetSummary(context.Background(), models.SummaryFamilyInvoice, "inv-1")

		assert.ErrorIs(t, err, transactions.ErrNotFound)
	})

	t.Run("Locked inside a transaction", func(t *testing.T) {
		repo, mock, cleanup := setupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)FROM (.+)invoice_transaction_summaries.+FOR UPDATE`).
			WithArgs("inv-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "num_pending_payments", "num_payments_credits",
				"pending_payments_processed", "payments_credits_processed"}).AddRow("inv-1", 3, 2, true, false))
		mock.ExpectCommit()

		var summary *models.TransactionSummary
		err := repo.WithTx(context.Background(), func(tx transactions.TransactionTx) error {
			var err error
			summary, err = tx.GetSummaryForUpdate(context.Background(), models.SummaryFamilyInvoice, "inv-1")
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Expected(models.StagePendingPayments))
		assert.Equal(t, 2, summary.Expected(models.StagePaymentsCredits))
		assert.True(t, summary.IsProcessed(models.StagePendingPayments))
		assert.False(t, summary.IsProcessed(models.StagePaymentsCredits))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveOrderSummary(t *testing.T) {
	repo, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectExec(`(?s)INSERT INTO (.+)order_transaction_summaries.+ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("order-1", 2, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveOrderSummary(context.Background(), &models.OrderTransactionSummary{ID: "order-1", NumTransactions: 2})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkStageProcessed(t *testing.T) {
	tests := []struct {
		stage  models.Stage
		target string
	}{
		{models.StageEncumbrances, `order_transaction_summaries SET processed = true`},
		{models.StagePendingPayments, `invoice_transaction_summaries SET pending_payments_processed = true`},
		{models.StagePaymentsCredits, `invoice_transaction_summaries SET payments_credits_processed = true`},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			repo, mock, cleanup := setupMockDB(t)
			defer cleanup()

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(tt.target)).
				WithArgs("group-1").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			err := repo.WithTx(context.Background(), func(tx transactions.TransactionTx) error {
				return tx.MarkStageProcessed(context.Background(), tt.stage, "group-1")
			})

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStageTransaction_Upserts(t *testing.T) {
	repo, mock, cleanup := setupMockDB(t)
	defer cleanup()

	enc := &models.Transaction{
		ID:              "enc-1",
		TransactionType: models.TransactionTypeEncumbrance,
		Encumbrance:     &models.Encumbrance{SourcePurchaseOrderID: "order-1"},
	}

	mock.ExpectExec(`(?s)INSERT INTO (.+)temporary_order_transactions.+ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("enc-1", "order-1", "Encumbrance", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.StageTransaction(context.Background(), models.StageEncumbrances, enc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountStaged(t *testing.T) {
	repo, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM ` + schema + `.temporary_invoice_transactions WHERE group_id = $1`)).
		WithArgs("inv-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountStaged(context.Background(), models.StagePaymentsCredits, "inv-1")

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStagedTransactions(t *testing.T) {
	repo, mock, cleanup := setupMockDB(t)
	defer cleanup()

	pp := models.Transaction{ID: "pp-1", TransactionType: models.TransactionTypePendingPayment, SourceInvoiceID: "inv-1"}
	doc, err := json.Marshal(pp)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT id, group_id, transaction_type, jsonb.+temporary_invoice_transactions`).
		WithArgs("inv-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "transaction_type", "jsonb"}).
			AddRow("pp-1", "inv-1", "Pending payment", doc))
	mock.ExpectExec(`DELETE FROM (.+)temporary_invoice_transactions`).
		WithArgs("inv-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var staged []*models.Transaction
	err = repo.WithTx(context.Background(), func(tx transactions.TransactionTx) error {
		var err error
		if staged, err = tx.GetStagedTransactions(context.Background(), models.StagePendingPayments, "inv-1"); err != nil {
			return err
		}
		return tx.DeleteStagedTransactions(context.Background(), models.StagePendingPayments, "inv-1")
	})

	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, "pp-1", staged[0].ID)
	assert.Equal(t, models.TransactionTypePendingPayment, staged[0].TransactionType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
