package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/requestcontext"
	"github.com/piresc/finstorage/services/transactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction_CommitsOrderWhenAllEncumbrancesArrive(t *testing.T) {
	// Arrange
	f := newFixture(t)
	defer f.ctrl.Finish()
	ctx := context.Background()

	budget := newBudget("budget-1", fund1)
	budget.Expenditures = dec("3000")
	budget.Recalculate(usd)
	require.True(t, dec("7000").Equal(budget.Available))
	require.True(t, dec("3000").Equal(budget.Unavailable))

	enc1 := newEncumbrance("enc-1", "1000")
	enc2 := newEncumbrance("enc-2", "500")
	summary := &models.TransactionSummary{ID: orderID, Family: models.SummaryFamilyOrder, NumTransactions: 2}
	lockKey := "diku:encumbrances:" + orderID

	f.expectLock(lockKey)
	f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-1").Return(nil, transactions.ErrNotFound)
	f.repo.EXPECT().StageTransaction(gomock.Any(), models.StageEncumbrances, enc1).Return(nil)
	f.repo.EXPECT().CountStaged(gomock.Any(), models.StageEncumbrances, orderID).Return(1, nil)

	// Act
	_, err := f.uc.CreateTransaction(ctx, enc1)

	// Assert
	require.NoError(t, err)
	assertDec(t, "0", budget.Encumbered)

	// Arrange the second encumbrance, which completes the order
	f.expectLock(lockKey)
	f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-2").Return(nil, transactions.ErrNotFound)
	f.repo.EXPECT().StageTransaction(gomock.Any(), models.StageEncumbrances, enc2).Return(nil)
	f.repo.EXPECT().CountStaged(gomock.Any(), models.StageEncumbrances, orderID).Return(2, nil)

	f.expectTx()
	f.tx.EXPECT().GetSummaryForUpdate(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.tx.EXPECT().GetStagedTransactions(gomock.Any(), models.StageEncumbrances, orderID).
		Return([]*models.Transaction{enc1, enc2}, nil)
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), []string{"enc-1", "enc-2"}).Return(nil, nil)
	f.expectReferenceData([]models.BudgetKey{key(fund1)}, budget)

	var created []*models.Transaction
	f.tx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txns []*models.Transaction) error {
			created = txns
			return nil
		})
	f.tx.EXPECT().UpdateBudgets(gomock.Any(), []*models.Budget{budget}).Return(nil)
	f.tx.EXPECT().DeleteStagedTransactions(gomock.Any(), models.StageEncumbrances, orderID).Return(nil)
	f.tx.EXPECT().MarkStageProcessed(gomock.Any(), models.StageEncumbrances, orderID).Return(nil)

	var event *models.TransactionsCommittedEvent
	f.events.EXPECT().PublishCommitted(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *models.TransactionsCommittedEvent) error {
			event = e
			return nil
		})

	// Act
	_, err = f.uc.CreateTransaction(ctx, enc2)

	// Assert
	require.NoError(t, err)
	require.Len(t, created, 2)
	assertDec(t, "1000", created[0].Encumbrance.InitialAmountEncumbered)
	assert.Equal(t, &fixedNow, created[0].Metadata.CreatedDate)
	assertDec(t, "1500", budget.Encumbered)
	assertDec(t, "5500", budget.Available)
	assertDec(t, "4500", budget.Unavailable)

	require.NotNil(t, event)
	assert.Equal(t, "diku", event.Tenant)
	assert.Equal(t, protocolStaged, event.Protocol)
	assert.Equal(t, orderID, event.GroupID)
	assert.Equal(t, []string{"enc-1", "enc-2"}, event.Created)
	assert.Equal(t, []string{"budget-1"}, event.BudgetIDs)

	// Arrange a repost once the order is processed
	processed := *summary
	processed.Processed = true
	f.expectLock(lockKey)
	f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(&processed, nil)

	// Act
	_, err = f.uc.CreateTransaction(ctx, newEncumbrance("enc-1", "1000"))

	// Assert
	assert.True(t, apperror.HasCode(err, apperror.CodeAllAlreadyProcessed))
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
}

func TestCreateTransaction_PendingPaymentMovesEncumbranceToAwaiting(t *testing.T) {
	// Arrange
	f := newFixture(t)
	defer f.ctrl.Finish()
	ctx := requestcontext.WithUserID(requestcontext.WithTenant(context.Background(), "College"), "user-1")

	budget := newBudget("budget-1", fund1)
	budget.Encumbered = dec("10")
	budget.Recalculate(usd)
	enc := storedEncumbrance("enc-1", "10", "10", 3)

	pp := &models.Transaction{
		ID:              "pp-1",
		TransactionType: models.TransactionTypePendingPayment,
		Amount:          dec("9.1"),
		Currency:        "USD",
		FiscalYearID:    fy,
		FromFundID:      fund1,
		SourceInvoiceID: invID,
		AwaitingPayment: &models.AwaitingPayment{EncumbranceID: "enc-1"},
	}
	summary := &models.TransactionSummary{ID: invID, Family: models.SummaryFamilyInvoice, NumPendingPayments: 1, NumPaymentsCredits: 1}

	f.expectLock("college:pending-payments:" + invID)
	f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyInvoice, invID).Return(summary, nil)
	f.repo.EXPECT().GetTransaction(gomock.Any(), "pp-1").Return(nil, transactions.ErrNotFound)
	f.repo.EXPECT().StageTransaction(gomock.Any(), models.StagePendingPayments, pp).Return(nil)
	f.repo.EXPECT().CountStaged(gomock.Any(), models.StagePendingPayments, invID).Return(1, nil)

	f.expectTx()
	f.tx.EXPECT().GetSummaryForUpdate(gomock.Any(), models.SummaryFamilyInvoice, invID).Return(summary, nil)
	f.tx.EXPECT().GetStagedTransactions(gomock.Any(), models.StagePendingPayments, invID).
		Return([]*models.Transaction{pp}, nil)
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), []string{"pp-1"}).Return(nil, nil)
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), []string{"enc-1"}).Return([]*models.Transaction{enc}, nil)
	f.expectReferenceData([]models.BudgetKey{key(fund1)}, budget)
	f.tx.EXPECT().CreateTransactions(gomock.Any(), []*models.Transaction{pp}).Return(nil)

	var updated []*models.Transaction
	f.tx.EXPECT().UpdateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txns []*models.Transaction) error {
			updated = txns
			return nil
		})
	f.tx.EXPECT().UpdateBudgets(gomock.Any(), []*models.Budget{budget}).Return(nil)
	f.tx.EXPECT().DeleteStagedTransactions(gomock.Any(), models.StagePendingPayments, invID).Return(nil)
	f.tx.EXPECT().MarkStageProcessed(gomock.Any(), models.StagePendingPayments, invID).Return(nil)
	f.events.EXPECT().PublishCommitted(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	_, err := f.uc.CreateTransaction(ctx, pp)

	// Assert
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "enc-1", updated[0].ID)
	assert.Equal(t, 3, updated[0].Version)
	assertDec(t, "0.9", updated[0].Amount)
	assertDec(t, "9.1", updated[0].Encumbrance.AmountAwaitingPayment)
	assert.Equal(t, "user-1", updated[0].Metadata.UpdatedByUserID)
	assertDec(t, "10", enc.Amount)

	assertDec(t, "9.1", budget.AwaitingPayment)
	assertDec(t, "0.9", budget.Encumbered)
	assert.Equal(t, "user-1", pp.Metadata.CreatedByUserID)
}

func TestCreateTransaction_TransferCommitsWithoutStaging(t *testing.T) {
	// Arrange
	f := newFixture(t)
	defer f.ctrl.Finish()

	b1 := newBudget("budget-1", fund1)
	b2 := newBudget("budget-2", fund2)
	transfer := &models.Transaction{
		ID:              "tr-1",
		TransactionType: models.TransactionTypeTransfer,
		Amount:          dec("5"),
		Currency:        "USD",
		FiscalYearID:    fy,
		FromFundID:      fund1,
		ToFundID:        fund2,
	}

	f.expectTx()
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), []string{"tr-1"}).Return(nil, nil)
	f.expectReferenceData([]models.BudgetKey{key(fund1), key(fund2)}, b1, b2)
	f.tx.EXPECT().CreateTransactions(gomock.Any(), []*models.Transaction{transfer}).Return(nil)
	f.tx.EXPECT().UpdateBudgets(gomock.Any(), []*models.Budget{b1, b2}).Return(nil)
	f.events.EXPECT().PublishCommitted(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	got, err := f.uc.CreateTransaction(context.Background(), transfer)

	// Assert
	require.NoError(t, err)
	assert.Same(t, transfer, got)
	assertDec(t, "-5", b1.NetTransfers)
	assertDec(t, "5", b2.NetTransfers)
	assertDec(t, "9995", b1.TotalFunding)
	assertDec(t, "10005", b2.TotalFunding)
}

func TestCreateTransaction_AssignsID(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	allocation := &models.Transaction{
		TransactionType: models.TransactionTypeAllocation,
		Amount:          dec("100"),
		Currency:        "USD",
		FiscalYearID:    fy,
		ToFundID:        fund1,
	}
	budget := newBudget("budget-1", fund1)

	f.expectTx()
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.expectReferenceData([]models.BudgetKey{key(fund1)}, budget)
	f.tx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().UpdateBudgets(gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().PublishCommitted(gomock.Any(), gomock.Any()).Return(nil)

	got, err := f.uc.CreateTransaction(context.Background(), allocation)

	require.NoError(t, err)
	assert.Len(t, got.ID, 36)
	assertDec(t, "100", budget.AllocationTo)
	assertDec(t, "10100", budget.Allocated)
}

func TestCreateTransaction_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		txn       *models.Transaction
		mockSetup func(f *fixture)
		status    int
		code      apperror.Code
	}{
		{
			name: "Missing currency",
			txn: func() *models.Transaction {
				t := newEncumbrance("enc-1", "10")
				t.Currency = ""
				return t
			}(),
			mockSetup: func(f *fixture) {},
			status:    http.StatusUnprocessableEntity,
			code:      apperror.CodeFieldRequired,
		},
		{
			name: "Unknown currency",
			txn: func() *models.Transaction {
				t := newEncumbrance("enc-1", "10")
				t.Currency = "XYZ"
				return t
			}(),
			mockSetup: func(f *fixture) {},
			status:    http.StatusUnprocessableEntity,
			code:      apperror.CodeInvalidCurrency,
		},
		{
			name: "Encumbrance without order",
			txn: func() *models.Transaction {
				t := newEncumbrance("enc-1", "10")
				t.Encumbrance.SourcePurchaseOrderID = ""
				return t
			}(),
			mockSetup: func(f *fixture) {},
			status:    http.StatusBadRequest,
			code:      apperror.CodeMissingOrderID,
		},
		{
			name: "Summary not declared",
			txn:  newEncumbrance("enc-1", "10"),
			mockSetup: func(f *fixture) {
				f.expectLock("diku:encumbrances:" + orderID)
				f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).
					Return(nil, transactions.ErrNotFound)
			},
			status: http.StatusBadRequest,
			code:   apperror.CodeSummaryNotFound,
		},
		{
			name: "Transaction already committed",
			txn:  newEncumbrance("enc-1", "10"),
			mockSetup: func(f *fixture) {
				f.expectLock("diku:encumbrances:" + orderID)
				f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).
					Return(&models.TransactionSummary{ID: orderID, NumTransactions: 1}, nil)
				f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-1").
					Return(storedEncumbrance("enc-1", "10", "10", 1), nil)
			},
			status: http.StatusBadRequest,
			code:   apperror.CodeTransactionAlreadyProcessed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			defer f.ctrl.Finish()
			tc.mockSetup(f)

			got, err := f.uc.CreateTransaction(context.Background(), tc.txn)

			assert.Nil(t, got)
			assert.Equal(t, tc.status, apperror.StatusOf(err))
			assert.True(t, apperror.HasCode(err, tc.code), "unexpected error %v", err)
		})
	}
}

func TestCreateTransaction_LockFailure(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()
	lockErr := errors.New("lock already taken")

	f.lock.EXPECT().WithLock(gomock.Any(), "diku:encumbrances:"+orderID, gomock.Any()).Return(lockErr)

	_, err := f.uc.CreateTransaction(context.Background(), newEncumbrance("enc-1", "10"))

	assert.ErrorIs(t, err, lockErr)
}

func TestCreateTransaction_FailedCommitKeepsStagedRows(t *testing.T) {
	// Arrange
	f := newFixture(t)
	defer f.ctrl.Finish()

	enc := newEncumbrance("enc-1", "10")
	summary := &models.TransactionSummary{ID: orderID, Family: models.SummaryFamilyOrder, NumTransactions: 1}
	dbErr := errors.New("connection reset")

	f.expectLock("diku:encumbrances:" + orderID)
	f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-1").Return(nil, transactions.ErrNotFound)
	f.repo.EXPECT().StageTransaction(gomock.Any(), models.StageEncumbrances, enc).Return(nil)
	f.repo.EXPECT().CountStaged(gomock.Any(), models.StageEncumbrances, orderID).Return(1, nil)

	f.expectTx()
	f.tx.EXPECT().GetSummaryForUpdate(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.tx.EXPECT().GetStagedTransactions(gomock.Any(), models.StageEncumbrances, orderID).
		Return([]*models.Transaction{enc}, nil)
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), []string{"enc-1"}).Return(nil, nil)
	f.tx.EXPECT().LockBudgets(gomock.Any(), []models.BudgetKey{key(fund1)}).Return(nil, dbErr)

	// Act
	_, err := f.uc.CreateTransaction(context.Background(), enc)

	// Assert: no DeleteStagedTransactions, no MarkStageProcessed, no event
	assert.ErrorIs(t, err, dbErr)
}

func TestCreateTransaction_MissingBudget(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	enc := newEncumbrance("enc-1", "10")
	summary := &models.TransactionSummary{ID: orderID, Family: models.SummaryFamilyOrder, NumTransactions: 1}

	f.expectLock("diku:encumbrances:" + orderID)
	f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-1").Return(nil, transactions.ErrNotFound)
	f.repo.EXPECT().StageTransaction(gomock.Any(), models.StageEncumbrances, enc).Return(nil)
	f.repo.EXPECT().CountStaged(gomock.Any(), models.StageEncumbrances, orderID).Return(1, nil)
	f.expectTx()
	f.tx.EXPECT().GetSummaryForUpdate(gomock.Any(), models.SummaryFamilyOrder, orderID).Return(summary, nil)
	f.tx.EXPECT().GetStagedTransactions(gomock.Any(), models.StageEncumbrances, orderID).
		Return([]*models.Transaction{enc}, nil)
	f.tx.EXPECT().GetTransactionsByIDs(gomock.Any(), []string{"enc-1"}).Return(nil, nil)
	f.tx.EXPECT().LockBudgets(gomock.Any(), []models.BudgetKey{key(fund1)}).Return(nil, nil)

	_, err := f.uc.CreateTransaction(context.Background(), enc)

	assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
	assert.True(t, apperror.HasCode(err, apperror.CodeBudgetNotFoundForTxn))
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("Id mismatch", func(t *testing.T) {
		f := newFixture(t)
		defer f.ctrl.Finish()

		err := f.uc.UpdateTransaction(context.Background(), "other", newEncumbrance("enc-1", "10"))

		assert.True(t, apperror.HasCode(err, apperror.CodeIDMismatch))
	})

	t.Run("Allocations cannot be updated", func(t *testing.T) {
		f := newFixture(t)
		defer f.ctrl.Finish()
		allocation := &models.Transaction{
			TransactionType: models.TransactionTypeAllocation,
			Amount:          dec("1"),
			Currency:        "USD",
			FiscalYearID:    fy,
			ToFundID:        fund1,
		}

		err := f.uc.UpdateTransaction(context.Background(), "alloc-1", allocation)

		assert.Equal(t, "alloc-1", allocation.ID)
		assert.True(t, apperror.HasCode(err, apperror.CodeUpdateNotAllowed))
	})

	t.Run("Unknown transaction", func(t *testing.T) {
		f := newFixture(t)
		defer f.ctrl.Finish()

		f.expectLock("diku:encumbrances:" + orderID)
		f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).
			Return(&models.TransactionSummary{ID: orderID, NumTransactions: 1}, nil)
		f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-1").Return(nil, transactions.ErrNotFound)

		err := f.uc.UpdateTransaction(context.Background(), "enc-1", newEncumbrance("", "10"))

		assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	})

	t.Run("Staged while the order waits for more", func(t *testing.T) {
		f := newFixture(t)
		defer f.ctrl.Finish()
		enc := newEncumbrance("enc-1", "10")

		f.expectLock("diku:encumbrances:" + orderID)
		f.repo.EXPECT().GetSummary(gomock.Any(), models.SummaryFamilyOrder, orderID).
			Return(&models.TransactionSummary{ID: orderID, NumTransactions: 2}, nil)
		f.repo.EXPECT().GetTransaction(gomock.Any(), "enc-1").Return(storedEncumbrance("enc-1", "5", "5", 1), nil)
		f.repo.EXPECT().StageTransaction(gomock.Any(), models.StageEncumbrances, enc).Return(nil)
		f.repo.EXPECT().CountStaged(gomock.Any(), models.StageEncumbrances, orderID).Return(1, nil)

		assert.NoError(t, f.uc.UpdateTransaction(context.Background(), "enc-1", enc))
	})
}

func TestGetTransaction(t *testing.T) {
	f := newFixture(t)
	defer f.ctrl.Finish()

	f.repo.EXPECT().GetTransaction(gomock.Any(), "missing").Return(nil, transactions.ErrNotFound)

	_, err := f.uc.GetTransaction(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	assert.True(t, apperror.HasCode(err, apperror.CodeTransactionNotFound))
}
