package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/piresc/finstorage/services/transactions"
	"github.com/piresc/finstorage/services/transactions/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const (
	fy       = "fy-2026"
	fund1    = "fund-1"
	fund2    = "fund-2"
	ledgerID = "ledger-1"
	orderID  = "order-1"
	invID    = "invoice-1"
)

var (
	usd      = money.MustFor("USD")
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	ctrl   *gomock.Controller
	repo   *mocks.MockTransactionRepo
	tx     *mocks.MockTransactionTx
	lock   *mocks.MockLockGW
	events *mocks.MockEventGW
	uc     *TransactionUC
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:   ctrl,
		repo:   mocks.NewMockTransactionRepo(ctrl),
		tx:     mocks.NewMockTransactionTx(ctrl),
		lock:   mocks.NewMockLockGW(ctrl),
		events: mocks.NewMockEventGW(ctrl),
	}
	cfg := &models.Config{Tenant: models.TenantConfig{Default: "diku", SchemaSuffix: "_mod_finance_storage"}}
	f.uc = NewTransactionUC(cfg, f.repo, f.lock, f.events, nil)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

// expectLock runs the locked function in place
func (f *fixture) expectLock(key string) {
	f.lock.EXPECT().WithLock(gomock.Any(), key, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

// expectTx hands the mocked transaction to the function, returning its error
func (f *fixture) expectTx() {
	f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(transactions.TransactionTx) error) error {
			return fn(f.tx)
		})
}

// expectReferenceData serves budgets of one ledger
func (f *fixture) expectReferenceData(keys []models.BudgetKey, budgets ...*models.Budget) {
	f.tx.EXPECT().LockBudgets(gomock.Any(), keys).Return(budgets, nil)

	var fundIDs []string
	var funds []*models.Fund
	for _, b := range budgets {
		fundIDs = append(fundIDs, b.FundID)
		funds = append(funds, &models.Fund{ID: b.FundID, Code: "CODE-" + b.FundID, LedgerID: ledgerID})
	}
	f.tx.EXPECT().GetFunds(gomock.Any(), fundIDs).Return(funds, nil)
	f.tx.EXPECT().GetLedgers(gomock.Any(), []string{ledgerID}).Return([]*models.Ledger{{ID: ledgerID}}, nil)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func key(fundID string) models.BudgetKey {
	return models.BudgetKey{FundID: fundID, FiscalYearID: fy}
}

func newBudget(id, fundID string) *models.Budget {
	b := &models.Budget{
		ID:                id,
		FundID:            fundID,
		FiscalYearID:      fy,
		BudgetStatus:      models.BudgetStatusActive,
		InitialAllocation: dec("10000"),
		Version:           1,
	}
	b.Recalculate(usd)
	return b
}

func newEncumbrance(id, amount string) *models.Transaction {
	return &models.Transaction{
		ID:              id,
		TransactionType: models.TransactionTypeEncumbrance,
		Amount:          dec(amount),
		Currency:        "USD",
		FiscalYearID:    fy,
		FromFundID:      fund1,
		Encumbrance: &models.Encumbrance{
			Status:                models.EncumbranceStatusUnreleased,
			OrderStatus:           models.OrderStatusOpen,
			SourcePurchaseOrderID: orderID,
		},
	}
}

func storedEncumbrance(id, amount, initial string, version int) *models.Transaction {
	t := newEncumbrance(id, amount)
	t.Encumbrance.InitialAmountEncumbered = dec(initial)
	t.Version = version
	return t
}
