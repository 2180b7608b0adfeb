package strategy

import (
	"time"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Input is everything a commit loaded before the strategies run
type Input struct {
	Creates  []*models.Transaction
	Updates  []*models.Transaction
	Deletes  []*models.Transaction // stored rows
	Existing []*models.Transaction // stored rows of updates, deletes and linked encumbrances

	// committed pending payments of the invoices receiving payments
	InvoicePendingPayments []*models.Transaction

	Budgets []*models.Budget // locked
	Funds   []*models.Fund
	Ledgers []*models.Ledger

	UserID string
	Now    time.Time
}

// Holder accumulates the transaction and budget mutations of one commit.
// Strategies read and mutate it in processing order.
type Holder struct {
	creates []*models.Transaction
	updates []*models.Transaction
	deletes []*models.Transaction
	silent  []*models.Transaction
	derived map[string]bool

	existing               map[string]*models.Transaction
	invoicePendingPayments []*models.Transaction

	budgets map[models.BudgetKey]*models.Budget
	funds   map[string]*models.Fund
	ledgers map[string]*models.Ledger
	touched []*models.Budget
	calcs   map[*models.Budget]money.Calculator

	userID string
	now    time.Time
}

// NewHolder indexes in
func NewHolder(in Input) *Holder {
	h := &Holder{
		creates:                in.Creates,
		updates:                in.Updates,
		deletes:                in.Deletes,
		derived:                make(map[string]bool),
		calcs:                  make(map[*models.Budget]money.Calculator),
		existing:               make(map[string]*models.Transaction, len(in.Existing)),
		invoicePendingPayments: in.InvoicePendingPayments,
		budgets:                make(map[models.BudgetKey]*models.Budget, len(in.Budgets)),
		funds:                  make(map[string]*models.Fund, len(in.Funds)),
		ledgers:                make(map[string]*models.Ledger, len(in.Ledgers)),
		userID:                 in.UserID,
		now:                    in.Now,
	}
	if h.now.IsZero() {
		h.now = time.Now().UTC()
	}
	for _, t := range in.Existing {
		h.existing[t.ID] = t
	}
	for _, b := range in.Budgets {
		h.budgets[b.Key()] = b
	}
	for _, f := range in.Funds {
		h.funds[f.ID] = f
	}
	for _, l := range in.Ledgers {
		h.ledgers[l.ID] = l
	}
	return h
}

// Creates returns the transactions to create of the given types
func (h *Holder) Creates(types ...models.TransactionType) []*models.Transaction {
	return filter(h.creates, types)
}

// Updates returns the transactions to update of the given types, including
// encumbrances queued by earlier strategies
func (h *Holder) Updates(types ...models.TransactionType) []*models.Transaction {
	return filter(h.updates, types)
}

// Deletes returns the stored transactions to delete of the given types
func (h *Holder) Deletes(types ...models.TransactionType) []*models.Transaction {
	return filter(h.deletes, types)
}

// Existing returns the stored version of id, or nil
func (h *Holder) Existing(id string) *models.Transaction {
	return h.existing[id]
}

// ExistingAmount is the stored amount of txn, zero for a create
func (h *Holder) ExistingAmount(txn *models.Transaction) decimal.Decimal {
	if e := h.existing[txn.ID]; e != nil && !h.isCreate(txn) {
		return e.Amount
	}
	return decimal.Zero
}

// IsCancelled reports whether txn cancels its invoice in this commit
func (h *Holder) IsCancelled(txn *models.Transaction) bool {
	if !txn.InvoiceCancelled {
		return false
	}
	e := h.existing[txn.ID]
	return e != nil && !e.InvoiceCancelled
}

// IsDerived reports whether id was queued for update by a strategy rather than by the caller
func (h *Holder) IsDerived(id string) bool {
	return h.derived[id]
}

// Calculator returns the money calculator of txn's currency
func (h *Holder) Calculator(txn *models.Transaction) (money.Calculator, error) {
	calc, err := money.For(txn.Currency)
	if err != nil {
		return money.Calculator{}, apperror.Unprocessable(apperror.CodeInvalidCurrency,
			apperror.Param("currency", txn.Currency))
	}
	return calc, nil
}

// Budget returns the locked budget of fundID in txn's fiscal year
func (h *Holder) Budget(txn *models.Transaction, fundID string) (*models.Budget, error) {
	b, ok := h.budgets[models.BudgetKey{FundID: fundID, FiscalYearID: txn.FiscalYearID}]
	if !ok {
		return nil, apperror.InternalCode(apperror.CodeBudgetNotFoundForTxn,
			apperror.Param("id", txn.ID),
			apperror.Param("transactionType", string(txn.TransactionType)),
			apperror.Param("fundId", fundID))
	}
	return b, nil
}

// BudgetFor returns the budget txn draws from
func (h *Holder) BudgetFor(txn *models.Transaction) (*models.Budget, error) {
	return h.Budget(txn, txn.BudgetFundID())
}

// Ledger returns the ledger owning budget's fund
func (h *Holder) Ledger(budget *models.Budget) (*models.Ledger, error) {
	if f, ok := h.funds[budget.FundID]; ok {
		if l, ok := h.ledgers[f.LedgerID]; ok {
			return l, nil
		}
	}
	return nil, apperror.InternalCode(apperror.CodeLedgerNotFoundForTxn,
		apperror.Param("budgetId", budget.ID), apperror.Param("fundId", budget.FundID))
}

// FundCode returns the code of budget's fund, or its id when unknown
func (h *Holder) FundCode(budget *models.Budget) string {
	if f, ok := h.funds[budget.FundID]; ok && f.Code != "" {
		return f.Code
	}
	return budget.FundID
}

// Touch marks budget as changed and refreshes its derived fields
func (h *Holder) Touch(budget *models.Budget, calc money.Calculator) {
	budget.Derive(calc)
	if budget.Metadata == nil {
		budget.Metadata = &models.Metadata{}
	}
	budget.Metadata.UpdatedDate = &h.now
	budget.Metadata.UpdatedByUserID = h.userID
	h.calcs[budget] = calc
	for _, b := range h.touched {
		if b == budget {
			return
		}
	}
	h.touched = append(h.touched, budget)
}

// EncumbranceForUpdate returns the encumbrance id as it will be saved by this
// commit. A stored encumbrance not yet part of the commit is cloned and
// queued for update so the encumbrance strategy settles its budget, unless
// the commit deletes it.
func (h *Holder) EncumbranceForUpdate(id string) (*models.Transaction, error) {
	for _, list := range [][]*models.Transaction{h.updates, h.creates} {
		for _, t := range list {
			if t.ID == id && t.TransactionType == models.TransactionTypeEncumbrance {
				return t, nil
			}
		}
	}
	stored := h.existing[id]
	if stored == nil || stored.TransactionType != models.TransactionTypeEncumbrance || stored.Encumbrance == nil {
		return nil, apperror.BadRequest(apperror.CodeLinkedEncumbranceNotFound, apperror.Param("id", id))
	}
	c := stored.Clone()
	for _, t := range h.deletes {
		// deleted in the same commit, the delete settles its budget
		if t.ID == id {
			return &c, nil
		}
	}
	c.Stamp(stored.Metadata, h.userID, h.now)
	h.updates = append(h.updates, &c)
	h.derived[id] = true
	return &c, nil
}

// InvoicePendingPayments returns the committed pending payments of invoiceID
func (h *Holder) InvoicePendingPayments(invoiceID string) []*models.Transaction {
	var out []*models.Transaction
	for _, t := range h.invoicePendingPayments {
		if t.SourceInvoiceID == invoiceID {
			out = append(out, t)
		}
	}
	return out
}

// DeleteWithoutProcessing removes txn without any budget effect
func (h *Holder) DeleteWithoutProcessing(txn *models.Transaction) {
	for _, t := range h.deletes {
		if t.ID == txn.ID {
			return
		}
	}
	for _, t := range h.silent {
		if t.ID == txn.ID {
			return
		}
	}
	h.silent = append(h.silent, txn)
}

// TransactionsToCreate returns the rows to insert
func (h *Holder) TransactionsToCreate() []*models.Transaction {
	return h.creates
}

// TransactionsToUpdate returns the rows to update, derived encumbrances included
func (h *Holder) TransactionsToUpdate() []*models.Transaction {
	return h.updates
}

// IDsToDelete returns every id to delete
func (h *Holder) IDsToDelete() []string {
	ids := make([]string, 0, len(h.deletes)+len(h.silent))
	for _, t := range h.deletes {
		ids = append(ids, t.ID)
	}
	for _, t := range h.silent {
		ids = append(ids, t.ID)
	}
	return ids
}

// TouchedBudgets returns the budgets changed by the strategies
func (h *Holder) TouchedBudgets() []*models.Budget {
	return h.touched
}

// CalculatorOf returns the calculator of the last transaction that touched budget
func (h *Holder) CalculatorOf(budget *models.Budget) money.Calculator {
	if calc, ok := h.calcs[budget]; ok {
		return calc
	}
	return money.MustFor(money.DefaultCurrency)
}

func (h *Holder) isCreate(txn *models.Transaction) bool {
	for _, t := range h.creates {
		if t == txn {
			return true
		}
	}
	return false
}

func filter(list []*models.Transaction, types []models.TransactionType) []*models.Transaction {
	var out []*models.Transaction
	for _, t := range list {
		for _, typ := range types {
			if t.TransactionType == typ {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
