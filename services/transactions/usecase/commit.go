package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	nrpkg "github.com/piresc/finstorage/internal/pkg/newrelic"
	"github.com/piresc/finstorage/internal/pkg/requestcontext"
	"github.com/piresc/finstorage/services/transactions"
	"github.com/piresc/finstorage/services/transactions/strategy"
)

const (
	protocolStaged = "staged"
	protocolBatch  = "batch"
	protocolDirect = "direct"
)

// commitRequest is one unit of work for the commit engine
type commitRequest struct {
	protocol  string
	groupID   string
	creates   []*models.Transaction
	updates   []*models.Transaction
	deleteIDs []string

	// upsert turns creates of stored ids into updates, staged rows carry no intent
	upsert bool
	// checkVersion rejects updates carrying a stale _version
	checkVersion bool
	existsCode   apperror.Code
}

// commit applies req inside tx: it loads and locks everything the strategies
// need, runs them in processing order and writes the result. Nothing is
// written when an error is returned.
func (uc *TransactionUC) commit(ctx context.Context, tx transactions.TransactionTx, req commitRequest) (*models.TransactionsCommittedEvent, error) {
	defer nrpkg.StartSegment(ctx, "commit/"+req.protocol).End()

	now := uc.now()
	userID := requestcontext.GetUserID(ctx)

	ids := make([]string, 0, len(req.creates)+len(req.updates)+len(req.deleteIDs))
	for _, list := range [][]*models.Transaction{req.creates, req.updates} {
		for _, t := range list {
			ids = append(ids, t.ID)
		}
	}
	ids = append(ids, req.deleteIDs...)

	stored, err := tx.GetTransactionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]*models.Transaction, len(stored))
	for _, t := range stored {
		existing[t.ID] = t
	}

	creates, updates, err := classify(req, existing)
	if err != nil {
		return nil, err
	}
	deletes, err := checkDeletes(ctx, tx, req.deleteIDs, existing)
	if err != nil {
		return nil, err
	}
	if err := loadLinkedEncumbrances(ctx, tx, existing, creates, updates, deletes); err != nil {
		return nil, err
	}
	invoicePendingPayments, err := loadInvoicePendingPayments(ctx, tx, creates)
	if err != nil {
		return nil, err
	}

	budgets, err := tx.LockBudgets(ctx, budgetKeys(existing, creates, updates, deletes))
	if err != nil {
		return nil, err
	}
	funds, ledgers, err := loadFundsAndLedgers(ctx, tx, budgets)
	if err != nil {
		return nil, err
	}

	for _, t := range creates {
		t.Stamp(nil, userID, now)
	}
	for _, t := range updates {
		t.Stamp(existing[t.ID].Metadata, userID, now)
	}

	all := make([]*models.Transaction, 0, len(existing))
	for _, t := range existing {
		all = append(all, t)
	}
	h := strategy.NewHolder(strategy.Input{
		Creates:                creates,
		Updates:                updates,
		Deletes:                deletes,
		Existing:               all,
		InvoicePendingPayments: invoicePendingPayments,
		Budgets:                budgets,
		Funds:                  funds,
		Ledgers:                ledgers,
		UserID:                 userID,
		Now:                    now,
	})
	if err := strategy.ApplyAll(h); err != nil {
		return nil, err
	}

	touched := h.TouchedBudgets()
	for _, b := range touched {
		b.Recalculate(h.CalculatorOf(b))
	}

	if toCreate := h.TransactionsToCreate(); len(toCreate) > 0 {
		if err := tx.CreateTransactions(ctx, toCreate); err != nil {
			return nil, err
		}
	}
	if toUpdate := h.TransactionsToUpdate(); len(toUpdate) > 0 {
		if err := tx.UpdateTransactions(ctx, toUpdate); err != nil {
			return nil, err
		}
	}
	if toDelete := h.IDsToDelete(); len(toDelete) > 0 {
		if err := tx.DeleteTransactions(ctx, toDelete); err != nil {
			return nil, err
		}
	}
	if len(touched) > 0 {
		if err := tx.UpdateBudgets(ctx, touched); err != nil {
			return nil, err
		}
	}

	event := &models.TransactionsCommittedEvent{
		Tenant:      uc.tenant(ctx),
		Protocol:    req.protocol,
		GroupID:     req.groupID,
		Created:     transactionIDs(h.TransactionsToCreate()),
		Updated:     transactionIDs(h.TransactionsToUpdate()),
		Deleted:     h.IDsToDelete(),
		CommittedAt: now,
	}
	for _, b := range touched {
		event.BudgetIDs = append(event.BudgetIDs, b.ID)
	}

	logger.Info("Transactions committed",
		logger.String("tenant", event.Tenant),
		logger.String("protocol", req.protocol),
		logger.String("group_id", req.groupID),
		logger.Int("created", len(event.Created)),
		logger.Int("updated", len(event.Updated)),
		logger.Int("deleted", len(event.Deleted)),
		logger.Int("budgets", len(event.BudgetIDs)))

	return event, nil
}

// classify splits the request against the stored rows and checks each update
func classify(req commitRequest, existing map[string]*models.Transaction) (creates, updates []*models.Transaction, err error) {
	for _, t := range req.creates {
		if _, ok := existing[t.ID]; ok {
			if !req.upsert {
				return nil, nil, apperror.BadRequest(req.existsCode, apperror.Param("id", t.ID))
			}
			updates = append(updates, t)
			continue
		}
		creates = append(creates, t)
	}
	updates = append(updates, req.updates...)

	for _, t := range updates {
		stored, ok := existing[t.ID]
		if !ok {
			return nil, nil, apperror.NotFound(apperror.CodeTransactionNotFound, apperror.Param("id", t.ID))
		}
		if t.TransactionType == models.TransactionTypeAllocation || t.TransactionType == models.TransactionTypeTransfer ||
			t.TransactionType != stored.TransactionType {
			return nil, nil, apperror.BadRequest(apperror.CodeUpdateNotAllowed,
				apperror.Param("id", t.ID), apperror.Param("transactionType", string(t.TransactionType)))
		}
		if req.checkVersion && t.Version != 0 && t.Version != stored.Version {
			return nil, nil, apperror.Conflict(apperror.CodeConflict, apperror.Param("id", t.ID))
		}
		t.Version = stored.Version
	}
	return creates, updates, nil
}

// checkDeletes resolves the rows to delete and refuses the ones still referenced
// by a transaction outside the delete set
func checkDeletes(ctx context.Context, tx transactions.TransactionTx, ids []string, existing map[string]*models.Transaction) ([]*models.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var missing []string
	deletes := make([]*models.Transaction, 0, len(ids))
	for _, id := range ids {
		t, ok := existing[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		deletes = append(deletes, t)
	}
	if len(missing) > 0 {
		return nil, apperror.NotFound(apperror.CodeTransactionsToDeleteMissing,
			apperror.Param("ids", strings.Join(missing, ",")))
	}

	for _, t := range deletes {
		if t.TransactionType != models.TransactionTypeEncumbrance && t.TransactionType != models.TransactionTypePendingPayment {
			return nil, apperror.BadRequest(apperror.CodeDeleteNotAllowed,
				apperror.Param("id", t.ID), apperror.Param("transactionType", string(t.TransactionType)))
		}
	}

	refs, err := tx.GetReferencingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	deleting := make(map[string]bool, len(ids))
	for _, id := range ids {
		deleting[id] = true
	}
	for _, id := range ids {
		for _, ref := range refs[id] {
			if !deleting[ref] {
				return nil, apperror.BadRequest(apperror.CodeTransactionIsReferenced,
					apperror.Param("id", id), apperror.Param("referencedBy", ref))
			}
		}
	}
	return deletes, nil
}

// loadLinkedEncumbrances adds the encumbrances pointed at by pending payments,
// payments and credits to existing
func loadLinkedEncumbrances(ctx context.Context, tx transactions.TransactionTx, existing map[string]*models.Transaction, lists ...[]*models.Transaction) error {
	var ids []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, t := range list {
			id := t.LinkedEncumbranceID()
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			if _, ok := existing[id]; !ok {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	encumbrances, err := tx.GetTransactionsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, t := range encumbrances {
		existing[t.ID] = t
	}
	return nil
}

// loadInvoicePendingPayments returns the committed pending payments of every
// invoice receiving a payment or credit
func loadInvoicePendingPayments(ctx context.Context, tx transactions.TransactionTx, creates []*models.Transaction) ([]*models.Transaction, error) {
	var out []*models.Transaction
	seen := make(map[string]bool)
	for _, t := range creates {
		if t.TransactionType != models.TransactionTypePayment && t.TransactionType != models.TransactionTypeCredit {
			continue
		}
		if seen[t.SourceInvoiceID] {
			continue
		}
		seen[t.SourceInvoiceID] = true

		pps, err := tx.GetPendingPaymentsByInvoice(ctx, t.SourceInvoiceID)
		if err != nil {
			return nil, err
		}
		out = append(out, pps...)
	}
	return out, nil
}

// budgetKeys lists every budget the commit may touch, in first seen order
func budgetKeys(existing map[string]*models.Transaction, creates, updates, deletes []*models.Transaction) []models.BudgetKey {
	var keys []models.BudgetKey
	seen := make(map[models.BudgetKey]bool)
	add := func(t *models.Transaction) {
		if t == nil {
			return
		}
		for _, k := range t.BudgetKeys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	for _, list := range [][]*models.Transaction{creates, updates, deletes} {
		for _, t := range list {
			add(t)
			add(existing[t.LinkedEncumbranceID()])
		}
	}
	for _, t := range updates {
		add(existing[t.ID])
	}
	return keys
}

func loadFundsAndLedgers(ctx context.Context, tx transactions.TransactionTx, budgets []*models.Budget) ([]*models.Fund, []*models.Ledger, error) {
	if len(budgets) == 0 {
		return nil, nil, nil
	}

	fundIDs := make([]string, 0, len(budgets))
	seen := make(map[string]bool)
	for _, b := range budgets {
		if !seen[b.FundID] {
			seen[b.FundID] = true
			fundIDs = append(fundIDs, b.FundID)
		}
	}
	funds, err := tx.GetFunds(ctx, fundIDs)
	if err != nil {
		return nil, nil, err
	}

	var ledgerIDs []string
	seenLedgers := make(map[string]bool)
	for _, f := range funds {
		if !seenLedgers[f.LedgerID] {
			seenLedgers[f.LedgerID] = true
			ledgerIDs = append(ledgerIDs, f.LedgerID)
		}
	}
	sort.Strings(ledgerIDs)
	ledgers, err := tx.GetLedgers(ctx, ledgerIDs)
	if err != nil {
		return nil, nil, err
	}
	return funds, ledgers, nil
}

func transactionIDs(txns []*models.Transaction) []string {
	if len(txns) == 0 {
		return nil
	}
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		ids = append(ids, t.ID)
	}
	return ids
}

// tenant returns the tenant of the request, or the configured default
func (uc *TransactionUC) tenant(ctx context.Context) string {
	if tenant := requestcontext.GetTenant(ctx); tenant != "" {
		return strings.ToLower(tenant)
	}
	return strings.ToLower(uc.cfg.Tenant.Default)
}
