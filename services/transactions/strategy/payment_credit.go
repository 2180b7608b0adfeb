package strategy

import (
	"sort"

	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/piresc/finstorage/services/transactions/encumbrance"
	"github.com/piresc/finstorage/services/transactions/restriction"
	"github.com/shopspring/decimal"
)

// paymentCreditStrategy handles payments and credits, credits being negative payments
type paymentCreditStrategy struct{}

func (paymentCreditStrategy) Type() models.TransactionType {
	return models.TransactionTypePayment
}

func (paymentCreditStrategy) Validate(txn *models.Transaction) error {
	if err := requireInvoice(txn); err != nil {
		return err
	}
	if txn.Amount.IsNegative() {
		return apperror.Unprocessable(apperror.CodeNegativeAmount, apperror.Param("id", txn.ID))
	}
	if txn.TransactionType == models.TransactionTypeCredit {
		return requireFund("toFundId", txn.ToFundID)
	}
	return requireFund("fromFundId", txn.FromFundID)
}

func (s paymentCreditStrategy) Apply(h *Holder) error {
	created := h.Creates(models.TransactionTypePayment, models.TransactionTypeCredit)
	txns := append(append([]*models.Transaction{}, created...),
		h.Updates(models.TransactionTypePayment, models.TransactionTypeCredit)...)
	// payments first so credits see the expended amounts
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].TransactionType == models.TransactionTypePayment &&
			txns[j].TransactionType != models.TransactionTypePayment
	})

	for _, txn := range txns {
		var err error
		if h.IsCancelled(txn) {
			err = s.cancel(h, txn, h.ExistingAmount(txn))
		} else {
			err = s.apply(h, txn)
		}
		if err != nil {
			return err
		}
	}

	// the invoice is paid, its pending payments are replaced by the payments
	invoices := make(map[string]bool)
	for _, txn := range created {
		if invoices[txn.SourceInvoiceID] {
			continue
		}
		invoices[txn.SourceInvoiceID] = true
		for _, pp := range h.InvoicePendingPayments(txn.SourceInvoiceID) {
			h.DeleteWithoutProcessing(pp)
		}
	}
	return nil
}

func (s paymentCreditStrategy) apply(h *Holder, txn *models.Transaction) error {
	calc, err := h.Calculator(txn)
	if err != nil {
		return err
	}
	budget, err := h.BudgetFor(txn)
	if err != nil {
		return err
	}
	var enc *models.Transaction
	if id := txn.LinkedEncumbranceID(); id != "" {
		if enc, err = h.EncumbranceForUpdate(id); err != nil {
			return err
		}
	}

	delta := calc.Subtract(txn.Amount, h.ExistingAmount(txn))
	if txn.TransactionType == models.TransactionTypePayment {
		if delta.IsPositive() {
			ledger, err := h.Ledger(budget)
			if err != nil {
				return err
			}
			related := money.Min(s.relatedPendingAmount(h, calc, txn), delta)
			if err := restriction.CheckAllowed(calc, txn.TransactionType, delta, budget, ledger, related); err != nil {
				return err
			}
		}
		budget.Expenditures = calc.Add(budget.Expenditures, delta)
		budget.AwaitingPayment = calc.Subtract(budget.AwaitingPayment, delta)
		if enc != nil {
			e := enc.Encumbrance
			e.AmountAwaitingPayment = calc.Subtract(e.AmountAwaitingPayment, delta)
			e.AmountExpended = calc.Add(e.AmountExpended, delta)
		}
	} else {
		// clamped at the write boundary, cancel must see the exact value
		budget.Expenditures = calc.Subtract(budget.Expenditures, delta)
		budget.Credits = calc.Add(budget.Credits, delta)
		if enc != nil {
			e := enc.Encumbrance
			e.AmountCredited = calc.Add(e.AmountCredited, delta)
			if e.Status == models.EncumbranceStatusUnreleased {
				enc.Amount = calc.Add(enc.Amount, delta)
			}
		}
	}
	h.Touch(budget, calc)
	return nil
}

// cancel reverses amount, the stored amount of txn, and voids it
func (paymentCreditStrategy) cancel(h *Holder, txn *models.Transaction, amount decimal.Decimal) error {
	calc, err := h.Calculator(txn)
	if err != nil {
		return err
	}
	budget, err := h.BudgetFor(txn)
	if err != nil {
		return err
	}
	var enc *models.Transaction
	if id := txn.LinkedEncumbranceID(); id != "" {
		if enc, err = h.EncumbranceForUpdate(id); err != nil {
			return err
		}
	}

	if txn.TransactionType == models.TransactionTypePayment {
		budget.Expenditures = calc.Subtract(budget.Expenditures, amount)
		if enc != nil {
			e := enc.Encumbrance
			e.AmountExpended = calc.Subtract(e.AmountExpended, amount)
			if e.Status == models.EncumbranceStatusUnreleased {
				enc.Amount = encumbrance.Recalculate(calc, e)
			}
		}
	} else {
		budget.Credits = calc.Subtract(budget.Credits, amount)
		budget.Expenditures = calc.Add(budget.Expenditures, amount)
		if enc != nil {
			e := enc.Encumbrance
			e.AmountCredited = calc.SubtractFloorZero(e.AmountCredited, amount)
			if e.Status == models.EncumbranceStatusUnreleased {
				enc.Amount = calc.SubtractFloorZero(enc.Amount, amount)
			}
		}
	}
	voided := amount
	txn.VoidedAmount = &voided
	txn.Amount = decimal.Zero
	h.Touch(budget, calc)
	return nil
}

// relatedPendingAmount is the committed pending payment amount the payment settles
func (paymentCreditStrategy) relatedPendingAmount(h *Holder, calc money.Calculator, txn *models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, pp := range h.InvoicePendingPayments(txn.SourceInvoiceID) {
		if pp.FromFundID != txn.FromFundID {
			continue
		}
		if txn.SourceInvoiceLineID != "" && pp.SourceInvoiceLineID != "" && pp.SourceInvoiceLineID != txn.SourceInvoiceLineID {
			continue
		}
		total = calc.Add(total, pp.Amount)
	}
	return total
}
