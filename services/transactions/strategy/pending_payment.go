package strategy

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/piresc/finstorage/services/transactions/encumbrance"
	"github.com/piresc/finstorage/services/transactions/restriction"
	"github.com/shopspring/decimal"
)

type pendingPaymentStrategy struct{}

func (pendingPaymentStrategy) Type() models.TransactionType {
	return models.TransactionTypePendingPayment
}

func (pendingPaymentStrategy) Validate(txn *models.Transaction) error {
	if err := requireInvoice(txn); err != nil {
		return err
	}
	return requireFund("fromFundId", txn.FromFundID)
}

func (s pendingPaymentStrategy) Apply(h *Holder) error {
	txns := append(h.Creates(models.TransactionTypePendingPayment), h.Updates(models.TransactionTypePendingPayment)...)
	for _, txn := range txns {
		if h.IsCancelled(txn) {
			if err := s.cancel(h, txn, h.ExistingAmount(txn)); err != nil {
				return err
			}
			continue
		}
		if err := s.apply(h, txn); err != nil {
			return err
		}
	}
	for _, stored := range h.Deletes(models.TransactionTypePendingPayment) {
		if err := s.cancel(h, stored, stored.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (pendingPaymentStrategy) linkedEncumbrance(h *Holder, txn *models.Transaction) (*models.Transaction, error) {
	id := txn.LinkedEncumbranceID()
	if id == "" {
		return nil, nil
	}
	enc, err := h.EncumbranceForUpdate(id)
	if err != nil {
		return nil, err
	}
	if enc.FromFundID != txn.FromFundID {
		return nil, apperror.BadRequest(apperror.CodeOutdatedFundID,
			apperror.Param("encumbranceId", enc.ID),
			apperror.Param("fundId", txn.FromFundID))
	}
	return enc, nil
}

func (s pendingPaymentStrategy) apply(h *Holder, txn *models.Transaction) error {
	calc, err := h.Calculator(txn)
	if err != nil {
		return err
	}
	budget, err := h.BudgetFor(txn)
	if err != nil {
		return err
	}
	enc, err := s.linkedEncumbrance(h, txn)
	if err != nil {
		return err
	}

	delta := calc.Subtract(txn.Amount, h.ExistingAmount(txn))
	if delta.IsPositive() {
		ledger, err := h.Ledger(budget)
		if err != nil {
			return err
		}
		related := decimal.Zero
		if enc != nil && enc.Encumbrance.Status == models.EncumbranceStatusUnreleased {
			related = money.Min(enc.Amount, delta)
		}
		if err := restriction.CheckAllowed(calc, txn.TransactionType, delta, budget, ledger, related); err != nil {
			return err
		}
	}

	if enc != nil {
		e := enc.Encumbrance
		e.AmountAwaitingPayment = calc.Add(e.AmountAwaitingPayment, delta)
		if e.Status == models.EncumbranceStatusUnreleased {
			enc.Amount = calc.SubtractFloorZero(enc.Amount, delta)
			if txn.ReleasesEncumbrance() {
				e.Status = models.EncumbranceStatusReleased
			}
		}
	}
	budget.AwaitingPayment = calc.Add(budget.AwaitingPayment, delta)
	h.Touch(budget, calc)
	return nil
}

// cancel reverses amount, the stored amount of txn, and voids it
func (s pendingPaymentStrategy) cancel(h *Holder, txn *models.Transaction, amount decimal.Decimal) error {
	calc, err := h.Calculator(txn)
	if err != nil {
		return err
	}
	budget, err := h.BudgetFor(txn)
	if err != nil {
		return err
	}
	if id := txn.LinkedEncumbranceID(); id != "" {
		enc, err := h.EncumbranceForUpdate(id)
		if err != nil {
			return err
		}
		e := enc.Encumbrance
		e.AmountAwaitingPayment = calc.Subtract(e.AmountAwaitingPayment, amount)
		if e.Status == models.EncumbranceStatusUnreleased {
			enc.Amount = encumbrance.Recalculate(calc, e)
		}
	}
	budget.AwaitingPayment = calc.Subtract(budget.AwaitingPayment, amount)
	voided := amount
	txn.VoidedAmount = &voided
	txn.Amount = decimal.Zero
	h.Touch(budget, calc)
	return nil
}
