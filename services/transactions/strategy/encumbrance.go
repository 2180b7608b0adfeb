package strategy

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions/encumbrance"
	"github.com/piresc/finstorage/services/transactions/restriction"
	"github.com/shopspring/decimal"
)

type encumbranceStrategy struct{}

func (encumbranceStrategy) Type() models.TransactionType {
	return models.TransactionTypeEncumbrance
}

func (encumbranceStrategy) Validate(txn *models.Transaction) error {
	if txn.Encumbrance == nil || txn.Encumbrance.SourcePurchaseOrderID == "" {
		return apperror.BadRequest(apperror.CodeMissingOrderID, apperror.Param("id", txn.ID))
	}
	if txn.Amount.IsNegative() {
		return apperror.Unprocessable(apperror.CodeInvalidValue, apperror.Param("amount", txn.Amount.String()))
	}
	return requireFund("fromFundId", txn.FromFundID)
}

func (s encumbranceStrategy) Apply(h *Holder) error {
	for _, txn := range h.Creates(models.TransactionTypeEncumbrance) {
		if err := s.create(h, txn); err != nil {
			return err
		}
	}
	for _, txn := range h.Updates(models.TransactionTypeEncumbrance) {
		if err := s.update(h, txn); err != nil {
			return err
		}
	}
	for _, stored := range h.Deletes(models.TransactionTypeEncumbrance) {
		if err := s.delete(h, stored); err != nil {
			return err
		}
	}
	return nil
}

func (encumbranceStrategy) create(h *Holder, txn *models.Transaction) error {
	calc, err := h.Calculator(txn)
	if err != nil {
		return err
	}
	budget, err := h.BudgetFor(txn)
	if err != nil {
		return err
	}
	if txn.Encumbrance.InitialAmountEncumbered.IsZero() {
		txn.Encumbrance.InitialAmountEncumbered = txn.Amount
	}
	if txn.Encumbrance.Status == "" {
		txn.Encumbrance.Status = models.EncumbranceStatusUnreleased
	}
	if txn.Encumbrance.Status != models.EncumbranceStatusUnreleased {
		return nil
	}
	ledger, err := h.Ledger(budget)
	if err != nil {
		return err
	}
	if err := restriction.CheckAllowed(calc, txn.TransactionType, txn.Amount, budget, ledger, decimal.Zero); err != nil {
		return err
	}
	budget.Encumbered = calc.Add(budget.Encumbered, txn.Amount)
	h.Touch(budget, calc)
	return nil
}

func (encumbranceStrategy) update(h *Holder, txn *models.Transaction) error {
	existing := h.Existing(txn.ID)
	if existing == nil {
		return apperror.NotFound(apperror.CodeTransactionNotFound, apperror.Param("id", txn.ID))
	}
	calc, err := h.Calculator(txn)
	if err != nil {
		return err
	}
	effect, err := encumbrance.Transition(calc, existing, txn)
	if err != nil {
		return err
	}
	if effect.Skip {
		return nil
	}
	budget, err := h.BudgetFor(txn)
	if err != nil {
		return err
	}
	if effect.EncumberedDelta.IsPositive() && !h.IsDerived(txn.ID) {
		ledger, err := h.Ledger(budget)
		if err != nil {
			return err
		}
		if err := restriction.CheckAllowed(calc, txn.TransactionType, effect.EncumberedDelta, budget, ledger, decimal.Zero); err != nil {
			return err
		}
	}
	logger.Debug("Encumbrance transition",
		logger.String("id", txn.ID),
		logger.String("from", string(existing.EncumbranceStatus())),
		logger.String("to", string(txn.EncumbranceStatus())),
		logger.Decimal("encumberedDelta", effect.EncumberedDelta))
	effect.Apply(txn)
	budget.Encumbered = calc.Add(budget.Encumbered, effect.EncumberedDelta)
	h.Touch(budget, calc)
	return nil
}

// delete releases the amount of an unreleased encumbrance. Released and
// zero amount encumbrances leave the budget unchanged.
func (encumbranceStrategy) delete(h *Holder, stored *models.Transaction) error {
	if stored.EncumbranceStatus() != models.EncumbranceStatusUnreleased || stored.Amount.IsZero() {
		return nil
	}
	calc, err := h.Calculator(stored)
	if err != nil {
		return err
	}
	budget, err := h.BudgetFor(stored)
	if err != nil {
		return err
	}
	budget.Encumbered = calc.Subtract(budget.Encumbered, stored.Amount)
	h.Touch(budget, calc)
	return nil
}
