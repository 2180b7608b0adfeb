package strategy

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
)

type allocationStrategy struct{}

func (allocationStrategy) Type() models.TransactionType {
	return models.TransactionTypeAllocation
}

func (allocationStrategy) Validate(txn *models.Transaction) error {
	if !txn.Amount.IsPositive() {
		return apperror.BadRequest(apperror.CodeAllocationMustBePositive, apperror.Param("fieldName", "amount"))
	}
	if txn.ToFundID == "" && txn.FromFundID == "" {
		return requireFund("toFundId", "")
	}
	return nil
}

func (allocationStrategy) Apply(h *Holder) error {
	for _, txn := range h.Creates(models.TransactionTypeAllocation) {
		calc, err := h.Calculator(txn)
		if err != nil {
			return err
		}
		if txn.FromFundID != "" {
			from, err := h.Budget(txn, txn.FromFundID)
			if err != nil {
				return err
			}
			if err := activeOrPlanned(h, from); err != nil {
				return err
			}
			from.AllocationFrom = calc.Add(from.AllocationFrom, txn.Amount)
			h.Touch(from, calc)
		}
		if txn.ToFundID != "" {
			to, err := h.Budget(txn, txn.ToFundID)
			if err != nil {
				return err
			}
			if err := activeOrPlanned(h, to); err != nil {
				return err
			}
			to.AllocationTo = calc.Add(to.AllocationTo, txn.Amount)
			h.Touch(to, calc)
		}
	}
	return nil
}
