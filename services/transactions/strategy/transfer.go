package strategy

import (
	"github.com/piresc/finstorage/internal/pkg/models"
)

type transferStrategy struct{}

func (transferStrategy) Type() models.TransactionType {
	return models.TransactionTypeTransfer
}

func (transferStrategy) Validate(txn *models.Transaction) error {
	return requireFund("toFundId", txn.ToFundID)
}

func (transferStrategy) Apply(h *Holder) error {
	for _, txn := range h.Creates(models.TransactionTypeTransfer) {
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
			from.NetTransfers = calc.Subtract(from.NetTransfers, txn.Amount)
			h.Touch(from, calc)
		}
		to, err := h.Budget(txn, txn.ToFundID)
		if err != nil {
			return err
		}
		if err := activeOrPlanned(h, to); err != nil {
			return err
		}
		to.NetTransfers = calc.Add(to.NetTransfers, txn.Amount)
		h.Touch(to, calc)
	}
	return nil
}
