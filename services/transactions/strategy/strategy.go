// Package strategy applies each transaction type to the budgets and linked
// encumbrances of a commit.
package strategy

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
)

// Strategy validates and applies the transactions of one type
type Strategy interface {
	Type() models.TransactionType
	// Validate checks the shape of a single transaction, without database access
	Validate(txn *models.Transaction) error
	// Apply processes every create, update and delete of the type found in h
	Apply(h *Holder) error
}

var (
	allocation     = allocationStrategy{}
	transfer       = transferStrategy{}
	paymentCredit  = paymentCreditStrategy{}
	pendingPayment = pendingPaymentStrategy{}
	encumbrances   = encumbranceStrategy{}

	registry = map[models.TransactionType]Strategy{
		models.TransactionTypeAllocation:     allocation,
		models.TransactionTypeTransfer:       transfer,
		models.TransactionTypePayment:        paymentCredit,
		models.TransactionTypeCredit:         paymentCredit,
		models.TransactionTypePendingPayment: pendingPayment,
		models.TransactionTypeEncumbrance:    encumbrances,
	}

	// encumbrances come last so they settle the changes queued by payments
	processingOrder = []Strategy{allocation, transfer, paymentCredit, pendingPayment, encumbrances}
)

// For returns the strategy of t. Credits share the payment strategy.
func For(t models.TransactionType) (Strategy, error) {
	s, ok := registry[t]
	if !ok {
		return nil, apperror.Unprocessable(apperror.CodeInvalidTransactionType,
			apperror.Param("transactionType", string(t)))
	}
	return s, nil
}

// Validate runs the shape checks of txn's strategy
func Validate(txn *models.Transaction) error {
	s, err := For(txn.TransactionType)
	if err != nil {
		return err
	}
	return s.Validate(txn)
}

// ApplyAll runs every strategy over h in processing order
func ApplyAll(h *Holder) error {
	for _, s := range processingOrder {
		if err := s.Apply(h); err != nil {
			return err
		}
	}
	return nil
}

func requireFund(fieldName, fundID string) error {
	if fundID == "" {
		return apperror.BadRequest(apperror.CodeMissingFundID, apperror.Param("fieldName", fieldName))
	}
	return nil
}

func requireInvoice(txn *models.Transaction) error {
	if txn.SourceInvoiceID == "" {
		return apperror.BadRequest(apperror.CodeMissingInvoiceID, apperror.Param("id", txn.ID))
	}
	return nil
}

func activeOrPlanned(h *Holder, b *models.Budget) error {
	if b.BudgetStatus != models.BudgetStatusActive && b.BudgetStatus != models.BudgetStatusPlanned {
		return apperror.BadRequest(apperror.CodeBudgetNotActiveOrPlanned, apperror.Param("fundCode", h.FundCode(b)))
	}
	return nil
}
