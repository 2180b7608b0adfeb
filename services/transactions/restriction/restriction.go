// Package restriction decides whether a debit fits the overspend policy of
// its budget and ledger. It has no side effects.
package restriction

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// CheckAllowed returns nil when amount may be debited from budget.
//
// related is the amount already counted in the budget that the debit replaces:
// the linked encumbrance amount for a pending payment, the pending payment
// amount for a payment. It is ignored for encumbrances.
//
// An encumbrance of zero still needs an active budget.
func CheckAllowed(calc money.Calculator, txnType models.TransactionType, amount decimal.Decimal,
	budget *models.Budget, ledger *models.Ledger, related decimal.Decimal) error {
	switch txnType {
	case models.TransactionTypeEncumbrance:
		if amount.IsNegative() {
			return nil
		}
	case models.TransactionTypePendingPayment, models.TransactionTypePayment:
		if !amount.IsPositive() {
			return nil
		}
	default:
		return nil
	}

	if budget.BudgetStatus != models.BudgetStatusActive {
		return apperror.BadRequest(apperror.CodeBudgetIsInactive, params(budget)...)
	}
	if ledger == nil {
		return nil
	}

	if txnType == models.TransactionTypeEncumbrance {
		if !ledger.RestrictEncumbrance || budget.AllowableEncumbrance == nil {
			return nil
		}
		if amount.GreaterThan(EncumbranceHeadroom(calc, budget)) {
			return apperror.BadRequest(apperror.CodeRestrictedEncumbrance, params(budget)...)
		}
		return nil
	}

	if !ledger.RestrictExpenditures || budget.AllowableExpenditure == nil {
		return nil
	}
	if amount.GreaterThan(ExpenditureHeadroom(calc, budget, related)) {
		return apperror.BadRequest(apperror.CodeRestrictedExpenditures, params(budget)...)
	}
	return nil
}

// EncumbranceHeadroom is how much more may be encumbered on budget
func EncumbranceHeadroom(calc money.Calculator, b *models.Budget) decimal.Decimal {
	limit := calc.Percent(b.Allocated, *b.AllowableEncumbrance)
	return calc.Subtract(calc.Subtract(limit, outstanding(calc, b)), spent(calc, b))
}

// ExpenditureHeadroom is how much more may be awaiting payment or expended on budget
func ExpenditureHeadroom(calc money.Calculator, b *models.Budget, related decimal.Decimal) decimal.Decimal {
	limit := calc.Percent(calc.Add(b.Allocated, b.NetTransfers), *b.AllowableExpenditure)
	used := calc.Subtract(spent(calc, b), related)
	return calc.Subtract(calc.Subtract(limit, outstanding(calc, b)), used)
}

// outstanding is the part of the allocation not covered by available and unavailable
func outstanding(calc money.Calculator, b *models.Budget) decimal.Decimal {
	return calc.Subtract(b.Allocated, calc.Add(b.Unavailable, b.Available))
}

func spent(calc money.Calculator, b *models.Budget) decimal.Decimal {
	return calc.Add(calc.Add(b.Encumbered, b.AwaitingPayment), b.Expenditures)
}

func params(b *models.Budget) []apperror.Parameter {
	return []apperror.Parameter{
		apperror.Param("budgetId", b.ID),
		apperror.Param("fundId", b.FundID),
	}
}
