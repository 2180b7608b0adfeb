// Package encumbrance holds the status transitions of an encumbrance and the
// effect each one has on the encumbered total of its budget.
package encumbrance

import (
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Effect is the outcome of moving an encumbrance from its stored state to the
// submitted one. Skip means the budget is left untouched.
type Effect struct {
	Amount          decimal.Decimal
	InitialAmount   decimal.Decimal
	EncumberedDelta decimal.Decimal
	Skip            bool
}

// Recalculate returns initial - awaiting - expended + credited, bounded by 0 and the initial amount
func Recalculate(calc money.Calculator, enc *models.Encumbrance) decimal.Decimal {
	return recalculate(calc, enc.InitialAmountEncumbered, enc.AmountAwaitingPayment, enc.AmountExpended, enc.AmountCredited)
}

func recalculate(calc money.Calculator, initial, awaiting, expended, credited decimal.Decimal) decimal.Decimal {
	amount := calc.Add(calc.Subtract(calc.Subtract(initial, awaiting), expended), credited)
	return money.Min(money.FloorZero(amount), money.FloorZero(initial))
}

// Transition computes the new amount of incoming given the stored existing
// encumbrance. Neither argument is modified.
func Transition(calc money.Calculator, existing, incoming *models.Transaction) (Effect, error) {
	if existing.Encumbrance == nil || incoming.Encumbrance == nil {
		return Effect{}, apperror.FieldRequired("encumbrance")
	}
	from, to := existing.Encumbrance, incoming.Encumbrance

	if from.OrderStatus == models.OrderStatusClosed && to.OrderStatus != models.OrderStatusClosed {
		return Effect{}, apperror.BadRequest(apperror.CodeOrderIsClosed, apperror.Param("id", incoming.ID))
	}

	effect := Effect{Amount: incoming.Amount, InitialAmount: to.InitialAmountEncumbered}
	if from.Status == models.EncumbranceStatusReleased && to.Status != models.EncumbranceStatusUnreleased {
		effect.Skip = true
		return effect, nil
	}

	switch {
	case to.Status == models.EncumbranceStatusReleased:
		effect.Amount = decimal.Zero
		effect.EncumberedDelta = existing.Amount.Neg()

	case from.Status == models.EncumbranceStatusUnreleased && to.Status == models.EncumbranceStatusPending:
		effect.Amount = decimal.Zero
		effect.InitialAmount = decimal.Zero
		effect.EncumberedDelta = existing.Amount.Neg()

	case from.Status == models.EncumbranceStatusPending && to.Status == models.EncumbranceStatusUnreleased:
		effect.Amount = recalculate(calc, to.InitialAmountEncumbered, from.AmountAwaitingPayment, from.AmountExpended, to.AmountCredited)
		effect.EncumberedDelta = effect.Amount

	case from.Status == models.EncumbranceStatusReleased && to.Status == models.EncumbranceStatusUnreleased:
		if nonZero(incoming) {
			effect.Amount = Recalculate(calc, to)
		} else {
			effect.Amount = to.InitialAmountEncumbered
		}
		effect.EncumberedDelta = effect.Amount

	default:
		if !nonZero(incoming) {
			effect.Amount = money.Min(incoming.Amount, from.InitialAmountEncumbered)
		}
		effect.EncumberedDelta = calc.Subtract(effect.Amount, existing.Amount)
	}
	return effect, nil
}

// Apply writes the effect into txn
func (e Effect) Apply(txn *models.Transaction) {
	if e.Skip {
		return
	}
	txn.Amount = e.Amount
	txn.Encumbrance.InitialAmountEncumbered = e.InitialAmount
}

func nonZero(txn *models.Transaction) bool {
	initial := txn.Encumbrance.InitialAmountEncumbered
	return initial.IsPositive() && txn.Amount.LessThanOrEqual(initial)
}
