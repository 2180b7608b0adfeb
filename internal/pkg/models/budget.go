package models

import (
	"github.com/piresc/finstorage/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// BudgetStatus is the lifecycle state of a budget
type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "Active"
	BudgetStatusFrozen   BudgetStatus = "Frozen"
	BudgetStatusInactive BudgetStatus = "Inactive"
	BudgetStatusPlanned  BudgetStatus = "Planned"
	BudgetStatusClosed   BudgetStatus = "Closed"
)

// BudgetKey identifies the single budget of a fund in a fiscal year
type BudgetKey struct {
	FundID       string
	FiscalYearID string
}

// Budget holds the money of one fund for one fiscal year
type Budget struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	FundID               string           `json:"fundId"`
	FiscalYearID         string           `json:"fiscalYearId"`
	BudgetStatus         BudgetStatus     `json:"budgetStatus"`
	AllowableEncumbrance *decimal.Decimal `json:"allowableEncumbrance,omitempty"`
	AllowableExpenditure *decimal.Decimal `json:"allowableExpenditure,omitempty"`
	InitialAllocation    decimal.Decimal  `json:"initialAllocation"`
	AllocationTo         decimal.Decimal  `json:"allocationTo"`
	AllocationFrom       decimal.Decimal  `json:"allocationFrom"`
	Allocated            decimal.Decimal  `json:"allocated"`
	NetTransfers         decimal.Decimal  `json:"netTransfers"`
	Encumbered           decimal.Decimal  `json:"encumbered"`
	AwaitingPayment      decimal.Decimal  `json:"awaitingPayment"`
	Expenditures         decimal.Decimal  `json:"expenditures"`
	Credits              decimal.Decimal  `json:"credits"`
	OverEncumbrance      decimal.Decimal  `json:"overEncumbrance"`
	OverExpended         decimal.Decimal  `json:"overExpended"`
	Available            decimal.Decimal  `json:"available"`
	Unavailable          decimal.Decimal  `json:"unavailable"`
	TotalFunding         decimal.Decimal  `json:"totalFunding"`
	CashBalance          decimal.Decimal  `json:"cashBalance"`
	Version              int              `json:"_version,omitempty"`
	Metadata             *Metadata        `json:"metadata,omitempty"`
}

// Key returns the (fund, fiscal year) pair of the budget
func (b *Budget) Key() BudgetKey {
	return BudgetKey{FundID: b.FundID, FiscalYearID: b.FiscalYearID}
}

// Clone returns a copy safe to mutate
func (b Budget) Clone() Budget {
	c := b
	if b.AllowableEncumbrance != nil {
		v := *b.AllowableEncumbrance
		c.AllowableEncumbrance = &v
	}
	if b.AllowableExpenditure != nil {
		v := *b.AllowableExpenditure
		c.AllowableExpenditure = &v
	}
	if b.Metadata != nil {
		m := *b.Metadata
		c.Metadata = &m
	}
	return c
}

// HasMoney reports whether the budget still carries encumbered, awaiting or expended amounts
func (b *Budget) HasMoney() bool {
	return !b.Encumbered.IsZero() || !b.AwaitingPayment.IsZero() || !b.Expenditures.IsZero()
}

// Recalculate derives every summary field from the stored counters. It is the
// only place counters are clamped, and it runs before each budget write.
func (b *Budget) Recalculate(calc money.Calculator) {
	b.Encumbered = money.FloorZero(calc.Round(b.Encumbered))
	b.AwaitingPayment = money.FloorZero(calc.Round(b.AwaitingPayment))
	b.Expenditures = money.FloorZero(calc.Round(b.Expenditures))
	b.Credits = money.FloorZero(calc.Round(b.Credits))
	b.Derive(calc)
}

// Derive refreshes the summary fields from the counters without clamping them.
// Strategies call it between steps so later checks see current totals.
func (b *Budget) Derive(calc money.Calculator) {
	b.Allocated = calc.Subtract(calc.Add(b.InitialAllocation, b.AllocationTo), b.AllocationFrom)
	b.TotalFunding = calc.Add(b.Allocated, b.NetTransfers)
	b.Unavailable = calc.Add(calc.Add(b.Encumbered, b.AwaitingPayment), b.Expenditures)
	b.Available = calc.SubtractFloorZero(b.TotalFunding, b.Unavailable)
	b.CashBalance = calc.Subtract(b.TotalFunding, b.Expenditures)

	spendable := calc.Subtract(calc.Subtract(b.Allocated, b.Expenditures), b.AwaitingPayment)
	b.OverEncumbrance = calc.SubtractFloorZero(b.Encumbered, spendable)

	spent := calc.Add(b.Expenditures, b.AwaitingPayment)
	b.OverExpended = calc.SubtractFloorZero(spent, money.FloorZero(b.TotalFunding))
}

// Ledger groups funds and carries their overspend policy
type Ledger struct {
	ID                   string `json:"id" db:"id"`
	Name                 string `json:"name" db:"name"`
	RestrictEncumbrance  bool   `json:"restrictEncumbrance" db:"restrict_encumbrance"`
	RestrictExpenditures bool   `json:"restrictExpenditures" db:"restrict_expenditures"`
}

// Fund belongs to exactly one ledger
type Fund struct {
	ID       string `json:"id" db:"id"`
	Code     string `json:"code" db:"code"`
	LedgerID string `json:"ledgerId" db:"ledger_id"`
}
