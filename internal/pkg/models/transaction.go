package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement a transaction records
type TransactionType string

const (
	TransactionTypeAllocation     TransactionType = "Allocation"
	TransactionTypeTransfer       TransactionType = "Transfer"
	TransactionTypeEncumbrance    TransactionType = "Encumbrance"
	TransactionTypePendingPayment TransactionType = "Pending payment"
	TransactionTypePayment        TransactionType = "Payment"
	TransactionTypeCredit         TransactionType = "Credit"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeAllocation, TransactionTypeTransfer, TransactionTypeEncumbrance,
		TransactionTypePendingPayment, TransactionTypePayment, TransactionTypeCredit:
		return true
	}
	return false
}

// EncumbranceStatus is the state of an encumbrance, see the encumbrance package
type EncumbranceStatus string

const (
	EncumbranceStatusPending    EncumbranceStatus = "Pending"
	EncumbranceStatusUnreleased EncumbranceStatus = "Unreleased"
	EncumbranceStatusReleased   EncumbranceStatus = "Released"
)

// OrderStatus mirrors the purchase order workflow status
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusOpen    OrderStatus = "Open"
	OrderStatusClosed  OrderStatus = "Closed"
)

// Encumbrance is the encumbrance specific part of a transaction
type Encumbrance struct {
	Status                  EncumbranceStatus `json:"status"`
	OrderStatus             OrderStatus       `json:"orderStatus,omitempty"`
	OrderType               string            `json:"orderType,omitempty"`
	Subscription            bool              `json:"subscription"`
	ReEncumber              bool              `json:"reEncumber"`
	InitialAmountEncumbered decimal.Decimal   `json:"initialAmountEncumbered"`
	AmountAwaitingPayment   decimal.Decimal   `json:"amountAwaitingPayment"`
	AmountExpended          decimal.Decimal   `json:"amountExpended"`
	AmountCredited          decimal.Decimal   `json:"amountCredited"`
	SourcePurchaseOrderID   string            `json:"sourcePurchaseOrderId"`
	SourcePoLineID          string            `json:"sourcePoLineId,omitempty"`
}

// AwaitingPayment links a pending payment to the encumbrance it draws from
type AwaitingPayment struct {
	EncumbranceID      string `json:"encumbranceId,omitempty"`
	ReleaseEncumbrance bool   `json:"releaseEncumbrance"`
}

// Metadata is the audit stamp kept on every record
type Metadata struct {
	CreatedDate     *time.Time `json:"createdDate,omitempty"`
	CreatedByUserID string     `json:"createdByUserId,omitempty"`
	UpdatedDate     *time.Time `json:"updatedDate,omitempty"`
	UpdatedByUserID string     `json:"updatedByUserId,omitempty"`
}

// Transaction is one money movement between funds
type Transaction struct {
	ID                   string           `json:"id"`
	TransactionType      TransactionType  `json:"transactionType"`
	Amount               decimal.Decimal  `json:"amount"`
	Currency             string           `json:"currency"`
	FiscalYearID         string           `json:"fiscalYearId"`
	FromFundID           string           `json:"fromFundId,omitempty"`
	ToFundID             string           `json:"toFundId,omitempty"`
	Source               string           `json:"source,omitempty"`
	Description          string           `json:"description,omitempty"`
	ExpenseClassID       string           `json:"expenseClassId,omitempty"`
	SourceInvoiceID      string           `json:"sourceInvoiceId,omitempty"`
	SourceInvoiceLineID  string           `json:"sourceInvoiceLineId,omitempty"`
	PaymentEncumbranceID string           `json:"paymentEncumbranceId,omitempty"`
	Encumbrance          *Encumbrance     `json:"encumbrance,omitempty"`
	AwaitingPayment      *AwaitingPayment `json:"awaitingPayment,omitempty"`
	VoidedAmount         *decimal.Decimal `json:"voidedAmount,omitempty"`
	InvoiceCancelled     bool             `json:"invoiceCancelled,omitempty"`
	Version              int              `json:"_version,omitempty"`
	Metadata             *Metadata        `json:"metadata,omitempty"`
}

// Clone returns a deep copy so strategies can mutate without touching snapshots
func (t Transaction) Clone() Transaction {
	c := t
	if t.Encumbrance != nil {
		enc := *t.Encumbrance
		c.Encumbrance = &enc
	}
	if t.AwaitingPayment != nil {
		ap := *t.AwaitingPayment
		c.AwaitingPayment = &ap
	}
	if t.VoidedAmount != nil {
		v := *t.VoidedAmount
		c.VoidedAmount = &v
	}
	if t.Metadata != nil {
		m := *t.Metadata
		c.Metadata = &m
	}
	return c
}

// GroupID is the order id for encumbrances and the invoice id for the invoice family
func (t Transaction) GroupID() string {
	switch t.TransactionType {
	case TransactionTypeEncumbrance:
		if t.Encumbrance != nil {
			return t.Encumbrance.SourcePurchaseOrderID
		}
		return ""
	case TransactionTypePendingPayment, TransactionTypePayment, TransactionTypeCredit:
		return t.SourceInvoiceID
	}
	return ""
}

// LinkedEncumbranceID returns the encumbrance a pending payment, payment or credit draws from
func (t Transaction) LinkedEncumbranceID() string {
	switch t.TransactionType {
	case TransactionTypePendingPayment:
		if t.AwaitingPayment != nil {
			return t.AwaitingPayment.EncumbranceID
		}
	case TransactionTypePayment, TransactionTypeCredit:
		return t.PaymentEncumbranceID
	}
	return ""
}

// ReleasesEncumbrance reports whether a pending payment asks to release its encumbrance
func (t Transaction) ReleasesEncumbrance() bool {
	return t.AwaitingPayment != nil && t.AwaitingPayment.ReleaseEncumbrance
}

// EncumbranceStatus returns the status, or "" for non encumbrances
func (t Transaction) EncumbranceStatus() EncumbranceStatus {
	if t.Encumbrance == nil {
		return ""
	}
	return t.Encumbrance.Status
}

// BudgetFundID is the fund whose budget a transaction of this type consumes
func (t Transaction) BudgetFundID() string {
	if t.TransactionType == TransactionTypeCredit {
		return t.ToFundID
	}
	if t.FromFundID != "" {
		return t.FromFundID
	}
	return t.ToFundID
}

// BudgetKeys returns every budget the transaction touches
func (t Transaction) BudgetKeys() []BudgetKey {
	switch t.TransactionType {
	case TransactionTypeAllocation, TransactionTypeTransfer:
		var keys []BudgetKey
		if t.FromFundID != "" {
			keys = append(keys, BudgetKey{FundID: t.FromFundID, FiscalYearID: t.FiscalYearID})
		}
		if t.ToFundID != "" {
			keys = append(keys, BudgetKey{FundID: t.ToFundID, FiscalYearID: t.FiscalYearID})
		}
		return keys
	default:
		if fundID := t.BudgetFundID(); fundID != "" {
			return []BudgetKey{{FundID: fundID, FiscalYearID: t.FiscalYearID}}
		}
	}
	return nil
}

// Stamp fills the audit metadata for a create (existing == nil) or an update
func (t *Transaction) Stamp(existing *Metadata, userID string, now time.Time) {
	md := &Metadata{}
	if existing != nil {
		*md = *existing
	}
	if md.CreatedDate == nil {
		md.CreatedDate = &now
		md.CreatedByUserID = userID
	}
	md.UpdatedDate = &now
	md.UpdatedByUserID = userID
	t.Metadata = md
}
