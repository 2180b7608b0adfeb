package models

// SummaryFamily tells which staging table and summary table a group belongs to
type SummaryFamily string

const (
	SummaryFamilyOrder   SummaryFamily = "order"
	SummaryFamilyInvoice SummaryFamily = "invoice"
)

// Stage is the slice of a group committed together by the staged protocol
type Stage string

const (
	StageEncumbrances    Stage = "encumbrances"
	StagePendingPayments Stage = "pending-payments"
	StagePaymentsCredits Stage = "payments-credits"
)

// StageOf returns the stage a staged transaction belongs to, ok is false for
// allocations and transfers which are committed without staging.
func StageOf(t TransactionType) (Stage, bool) {
	switch t {
	case TransactionTypeEncumbrance:
		return StageEncumbrances, true
	case TransactionTypePendingPayment:
		return StagePendingPayments, true
	case TransactionTypePayment, TransactionTypeCredit:
		return StagePaymentsCredits, true
	}
	return "", false
}

// Family returns the summary family of the stage
func (s Stage) Family() SummaryFamily {
	if s == StageEncumbrances {
		return SummaryFamilyOrder
	}
	return SummaryFamilyInvoice
}

// Types returns the transaction types counted towards the stage
func (s Stage) Types() []TransactionType {
	switch s {
	case StageEncumbrances:
		return []TransactionType{TransactionTypeEncumbrance}
	case StagePendingPayments:
		return []TransactionType{TransactionTypePendingPayment}
	case StagePaymentsCredits:
		return []TransactionType{TransactionTypePayment, TransactionTypeCredit}
	}
	return nil
}

// OrderTransactionSummary declares how many encumbrances an order will post
type OrderTransactionSummary struct {
	ID              string `json:"id" db:"id"`
	NumTransactions int    `json:"numTransactions" db:"num_transactions"`
	Processed       bool   `json:"-" db:"processed"`
}

// InvoiceTransactionSummary declares the pending payments and payments/credits of an invoice
type InvoiceTransactionSummary struct {
	ID                       string `json:"id" db:"id"`
	NumPendingPayments       int    `json:"numPendingPayments" db:"num_pending_payments"`
	NumPaymentsCredits       int    `json:"numPaymentsCredits" db:"num_payments_credits"`
	PendingPaymentsProcessed bool   `json:"-" db:"pending_payments_processed"`
	PaymentsCreditsProcessed bool   `json:"-" db:"payments_credits_processed"`
}

// TransactionSummary is the family independent view used by the staged coordinator
type TransactionSummary struct {
	ID                       string
	Family                   SummaryFamily
	NumTransactions          int
	NumPendingPayments       int
	NumPaymentsCredits       int
	Processed                bool
	PendingPaymentsProcessed bool
	PaymentsCreditsProcessed bool
}

// Expected returns the declared transaction count of the stage
func (s *TransactionSummary) Expected(stage Stage) int {
	switch stage {
	case StageEncumbrances:
		return s.NumTransactions
	case StagePendingPayments:
		return s.NumPendingPayments
	case StagePaymentsCredits:
		return s.NumPaymentsCredits
	}
	return 0
}

// IsProcessed reports whether the stage was already committed
func (s *TransactionSummary) IsProcessed(stage Stage) bool {
	switch stage {
	case StageEncumbrances:
		return s.Processed
	case StagePendingPayments:
		return s.PendingPaymentsProcessed
	case StagePaymentsCredits:
		return s.PaymentsCreditsProcessed
	}
	return false
}

// OrderSummary converts to the stored order summary
func (s *TransactionSummary) OrderSummary() OrderTransactionSummary {
	return OrderTransactionSummary{ID: s.ID, NumTransactions: s.NumTransactions, Processed: s.Processed}
}

// InvoiceSummary converts to the stored invoice summary
func (s *TransactionSummary) InvoiceSummary() InvoiceTransactionSummary {
	return InvoiceTransactionSummary{
		ID:                       s.ID,
		NumPendingPayments:       s.NumPendingPayments,
		NumPaymentsCredits:       s.NumPaymentsCredits,
		PendingPaymentsProcessed: s.PendingPaymentsProcessed,
		PaymentsCreditsProcessed: s.PaymentsCreditsProcessed,
	}
}

// FromOrderSummary builds the family independent view
func FromOrderSummary(o OrderTransactionSummary) *TransactionSummary {
	return &TransactionSummary{ID: o.ID, Family: SummaryFamilyOrder, NumTransactions: o.NumTransactions, Processed: o.Processed}
}

// FromInvoiceSummary builds the family independent view
func FromInvoiceSummary(i InvoiceTransactionSummary) *TransactionSummary {
	return &TransactionSummary{
		ID:                       i.ID,
		Family:                   SummaryFamilyInvoice,
		NumPendingPayments:       i.NumPendingPayments,
		NumPaymentsCredits:       i.NumPaymentsCredits,
		PendingPaymentsProcessed: i.PendingPaymentsProcessed,
		PaymentsCreditsProcessed: i.PaymentsCreditsProcessed,
	}
}
