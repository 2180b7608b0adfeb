package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/piresc/finstorage/internal/pkg/models"
)

// transactionDTO is the transaction row. The document lives in jsonb, the
// other columns are copies used by lookups and reference checks.
type transactionDTO struct {
	ID                    string         `db:"id"`
	TransactionType       string         `db:"transaction_type"`
	FiscalYearID          string         `db:"fiscal_year_id"`
	FromFundID            sql.NullString `db:"from_fund_id"`
	ToFundID              sql.NullString `db:"to_fund_id"`
	SourceInvoiceID       sql.NullString `db:"source_invoice_id"`
	SourcePurchaseOrderID sql.NullString `db:"source_purchase_order_id"`
	PaymentEncumbranceID  sql.NullString `db:"payment_encumbrance_id"`
	AwaitingEncumbranceID sql.NullString `db:"awaiting_encumbrance_id"`
	JSONB                 []byte         `db:"jsonb"`
	Version               int            `db:"version"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toTransactionDTO(t *models.Transaction) (*transactionDTO, error) {
	doc, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction %s: %w", t.ID, err)
	}
	dto := &transactionDTO{
		ID:                   t.ID,
		TransactionType:      string(t.TransactionType),
		FiscalYearID:         t.FiscalYearID,
		FromFundID:           nullString(t.FromFundID),
		ToFundID:             nullString(t.ToFundID),
		SourceInvoiceID:      nullString(t.SourceInvoiceID),
		PaymentEncumbranceID: nullString(t.PaymentEncumbranceID),
		JSONB:                doc,
		Version:              t.Version,
	}
	if t.Encumbrance != nil {
		dto.SourcePurchaseOrderID = nullString(t.Encumbrance.SourcePurchaseOrderID)
	}
	if t.AwaitingPayment != nil {
		dto.AwaitingEncumbranceID = nullString(t.AwaitingPayment.EncumbranceID)
	}
	return dto, nil
}

// ToTransaction decodes the stored document, the version column wins
func (d *transactionDTO) ToTransaction() (*models.Transaction, error) {
	var t models.Transaction
	if err := json.Unmarshal(d.JSONB, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction %s: %w", d.ID, err)
	}
	t.ID = d.ID
	if d.Version != 0 {
		t.Version = d.Version
	}
	return &t, nil
}

func toTransactions(dtos []transactionDTO) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0, len(dtos))
	for i := range dtos {
		t, err := dtos[i].ToTransaction()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// budgetDTO is the budget row
type budgetDTO struct {
	ID           string `db:"id"`
	FundID       string `db:"fund_id"`
	FiscalYearID string `db:"fiscal_year_id"`
	JSONB        []byte `db:"jsonb"`
	Version      int    `db:"version"`
}

func toBudgetDTO(b *models.Budget) (*budgetDTO, error) {
	doc, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal budget %s: %w", b.ID, err)
	}
	return &budgetDTO{ID: b.ID, FundID: b.FundID, FiscalYearID: b.FiscalYearID, JSONB: doc, Version: b.Version}, nil
}

// ToBudget decodes the stored document
func (d *budgetDTO) ToBudget() (*models.Budget, error) {
	var b models.Budget
	if err := json.Unmarshal(d.JSONB, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal budget %s: %w", d.ID, err)
	}
	b.ID = d.ID
	b.FundID = d.FundID
	b.FiscalYearID = d.FiscalYearID
	if d.Version != 0 {
		b.Version = d.Version
	}
	return &b, nil
}

// stagedDTO is a row of a temporary staging table
type stagedDTO struct {
	ID              string `db:"id"`
	GroupID         string `db:"group_id"`
	TransactionType string `db:"transaction_type"`
	JSONB           []byte `db:"jsonb"`
}
