package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/logger"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/internal/pkg/requestcontext"
	"github.com/piresc/finstorage/services/transactions"
)

const (
	tableTransaction        = "transaction"
	tableBudget             = "budget"
	tableFund               = "fund"
	tableLedger             = "ledger"
	tableOrderSummaries     = "order_transaction_summaries"
	tableInvoiceSummaries   = "invoice_transaction_summaries"
	tableOrderStaging       = "temporary_order_transactions"
	tableInvoiceStaging     = "temporary_invoice_transactions"
	transactionSelectFields = "id, jsonb, version"
)

// TransactionRepo implements transactions.TransactionRepo on PostgreSQL. Each
// tenant has its own schema named <tenant><suffix>.
type TransactionRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(cfg *models.Config, db *sqlx.DB) *TransactionRepo {
	logger.Info("Initializing transaction repository")
	return &TransactionRepo{
		cfg: cfg,
		db:  db,
	}
}

// Schema returns the quoted schema of the tenant found in ctx
func (r *TransactionRepo) Schema(ctx context.Context) string {
	tenant := requestcontext.GetTenant(ctx)
	if tenant == "" {
		tenant = r.cfg.Tenant.Default
	}
	return pq.QuoteIdentifier(strings.ToLower(tenant) + r.cfg.Tenant.SchemaSuffix)
}

func (r *TransactionRepo) store(ctx context.Context) *store {
	return &store{q: r.db, schema: r.Schema(ctx)}
}

// WithTx runs fn in one database transaction
func (r *TransactionRepo) WithTx(ctx context.Context, fn func(tx transactions.TransactionTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&store{q: tx, schema: r.Schema(ctx)}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a committed transaction by id
func (r *TransactionRepo) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return r.store(ctx).getTransaction(ctx, id)
}

// GetBudget retrieves a budget by id
func (r *TransactionRepo) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	return r.store(ctx).getBudget(ctx, id, false)
}

// GetSummary retrieves the summary of a group
func (r *TransactionRepo) GetSummary(ctx context.Context, family models.SummaryFamily, id string) (*models.TransactionSummary, error) {
	return r.store(ctx).getSummary(ctx, family, id, false)
}

// SaveOrderSummary creates or replaces an order summary
func (r *TransactionRepo) SaveOrderSummary(ctx context.Context, summary *models.OrderTransactionSummary) error {
	return r.store(ctx).saveOrderSummary(ctx, summary)
}

// SaveInvoiceSummary creates or replaces an invoice summary
func (r *TransactionRepo) SaveInvoiceSummary(ctx context.Context, summary *models.InvoiceTransactionSummary) error {
	return r.store(ctx).saveInvoiceSummary(ctx, summary)
}

// StageTransaction upserts txn into the staging table of stage
func (r *TransactionRepo) StageTransaction(ctx context.Context, stage models.Stage, txn *models.Transaction) error {
	return r.store(ctx).stageTransaction(ctx, stage, txn)
}

// CountStaged counts the staged transactions of a group counted by stage
func (r *TransactionRepo) CountStaged(ctx context.Context, stage models.Stage, groupID string) (int, error) {
	return r.store(ctx).countStaged(ctx, stage, groupID)
}

// store runs queries against one tenant schema, on the pool or inside a transaction
type store struct {
	q      sqlx.ExtContext
	schema string
}

func (s *store) table(name string) string {
	return s.schema + "." + name
}

func (s *store) getTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, transactionSelectFields, s.table(tableTransaction))

	var dto transactionDTO
	if err := sqlx.GetContext(ctx, s.q, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactions.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return dto.ToTransaction()
}

// GetTransactionsByIDs returns the committed transactions among ids
func (s *store) GetTransactionsByIDs(ctx context.Context, ids []string) ([]*models.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1::uuid[])`, transactionSelectFields, s.table(tableTransaction))

	var dtos []transactionDTO
	if err := sqlx.SelectContext(ctx, s.q, &dtos, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return toTransactions(dtos)
}

// GetPendingPaymentsByInvoice returns the committed pending payments of an invoice
func (s *store) GetPendingPaymentsByInvoice(ctx context.Context, invoiceID string) ([]*models.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE source_invoice_id = $1 AND transaction_type = $2`,
		transactionSelectFields, s.table(tableTransaction))

	var dtos []transactionDTO
	if err := sqlx.SelectContext(ctx, s.q, &dtos, query, invoiceID, string(models.TransactionTypePendingPayment)); err != nil {
		return nil, fmt.Errorf("failed to get pending payments: %w", err)
	}
	return toTransactions(dtos)
}

// GetReferencingIDs maps each id to the payments, credits and pending payments pointing at it
func (s *store) GetReferencingIDs(ctx context.Context, ids []string) (map[string][]string, error) {
	refs := make(map[string][]string)
	if len(ids) == 0 {
		return refs, nil
	}
	query := fmt.Sprintf(`
		SELECT id, payment_encumbrance_id, awaiting_encumbrance_id
		FROM %s
		WHERE payment_encumbrance_id = ANY($1::uuid[]) OR awaiting_encumbrance_id = ANY($1::uuid[])
	`, s.table(tableTransaction))

	var rows []transactionDTO
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get referencing transactions: %w", err)
	}
	for _, row := range rows {
		for _, target := range []sql.NullString{row.PaymentEncumbranceID, row.AwaitingEncumbranceID} {
			if target.Valid {
				refs[target.String] = append(refs[target.String], row.ID)
			}
		}
	}
	return refs, nil
}

// CreateTransactions inserts txns with version 1
func (s *store) CreateTransactions(ctx context.Context, txns []*models.Transaction) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, transaction_type, fiscal_year_id, from_fund_id, to_fund_id,
			source_invoice_id, source_purchase_order_id, payment_encumbrance_id, awaiting_encumbrance_id,
			jsonb, version
		) VALUES (
			:id, :transaction_type, :fiscal_year_id, :from_fund_id, :to_fund_id,
			:source_invoice_id, :source_purchase_order_id, :payment_encumbrance_id, :awaiting_encumbrance_id,
			:jsonb, :version
		)
	`, s.table(tableTransaction))

	for _, t := range txns {
		t.Version = 1
		dto, err := toTransactionDTO(t)
		if err != nil {
			return err
		}
		if _, err := sqlx.NamedExecContext(ctx, s.q, query, dto); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

// UpdateTransactions writes txns when their stored version still matches
func (s *store) UpdateTransactions(ctx context.Context, txns []*models.Transaction) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			transaction_type = :transaction_type, fiscal_year_id = :fiscal_year_id,
			from_fund_id = :from_fund_id, to_fund_id = :to_fund_id,
			source_invoice_id = :source_invoice_id, source_purchase_order_id = :source_purchase_order_id,
			payment_encumbrance_id = :payment_encumbrance_id, awaiting_encumbrance_id = :awaiting_encumbrance_id,
			jsonb = :jsonb, version = :version
		WHERE id = :id AND version = :version - 1
	`, s.table(tableTransaction))

	for _, t := range txns {
		t.Version++
		dto, err := toTransactionDTO(t)
		if err != nil {
			return err
		}
		result, err := sqlx.NamedExecContext(ctx, s.q, query, dto)
		if err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", t.ID, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return apperror.Conflict(apperror.CodeConflict, apperror.Param("id", t.ID))
		}
	}
	return nil
}

// DeleteTransactions deletes ids
func (s *store) DeleteTransactions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1::uuid[])`, s.table(tableTransaction))
	if _, err := s.q.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}
