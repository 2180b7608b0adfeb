package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
)

func summaryTable(family models.SummaryFamily) string {
	if family == models.SummaryFamilyOrder {
		return tableOrderSummaries
	}
	return tableInvoiceSummaries
}

func stagingTable(stage models.Stage) string {
	if stage.Family() == models.SummaryFamilyOrder {
		return tableOrderStaging
	}
	return tableInvoiceStaging
}

func stageTypes(stage models.Stage) []string {
	types := stage.Types()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func (s *store) getSummary(ctx context.Context, family models.SummaryFamily, id string, forUpdate bool) (*models.TransactionSummary, error) {
	lock := ""
	if forUpdate {
		lock = " FOR UPDATE"
	}

	if family == models.SummaryFamilyOrder {
		query := fmt.Sprintf(`SELECT id, num_transactions, processed FROM %s WHERE id = $1%s`,
			s.table(tableOrderSummaries), lock)
		var summary models.OrderTransactionSummary
		if err := sqlx.GetContext(ctx, s.q, &summary, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, transactions.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get order summary: %w", err)
		}
		return models.FromOrderSummary(summary), nil
	}

	query := fmt.Sprintf(`
		SELECT id, num_pending_payments, num_payments_credits, pending_payments_processed, payments_credits_processed
		FROM %s
		WHERE id = $1%s
	`, s.table(tableInvoiceSummaries), lock)
	var summary models.InvoiceTransactionSummary
	if err := sqlx.GetContext(ctx, s.q, &summary, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactions.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice summary: %w", err)
	}
	return models.FromInvoiceSummary(summary), nil
}

// GetSummaryForUpdate locks the summary row of a group for the rest of the transaction
func (s *store) GetSummaryForUpdate(ctx context.Context, family models.SummaryFamily, id string) (*models.TransactionSummary, error) {
	return s.getSummary(ctx, family, id, true)
}

// saveOrderSummary upserts the summary, a new declaration reopens the group
func (s *store) saveOrderSummary(ctx context.Context, summary *models.OrderTransactionSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, num_transactions, processed)
		VALUES (:id, :num_transactions, :processed)
		ON CONFLICT (id) DO UPDATE SET
			num_transactions = EXCLUDED.num_transactions,
			processed = EXCLUDED.processed
	`, s.table(tableOrderSummaries))

	if _, err := sqlx.NamedExecContext(ctx, s.q, query, summary); err != nil {
		return fmt.Errorf("failed to save order summary: %w", err)
	}
	return nil
}

func (s *store) saveInvoiceSummary(ctx context.Context, summary *models.InvoiceTransactionSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, num_pending_payments, num_payments_credits, pending_payments_processed, payments_credits_processed)
		VALUES (:id, :num_pending_payments, :num_payments_credits, :pending_payments_processed, :payments_credits_processed)
		ON CONFLICT (id) DO UPDATE SET
			num_pending_payments = EXCLUDED.num_pending_payments,
			num_payments_credits = EXCLUDED.num_payments_credits,
			pending_payments_processed = EXCLUDED.pending_payments_processed,
			payments_credits_processed = EXCLUDED.payments_credits_processed
	`, s.table(tableInvoiceSummaries))

	if _, err := sqlx.NamedExecContext(ctx, s.q, query, summary); err != nil {
		return fmt.Errorf("failed to save invoice summary: %w", err)
	}
	return nil
}

// MarkStageProcessed flags the stage of a group as committed
func (s *store) MarkStageProcessed(ctx context.Context, stage models.Stage, id string) error {
	var column string
	switch stage {
	case models.StageEncumbrances:
		column = "processed"
	case models.StagePendingPayments:
		column = "pending_payments_processed"
	case models.StagePaymentsCredits:
		column = "payments_credits_processed"
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
	query := fmt.Sprintf(`UPDATE %s SET %s = true WHERE id = $1`, s.table(summaryTable(stage.Family())), column)

	result, err := s.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark summary processed: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return transactions.ErrNotFound
	}
	return nil
}

func (s *store) stageTransaction(ctx context.Context, stage models.Stage, txn *models.Transaction) error {
	doc, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %s: %w", txn.ID, err)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, group_id, transaction_type, jsonb)
		VALUES (:id, :group_id, :transaction_type, :jsonb)
		ON CONFLICT (id) DO UPDATE SET
			group_id = EXCLUDED.group_id,
			transaction_type = EXCLUDED.transaction_type,
			jsonb = EXCLUDED.jsonb
	`, s.table(stagingTable(stage)))

	dto := stagedDTO{ID: txn.ID, GroupID: txn.GroupID(), TransactionType: string(txn.TransactionType), JSONB: doc}
	if _, err := sqlx.NamedExecContext(ctx, s.q, query, dto); err != nil {
		return fmt.Errorf("failed to stage transaction %s: %w", txn.ID, err)
	}
	return nil
}

func (s *store) countStaged(ctx context.Context, stage models.Stage, groupID string) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE group_id = $1 AND transaction_type = ANY($2)`,
		s.table(stagingTable(stage)))

	var count int
	if err := sqlx.GetContext(ctx, s.q, &count, query, groupID, pq.Array(stageTypes(stage))); err != nil {
		return 0, fmt.Errorf("failed to count staged transactions: %w", err)
	}
	return count, nil
}

// GetStagedTransactions returns the staged transactions of a group counted by stage
func (s *store) GetStagedTransactions(ctx context.Context, stage models.Stage, groupID string) ([]*models.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT id, group_id, transaction_type, jsonb
		FROM %s
		WHERE group_id = $1 AND transaction_type = ANY($2)
		ORDER BY id
	`, s.table(stagingTable(stage)))

	var dtos []stagedDTO
	if err := sqlx.SelectContext(ctx, s.q, &dtos, query, groupID, pq.Array(stageTypes(stage))); err != nil {
		return nil, fmt.Errorf("failed to get staged transactions: %w", err)
	}
	out := make([]*models.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		var t models.Transaction
		if err := json.Unmarshal(dto.JSONB, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal staged transaction %s: %w", dto.ID, err)
		}
		out = append(out, &t)
	}
	return out, nil
}

// DeleteStagedTransactions removes the staged transactions of a group counted by stage
func (s *store) DeleteStagedTransactions(ctx context.Context, stage models.Stage, groupID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE group_id = $1 AND transaction_type = ANY($2)`,
		s.table(stagingTable(stage)))

	if _, err := s.q.ExecContext(ctx, query, groupID, pq.Array(stageTypes(stage))); err != nil {
		return fmt.Errorf("failed to delete staged transactions: %w", err)
	}
	return nil
}

var _ transactions.TransactionTx = (*store)(nil)
var _ transactions.TransactionRepo = (*TransactionRepo)(nil)
