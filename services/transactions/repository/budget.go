package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/finstorage/internal/pkg/apperror"
	"github.com/piresc/finstorage/internal/pkg/models"
	"github.com/piresc/finstorage/services/transactions"
)

const budgetSelectFields = "id, fund_id, fiscal_year_id, jsonb, version"

func (s *store) getBudget(ctx context.Context, id string, forUpdate bool) (*models.Budget, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, budgetSelectFields, s.table(tableBudget))
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var dto budgetDTO
	if err := sqlx.GetContext(ctx, s.q, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transactions.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return dto.ToBudget()
}

// GetBudgetForUpdate locks the budget row until the transaction ends
func (s *store) GetBudgetForUpdate(ctx context.Context, id string) (*models.Budget, error) {
	return s.getBudget(ctx, id, true)
}

// DeleteBudget deletes a budget by id
func (s *store) DeleteBudget(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table(tableBudget))

	result, err := s.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
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

// LockBudgets selects the budgets of keys FOR UPDATE. Rows are locked in id
// order so concurrent commits over the same budgets cannot deadlock. Keys
// without a budget are simply absent from the result.
func (s *store) LockBudgets(ctx context.Context, keys []models.BudgetKey) ([]*models.Budget, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	fundIDs := make([]string, 0, len(keys))
	fiscalYearIDs := make([]string, 0, len(keys))
	for _, k := range keys {
		fundIDs = append(fundIDs, k.FundID)
		fiscalYearIDs = append(fiscalYearIDs, k.FiscalYearID)
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE (fund_id, fiscal_year_id) IN (SELECT * FROM unnest($1::uuid[], $2::uuid[]))
		ORDER BY id
		FOR UPDATE
	`, budgetSelectFields, s.table(tableBudget))

	var dtos []budgetDTO
	if err := sqlx.SelectContext(ctx, s.q, &dtos, query, pq.Array(fundIDs), pq.Array(fiscalYearIDs)); err != nil {
		return nil, fmt.Errorf("failed to lock budgets: %w", err)
	}
	budgets := make([]*models.Budget, 0, len(dtos))
	for i := range dtos {
		b, err := dtos[i].ToBudget()
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

// UpdateBudgets writes budgets, bumping their version
func (s *store) UpdateBudgets(ctx context.Context, budgets []*models.Budget) error {
	query := fmt.Sprintf(`
		UPDATE %s SET jsonb = :jsonb, version = :version
		WHERE id = :id AND version = :version - 1
	`, s.table(tableBudget))

	for _, b := range budgets {
		b.Version++
		dto, err := toBudgetDTO(b)
		if err != nil {
			return err
		}
		result, err := sqlx.NamedExecContext(ctx, s.q, query, dto)
		if err != nil {
			return fmt.Errorf("failed to update budget %s: %w", b.ID, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return apperror.Conflict(apperror.CodeConflict, apperror.Param("budgetId", b.ID))
		}
	}
	return nil
}

// GetFunds returns the funds among ids
func (s *store) GetFunds(ctx context.Context, ids []string) ([]*models.Fund, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT id, code, ledger_id FROM %s WHERE id = ANY($1::uuid[])`, s.table(tableFund))

	var funds []*models.Fund
	if err := sqlx.SelectContext(ctx, s.q, &funds, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get funds: %w", err)
	}
	return funds, nil
}

// GetLedgers returns the ledgers among ids
func (s *store) GetLedgers(ctx context.Context, ids []string) ([]*models.Ledger, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT id, name, restrict_encumbrance, restrict_expenditures
		FROM %s
		WHERE id = ANY($1::uuid[])
	`, s.table(tableLedger))

	var ledgers []*models.Ledger
	if err := sqlx.SelectContext(ctx, s.q, &ledgers, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get ledgers: %w", err)
	}
	return ledgers, nil
}
