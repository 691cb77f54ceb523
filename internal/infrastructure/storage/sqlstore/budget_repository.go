package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

func NewBudgetRepository(db *sql.DB, log *slog.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:  db,
		log: log,
	}
}

type BudgetRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *BudgetRepository) Allocations(ctx context.Context, userID int64, month string) ([]model.BudgetAllocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category_id, month, assigned FROM budget_allocations
		 WHERE user_id = $1 AND month = $2 ORDER BY category_id`, userID, month)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	allocations := make([]model.BudgetAllocation, 0)
	for rows.Next() {
		var a model.BudgetAllocation
		if err := rows.Scan(&a.ID, &a.CategoryID, &a.Month, &a.Assigned); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

func (r *BudgetRepository) Upsert(ctx context.Context, userID, categoryID int64, month string, amount decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_allocations (user_id, category_id, month, assigned)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, category_id, month) DO UPDATE SET assigned = excluded.assigned`,
		userID, categoryID, month, amount)
	if err != nil {
		return fmt.Errorf("upsert allocation: %w", err)
	}
	return nil
}

// Dashboard computes the headline aggregates: total balance across active
// accounts and the income/expense split for the given month.
func (r *BudgetRepository) Dashboard(ctx context.Context, userID int64, month string) (model.DashboardStats, error) {
	var stats model.DashboardStats

	var total sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(balance), 0) FROM accounts
		 WHERE user_id = $1 AND is_active = TRUE`, userID).
		Scan(&stats.AccountsCount, &total)
	if err != nil {
		return stats, fmt.Errorf("dashboard accounts: %w", err)
	}
	if stats.TotalBalance, err = parseAmount(total); err != nil {
		return stats, err
	}

	var income, expenses sql.NullString
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0)
		 FROM transactions WHERE user_id = $1 AND date LIKE $2`,
		userID, month+"%").
		Scan(&income, &expenses)
	if err != nil {
		return stats, fmt.Errorf("dashboard transactions: %w", err)
	}
	if stats.MonthlyIncome, err = parseAmount(income); err != nil {
		return stats, err
	}
	if stats.MonthlyExpenses, err = parseAmount(expenses); err != nil {
		return stats, err
	}
	return stats, nil
}

func parseAmount(v sql.NullString) (decimal.Decimal, error) {
	if !v.Valid || v.String == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", v.String, err)
	}
	return d, nil
}
