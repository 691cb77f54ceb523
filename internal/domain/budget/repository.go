package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"budgetkeeper/internal/model"
)

type Repository interface {
	Allocations(ctx context.Context, userID int64, month string) ([]model.BudgetAllocation, error)
	Upsert(ctx context.Context, userID, categoryID int64, month string, amount decimal.Decimal) error
	Dashboard(ctx context.Context, userID int64, month string) (model.DashboardStats, error)
}
