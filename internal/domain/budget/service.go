package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

type Servicer interface {
	Allocations(ctx context.Context, userID int64, month string) ([]model.BudgetAllocation, error)
	Assign(ctx context.Context, userID, categoryID int64, month string, amount decimal.Decimal) error
	Dashboard(ctx context.Context, userID int64) (model.DashboardStats, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) Allocations(ctx context.Context, userID int64, month string) ([]model.BudgetAllocation, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	return s.repo.Allocations(ctx, userID, month)
}

// Assign sets the budgeted amount for a category in a month, replacing any
// earlier allocation.
func (s *Service) Assign(ctx context.Context, userID, categoryID int64, month string, amount decimal.Decimal) error {
	if err := validateMonth(month); err != nil {
		return err
	}
	if categoryID <= 0 || amount.IsNegative() {
		return ErrInvalidInput
	}
	return s.repo.Upsert(ctx, userID, categoryID, month, amount)
}

// Dashboard aggregates the headline numbers for the current calendar month.
func (s *Service) Dashboard(ctx context.Context, userID int64) (model.DashboardStats, error) {
	month := s.now().Format("2006-01")
	return s.repo.Dashboard(ctx, userID, month)
}

func validateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return ErrBadMonth
	}
	return nil
}
