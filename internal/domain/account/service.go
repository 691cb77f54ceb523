package account

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

type Servicer interface {
	List(ctx context.Context, userID int64, includeInactive bool) ([]model.Account, error)
	Create(ctx context.Context, userID int64, acc model.Account) (int64, error)
	Update(ctx context.Context, userID int64, acc model.Account) error
	Deactivate(ctx context.Context, userID, id int64) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) List(ctx context.Context, userID int64, includeInactive bool) ([]model.Account, error) {
	return s.repo.List(ctx, userID, includeInactive)
}

func (s *Service) Create(ctx context.Context, userID int64, acc model.Account) (int64, error) {
	if err := validate(acc); err != nil {
		return 0, err
	}
	if acc.Currency == "" {
		acc.Currency = "USD"
	}
	acc.IsActive = true
	return s.repo.Create(ctx, userID, acc)
}

func (s *Service) Update(ctx context.Context, userID int64, acc model.Account) error {
	if err := validate(acc); err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, acc)
}

// Deactivate hides the account from default listings but keeps its
// transaction history intact.
func (s *Service) Deactivate(ctx context.Context, userID, id int64) error {
	return s.repo.Deactivate(ctx, userID, id)
}

func validate(acc model.Account) error {
	if strings.TrimSpace(acc.Name) == "" {
		return ErrInvalidInput
	}
	switch acc.Type {
	case model.AccountChecking, model.AccountSavings, model.AccountCreditCard,
		model.AccountCash, model.AccountInvestment, model.AccountOther:
		return nil
	default:
		return ErrInvalidInput
	}
}
