package payee

import (
	"context"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

type Servicer interface {
	List(ctx context.Context, userID int64) ([]model.Payee, error)
}

// Service reads the payee directory. Payees are not created directly: the
// transaction pipeline upserts them by name and bumps their use count.
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

func (s *Service) List(ctx context.Context, userID int64) ([]model.Payee, error) {
	return s.repo.List(ctx, userID)
}
