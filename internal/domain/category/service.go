package category

import (
	"context"
	"strings"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

type Servicer interface {
	List(ctx context.Context, userID int64) ([]model.Category, error)
	ListGroups(ctx context.Context, userID int64) ([]model.CategoryGroup, error)
	Create(ctx context.Context, userID int64, cat model.Category) (int64, error)
	CreateGroup(ctx context.Context, userID int64, group model.CategoryGroup) (int64, error)
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

func (s *Service) List(ctx context.Context, userID int64) ([]model.Category, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) ListGroups(ctx context.Context, userID int64) ([]model.CategoryGroup, error) {
	return s.repo.ListGroups(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int64, cat model.Category) (int64, error) {
	if strings.TrimSpace(cat.Name) == "" {
		return 0, ErrInvalidInput
	}
	if cat.Type != model.CategoryExpense && cat.Type != model.CategoryIncome {
		return 0, ErrInvalidInput
	}
	cat.IsActive = true
	return s.repo.Create(ctx, userID, cat)
}

func (s *Service) CreateGroup(ctx context.Context, userID int64, group model.CategoryGroup) (int64, error) {
	if strings.TrimSpace(group.Name) == "" {
		return 0, ErrInvalidInput
	}
	return s.repo.CreateGroup(ctx, userID, group)
}
