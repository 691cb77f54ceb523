package category

import (
	"context"

	"budgetkeeper/internal/model"
)

type Repository interface {
	List(ctx context.Context, userID int64) ([]model.Category, error)
	ListGroups(ctx context.Context, userID int64) ([]model.CategoryGroup, error)
	Create(ctx context.Context, userID int64, cat model.Category) (int64, error)
	CreateGroup(ctx context.Context, userID int64, group model.CategoryGroup) (int64, error)
}
