package account

import (
	"context"

	"budgetkeeper/internal/model"
)

type Repository interface {
	List(ctx context.Context, userID int64, includeInactive bool) ([]model.Account, error)
	Create(ctx context.Context, userID int64, acc model.Account) (int64, error)
	Update(ctx context.Context, userID int64, acc model.Account) error
	Deactivate(ctx context.Context, userID, id int64) error
}
