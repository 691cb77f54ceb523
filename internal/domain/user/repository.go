package user

import (
	"context"

	"budgetkeeper/internal/model"
)

type Repository interface {
	Create(ctx context.Context, email, name, passwordHash string) (int64, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
