package payee

import (
	"context"

	"budgetkeeper/internal/model"
)

type Repository interface {
	List(ctx context.Context, userID int64) ([]model.Payee, error)
}
