package transaction

import (
	"context"

	"budgetkeeper/internal/model"
)

type Repository interface {
	List(ctx context.Context, userID int64, accountID *int64) ([]model.Transaction, error)
	// Create books the transaction, adjusts the account balance, upserts the
	// payee and records the idempotency key, all in one database transaction.
	Create(ctx context.Context, userID int64, tx model.Transaction, idempotencyKey string) (int64, error)
	Update(ctx context.Context, userID int64, tx model.Transaction) error
	Delete(ctx context.Context, userID, id int64) error
	// FindReplay reports the transaction already booked under the key, if any.
	FindReplay(ctx context.Context, userID int64, key string) (int64, bool, error)
}
