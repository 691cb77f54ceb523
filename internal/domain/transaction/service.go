// Package transaction owns the server-side transaction pipeline: validation,
// idempotent replay handling for clients that sync a queue of offline
// mutations, and the balance bookkeeping done by the repository.
package transaction

import (
	"context"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

type Servicer interface {
	List(ctx context.Context, userID int64, accountID *int64) ([]model.Transaction, error)
	Create(ctx context.Context, userID int64, tx model.Transaction, idempotencyKey string) (int64, error)
	Update(ctx context.Context, userID int64, tx model.Transaction) error
	Delete(ctx context.Context, userID, id int64) error
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

func (s *Service) List(ctx context.Context, userID int64, accountID *int64) ([]model.Transaction, error) {
	return s.repo.List(ctx, userID, accountID)
}

// Create books a transaction. When the client supplies an idempotency key, a
// repeat of an already-applied request returns the original id instead of
// booking the amount twice; offline clients replay their queue after
// reconnecting and cannot always know whether the first attempt landed.
func (s *Service) Create(ctx context.Context, userID int64, tx model.Transaction, idempotencyKey string) (int64, error) {
	if err := validate(tx); err != nil {
		return 0, err
	}

	if idempotencyKey != "" {
		if id, ok, err := s.repo.FindReplay(ctx, userID, idempotencyKey); err != nil {
			return 0, err
		} else if ok {
			s.log.Info("duplicate replay suppressed", "user_id", userID, "transaction_id", id)
			return id, nil
		}
	}

	if tx.Cleared == "" {
		tx.Cleared = model.ClearedUncleared
	}
	id, err := s.repo.Create(ctx, userID, tx, idempotencyKey)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, userID int64, tx model.Transaction) error {
	if err := validate(tx); err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, tx)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

func validate(tx model.Transaction) error {
	if tx.AccountID <= 0 {
		return ErrInvalidInput
	}
	if tx.Amount.IsZero() {
		return ErrZeroAmount
	}
	if strings.TrimSpace(tx.Description) == "" {
		return ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", tx.Date); err != nil {
		return ErrBadDate
	}
	return nil
}
