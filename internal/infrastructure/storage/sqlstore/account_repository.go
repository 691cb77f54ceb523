package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/domain/account"
	"budgetkeeper/internal/model"
)

func NewAccountRepository(db *sql.DB, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log,
	}
}

type AccountRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *AccountRepository) List(ctx context.Context, userID int64, includeInactive bool) ([]model.Account, error) {
	query := `SELECT id, name, type, balance, currency, color, is_active, sort_order, created_at, updated_at
	          FROM accounts WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.Currency,
			&a.Color, &a.IsActive, &a.SortOrder, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Create(ctx context.Context, userID int64, acc model.Account) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO accounts (user_id, name, type, balance, currency, color, is_active, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		userID, acc.Name, acc.Type, acc.Balance, acc.Currency, acc.Color, acc.IsActive, acc.SortOrder).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) Update(ctx context.Context, userID int64, acc model.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = $1, type = $2, currency = $3, color = $4,
		        sort_order = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6 AND user_id = $7`,
		acc.Name, acc.Type, acc.Currency, acc.Color, acc.SortOrder, acc.ID, userID)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Deactivate(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return account.ErrNotFound
	}
	return nil
}
