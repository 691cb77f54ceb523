package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/domain/transaction"
	"budgetkeeper/internal/model"
)

func NewTransactionRepository(db *sql.DB, log *slog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:  db,
		log: log,
	}
}

type TransactionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, accountID *int64) ([]model.Transaction, error) {
	query := `SELECT id, account_id, category_id, amount, description, date,
	                 payee, memo, cleared, notes, created_at, updated_at
	          FROM transactions WHERE user_id = $1`
	args := []any{userID}
	if accountID != nil {
		query += ` AND account_id = $2`
		args = append(args, *accountID)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]model.Transaction, 0)
	for rows.Next() {
		var tx model.Transaction
		var categoryID sql.NullInt64
		if err := rows.Scan(&tx.ID, &tx.AccountID, &categoryID, &tx.Amount, &tx.Description,
			&tx.Date, &tx.Payee, &tx.Memo, &tx.Cleared, &tx.Notes, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if categoryID.Valid {
			tx.CategoryID = &categoryID.Int64
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Create books the transaction and keeps the ledger consistent in one
// database transaction: the account balance moves by the amount, the payee
// use count is bumped, and the idempotency key is pinned to the new row.
func (r *TransactionRepository) Create(ctx context.Context, userID int64, tx model.Transaction, idempotencyKey string) (id int64, err error) {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := dbtx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				r.log.Error("rollback failed", "error", rbErr)
			}
		}
	}()

	if err = r.checkAccount(ctx, dbtx, userID, tx.AccountID); err != nil {
		return 0, err
	}

	var categoryID sql.NullInt64
	if tx.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: *tx.CategoryID, Valid: true}
	}
	err = dbtx.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, account_id, category_id, amount, description,
		                           date, payee, memo, cleared, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		userID, tx.AccountID, categoryID, tx.Amount, tx.Description,
		tx.Date, tx.Payee, tx.Memo, tx.Cleared, tx.Notes).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	if err = r.moveBalance(ctx, dbtx, userID, tx.AccountID, tx.Amount.String()); err != nil {
		return 0, err
	}

	if tx.Payee != "" {
		if err = r.bumpPayee(ctx, dbtx, userID, tx.Payee); err != nil {
			return 0, err
		}
	}

	if idempotencyKey != "" {
		_, err = dbtx.ExecContext(ctx,
			`INSERT INTO idempotency_keys (user_id, key, transaction_id) VALUES ($1, $2, $3)`,
			userID, idempotencyKey, id)
		if err != nil {
			return 0, fmt.Errorf("record idempotency key: %w", err)
		}
	}

	if err = dbtx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID int64, tx model.Transaction) (err error) {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := dbtx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				r.log.Error("rollback failed", "error", rbErr)
			}
		}
	}()

	prev, err := r.find(ctx, dbtx, userID, tx.ID)
	if err != nil {
		return err
	}

	var categoryID sql.NullInt64
	if tx.CategoryID != nil {
		categoryID = sql.NullInt64{Int64: *tx.CategoryID, Valid: true}
	}
	_, err = dbtx.ExecContext(ctx,
		`UPDATE transactions SET account_id = $1, category_id = $2, amount = $3,
		        description = $4, date = $5, payee = $6, memo = $7, cleared = $8,
		        notes = $9, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $10 AND user_id = $11`,
		tx.AccountID, categoryID, tx.Amount, tx.Description, tx.Date,
		tx.Payee, tx.Memo, tx.Cleared, tx.Notes, tx.ID, userID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	// Reverse the old amount on the old account, apply the new one.
	if err = r.moveBalance(ctx, dbtx, userID, prev.AccountID, prev.Amount.Neg().String()); err != nil {
		return err
	}
	if err = r.moveBalance(ctx, dbtx, userID, tx.AccountID, tx.Amount.String()); err != nil {
		return err
	}

	if err = dbtx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id int64) (err error) {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := dbtx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				r.log.Error("rollback failed", "error", rbErr)
			}
		}
	}()

	prev, err := r.find(ctx, dbtx, userID, id)
	if err != nil {
		return err
	}

	if _, err = dbtx.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if err = r.moveBalance(ctx, dbtx, userID, prev.AccountID, prev.Amount.Neg().String()); err != nil {
		return err
	}

	if err = dbtx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindReplay(ctx context.Context, userID int64, key string) (int64, bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT transaction_id FROM idempotency_keys WHERE user_id = $1 AND key = $2`,
		userID, key).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("find replay: %w", err)
	}
	return id, true, nil
}

func (r *TransactionRepository) find(ctx context.Context, dbtx *sql.Tx, userID, id int64) (model.Transaction, error) {
	var tx model.Transaction
	err := dbtx.QueryRowContext(ctx,
		`SELECT id, account_id, amount FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID).Scan(&tx.ID, &tx.AccountID, &tx.Amount)
	if err == sql.ErrNoRows {
		return tx, transaction.ErrNotFound
	}
	if err != nil {
		return tx, fmt.Errorf("find transaction: %w", err)
	}
	return tx, nil
}

func (r *TransactionRepository) checkAccount(ctx context.Context, dbtx *sql.Tx, userID, accountID int64) error {
	var exists bool
	err := dbtx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1 AND user_id = $2)`,
		accountID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if !exists {
		return transaction.ErrInvalidInput
	}
	return nil
}

func (r *TransactionRepository) moveBalance(ctx context.Context, dbtx *sql.Tx, userID, accountID int64, delta string) error {
	_, err := dbtx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + CAST($1 AS NUMERIC), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND user_id = $3`,
		delta, accountID, userID)
	if err != nil {
		return fmt.Errorf("move balance: %w", err)
	}
	return nil
}

func (r *TransactionRepository) bumpPayee(ctx context.Context, dbtx *sql.Tx, userID int64, name string) error {
	_, err := dbtx.ExecContext(ctx,
		`INSERT INTO payees (user_id, name, use_count) VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, name) DO UPDATE SET use_count = payees.use_count + 1`,
		userID, name)
	if err != nil {
		return fmt.Errorf("bump payee: %w", err)
	}
	return nil
}
