package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

func NewPayeeRepository(db *sql.DB, log *slog.Logger) *PayeeRepository {
	return &PayeeRepository{
		db:  db,
		log: log,
	}
}

type PayeeRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *PayeeRepository) List(ctx context.Context, userID int64) ([]model.Payee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, use_count FROM payees
		 WHERE user_id = $1 ORDER BY use_count DESC, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list payees: %w", err)
	}
	defer rows.Close()

	payees := make([]model.Payee, 0)
	for rows.Next() {
		var p model.Payee
		if err := rows.Scan(&p.ID, &p.Name, &p.UseCount); err != nil {
			return nil, fmt.Errorf("scan payee: %w", err)
		}
		payees = append(payees, p)
	}
	return payees, rows.Err()
}
