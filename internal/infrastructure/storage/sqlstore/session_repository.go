package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

func NewSessionRepository(db *sql.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

type SessionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func (r *SessionRepository) Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`,
		userID, tokenHash, expiresAt)
	return err
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (int64, error) {
	var userID int64
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE token_hash = $1`, tokenHash).
		Scan(&userID, &expiresAt)
	if err != nil {
		return 0, fmt.Errorf("invalid session")
	}
	// Expiry checked here rather than in SQL so both dialects share one query.
	if time.Now().After(expiresAt) {
		return 0, fmt.Errorf("session expired")
	}
	return userID, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	return err
}
