package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// TTL is how long a session stays valid after login.
const TTL = 30 * 24 * time.Hour

type Servicer interface {
	Create(ctx context.Context, userID int64) (string, error)
	Validate(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
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

// Create issues a fresh session token. Only its SHA-256 hash is stored, the
// raw token goes back to the caller once and is never recoverable.
func (s *Service) Create(ctx context.Context, userID int64) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	tokenHash := sha256.Sum256([]byte(token))

	expiresAt := time.Now().Add(TTL)
	if err := s.repo.Create(ctx, userID, hex.EncodeToString(tokenHash[:]), expiresAt); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int64, error) {
	tokenHash := sha256.Sum256([]byte(token))

	return s.repo.Validate(ctx, hex.EncodeToString(tokenHash[:]))
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	tokenHash := sha256.Sum256([]byte(token))

	return s.repo.Delete(ctx, hex.EncodeToString(tokenHash[:]))
}
