package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

type Servicer interface {
	Register(ctx context.Context, email, name, password string) (int64, error)
	Authenticate(ctx context.Context, email, password string) (model.User, error)
	Get(ctx context.Context, userID int64) (model.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log,
	}
}

func (s *Service) Register(ctx context.Context, email, name, password string) (int64, error) {
	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("registration validation failed", "email", email, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, email, name, string(hash))
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	if err := s.validator.ValidateEmail(email); err != nil {
		return model.User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return u, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return u, ErrInvalidAuth
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidAuth
	}
	if err := s.validator.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}
