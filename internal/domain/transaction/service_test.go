package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"budgetkeeper/internal/model"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID int64, accountID *int64) ([]model.Transaction, error) {
	args := m.Called(ctx, userID, accountID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, userID int64, tx model.Transaction, idempotencyKey string) (int64, error) {
	args := m.Called(ctx, userID, tx, idempotencyKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, userID int64, tx model.Transaction) error {
	args := m.Called(ctx, userID, tx)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRepository) FindReplay(ctx context.Context, userID int64, key string) (int64, bool, error) {
	args := m.Called(ctx, userID, key)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func validTx() model.Transaction {
	return model.Transaction{
		AccountID:   1,
		Amount:      decimal.RequireFromString("-42.50"),
		Description: "groceries",
		Date:        "2026-08-30",
	}
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Create", mock.Anything, int64(1), mock.MatchedBy(func(tx model.Transaction) bool {
		return tx.Cleared == model.ClearedUncleared
	}), "").Return(int64(55), nil)

	id, err := service.Create(context.Background(), 1, validTx(), "")
	assert.NoError(t, err)
	assert.Equal(t, int64(55), id)

	mockRepo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Transaction)
		wantErr error
	}{
		{
			name:    "zero amount",
			mutate:  func(tx *model.Transaction) { tx.Amount = decimal.Zero },
			wantErr: ErrZeroAmount,
		},
		{
			name:    "missing account",
			mutate:  func(tx *model.Transaction) { tx.AccountID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "blank description",
			mutate:  func(tx *model.Transaction) { tx.Description = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad date",
			mutate:  func(tx *model.Transaction) { tx.Date = "30.08.2026" },
			wantErr: ErrBadDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := NewService(mockRepo, slog.Default())

			tx := validTx()
			tt.mutate(&tx)

			_, err := service.Create(context.Background(), 1, tx, "")
			assert.ErrorIs(t, err, tt.wantErr)
			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestService_Create_ReplaySuppressed(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	key := "4be0643f-1d98-573b-97cd-ca98a65347dd"
	mockRepo.On("FindReplay", mock.Anything, int64(1), key).Return(int64(77), true, nil)

	id, err := service.Create(context.Background(), 1, validTx(), key)
	assert.NoError(t, err)
	assert.Equal(t, int64(77), id, "a replayed request returns the original id")

	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Create_FirstAttemptWithKey(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	key := "4be0643f-1d98-573b-97cd-ca98a65347dd"
	mockRepo.On("FindReplay", mock.Anything, int64(1), key).Return(int64(0), false, nil)
	mockRepo.On("Create", mock.Anything, int64(1), mock.AnythingOfType("model.Transaction"), key).
		Return(int64(88), nil)

	id, err := service.Create(context.Background(), 1, validTx(), key)
	assert.NoError(t, err)
	assert.Equal(t, int64(88), id)

	mockRepo.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	accountID := int64(3)
	expected := []model.Transaction{{ID: 9, AccountID: 3}}
	mockRepo.On("List", mock.Anything, int64(1), &accountID).Return(expected, nil)

	got, err := service.List(context.Background(), 1, &accountID)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestService_Delete_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Delete", mock.Anything, int64(1), int64(9)).Return(errors.New("database error"))

	err := service.Delete(context.Background(), 1, 9)
	assert.Error(t, err)
}
