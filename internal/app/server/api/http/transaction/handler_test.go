package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	authmw "budgetkeeper/internal/app/server/api/http/middleware/auth"
	"budgetkeeper/internal/domain/transaction"
	"budgetkeeper/internal/model"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int64, accountID *int64) ([]model.Transaction, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int64, tx model.Transaction, idempotencyKey string) (int64, error) {
	args := m.Called(ctx, userID, tx, idempotencyKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID int64, tx model.Transaction) error {
	args := m.Called(ctx, userID, tx)
	return args.Error(0)
}

func (m *MockService) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func authedContext(userID int64) context.Context {
	return context.WithValue(context.Background(), authmw.UserIDKey, userID)
}

func TestHandler_list(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	want := []model.Transaction{
		{ID: 1, AccountID: 10, Amount: decimal.NewFromInt(-25), Description: "Groceries", Date: "2026-08-01"},
	}
	service.On("List", mock.Anything, int64(7), (*int64)(nil)).Return(want, nil)

	output, err := handler.list(authedContext(7), &listInput{})

	assert.NoError(t, err)
	assert.Equal(t, want, output.Body.Transactions)
	service.AssertExpectations(t)
}

func TestHandler_list_AccountFilter(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	service.On("List", mock.Anything, int64(7), mock.MatchedBy(func(id *int64) bool {
		return id != nil && *id == 10
	})).Return([]model.Transaction{}, nil)

	output, err := handler.list(authedContext(7), &listInput{AccountID: 10})

	assert.NoError(t, err)
	assert.Empty(t, output.Body.Transactions)
	service.AssertExpectations(t)
}

func TestHandler_list_Unauthenticated(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	_, err := handler.list(context.Background(), &listInput{})

	assert.Error(t, err)
	service.AssertNotCalled(t, "List")
}

func TestHandler_create(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	body := transactionRequest{
		AccountID:   10,
		Amount:      decimal.NewFromInt(-42),
		Description: "Dinner",
		Date:        "2026-08-15",
		Payee:       "Cafe",
	}
	service.On("Create", mock.Anything, int64(7), body.toModel(0), "key-1").Return(int64(101), nil)

	output, err := handler.create(authedContext(7), &createInput{IdempotencyKey: "key-1", Body: body})

	assert.NoError(t, err)
	assert.Equal(t, int64(101), output.Body.ID)
	service.AssertExpectations(t)
}

func TestHandler_create_ValidationError(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	body := transactionRequest{AccountID: 10, Description: "Zero", Date: "2026-08-15"}
	service.On("Create", mock.Anything, int64(7), body.toModel(0), "").
		Return(int64(0), transaction.ErrZeroAmount)

	_, err := handler.create(authedContext(7), &createInput{Body: body})

	assert.Error(t, err)
	var statusErr interface{ GetStatus() int }
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
}

func TestHandler_update_NotFound(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	body := transactionRequest{
		AccountID:   10,
		Amount:      decimal.NewFromInt(5),
		Description: "Edit",
		Date:        "2026-08-15",
	}
	service.On("Update", mock.Anything, int64(7), body.toModel(999)).
		Return(transaction.ErrNotFound)

	_, err := handler.update(authedContext(7), &updateInput{ID: 999, Body: body})

	assert.Error(t, err)
	var statusErr interface{ GetStatus() int }
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.GetStatus())
}

func TestHandler_delete(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	service.On("Delete", mock.Anything, int64(7), int64(3)).Return(nil)

	output, err := handler.delete(authedContext(7), &deleteInput{ID: 3})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), output.Body.ID)
	service.AssertExpectations(t)
}

func TestHandler_delete_RepoError(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), nil)

	service.On("Delete", mock.Anything, int64(7), int64(3)).Return(errors.New("db down"))

	_, err := handler.delete(authedContext(7), &deleteInput{ID: 3})

	assert.Error(t, err)
}
