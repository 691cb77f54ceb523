package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetkeeper/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "offline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenFailsOnBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "offline.db"))
	require.Error(t, err)
}

func TestPutGetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acc := model.Account{ID: 1, Name: "Checking", Type: model.AccountChecking, Currency: "USD", IsActive: true}
	require.NoError(t, PutOne(ctx, s, StoreAccounts, acc))

	got, err := GetByID[model.Account](ctx, s, StoreAccounts, int64(1))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Checking", got.Name)

	all, err := GetAll[model.Account](ctx, s, StoreAccounts)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetByIDMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := GetByID[model.Account](context.Background(), s, StoreAccounts, int64(42))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAllEmptyStore(t *testing.T) {
	s := openTestStore(t)

	all, err := GetAll[model.Payee](context.Background(), s, StorePayees)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestPutOneUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, PutOne(ctx, s, StorePayees, model.Payee{ID: 7, Name: "Grocer"}))
	require.NoError(t, PutOne(ctx, s, StorePayees, model.Payee{ID: 7, Name: "Green Grocer"}))

	got, err := GetByID[model.Payee](ctx, s, StorePayees, int64(7))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Green Grocer", got.Name)

	n, err := s.Count(ctx, StorePayees)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetByIndex(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txs := []model.Transaction{
		{ID: 1, AccountID: 10, Description: "coffee"},
		{ID: 2, AccountID: 10, Description: "rent"},
		{ID: 3, AccountID: 20, Description: "salary"},
	}
	require.NoError(t, PutMany(ctx, s, StoreTransactions, txs))

	byAccount, err := GetByIndex[model.Transaction](ctx, s, StoreTransactions, "account_id", int64(10))
	require.NoError(t, err)
	assert.Len(t, byAccount, 2)

	_, err = GetByIndex[model.Transaction](ctx, s, StoreTransactions, "description", "rent")
	assert.Error(t, err, "description is not a declared index")
}

func TestPutManyAllOrNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Metadata documents are keyed on "key"; an entry without one violates
	// the NOT NULL primary key and must roll back the whole batch.
	type meta struct {
		Key string `json:"key,omitempty"`
		TS  int64  `json:"timestamp"`
	}
	items := []meta{
		{Key: "accounts", TS: 1},
		{Key: "", TS: 2},
	}
	err := PutMany(ctx, s, StoreMetadata, items)
	require.Error(t, err)

	n, err := s.Count(ctx, StoreMetadata)
	require.NoError(t, err)
	assert.Zero(t, n, "failed batch must leave the store unchanged")
}

func TestReplaceAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, PutMany(ctx, s, StoreCategories, []model.Category{
		{ID: 1, Name: "Groceries"}, {ID: 2, Name: "Rent"},
	}))
	require.NoError(t, ReplaceAll(ctx, s, StoreCategories, []model.Category{
		{ID: 3, Name: "Travel"},
	}))

	all, err := GetAll[model.Category](ctx, s, StoreCategories)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(3), all[0].ID)
}

func TestDeleteAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, PutMany(ctx, s, StoreAccounts, []model.Account{{ID: 1}, {ID: 2}}))
	require.NoError(t, s.DeleteOne(ctx, StoreAccounts, int64(1)))

	n, err := s.Count(ctx, StoreAccounts)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.ClearStore(ctx, StoreAccounts))
	n, err = s.Count(ctx, StoreAccounts)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx *Store) error {
		if err := PutOne(ctx, tx, StoreAccounts, model.Account{ID: 1}); err != nil {
			return err
		}
		if err := PutOne(ctx, tx, StoreTransactions, model.Transaction{ID: 1, AccountID: 1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	for _, store := range []string{StoreAccounts, StoreTransactions} {
		n, err := s.Count(ctx, store)
		require.NoError(t, err)
		assert.Zero(t, n, store)
	}
}

func TestUnknownStore(t *testing.T) {
	s := openTestStore(t)

	_, err := GetAll[model.Account](context.Background(), s, "nope")
	assert.ErrorIs(t, err, ErrUnknownStore)
}
