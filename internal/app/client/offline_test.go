package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetkeeper/internal/app/client/config"
	"budgetkeeper/internal/app/client/localstore"
	"budgetkeeper/internal/model"
)

// fakeServer serves canned collection payloads and counts hits per path so
// tests can assert how often the cache actually reached the network.
type fakeServer struct {
	srv  *httptest.Server
	mu   sync.Mutex
	hits map[string]int

	nextTxID int64
	created  []model.Transaction
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{hits: make(map[string]int), nextTxID: 1000}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/v1/accounts":
		fmt.Fprint(w, `{"accounts":[{"id":1,"name":"Checking","type":"checking","balance":"1500.25","currency":"USD","is_active":true}]}`)
	case r.URL.Path == "/api/v1/categories":
		fmt.Fprint(w, `{"categories":[{"id":10,"name":"Groceries","type":"expense","is_active":true}]}`)
	case r.URL.Path == "/api/v1/category-groups":
		fmt.Fprint(w, `{"groups":[{"id":5,"name":"Essentials"}]}`)
	case r.URL.Path == "/api/v1/payees":
		fmt.Fprint(w, `{"payees":[{"id":7,"name":"Corner Store"}]}`)
	case r.URL.Path == "/api/v1/dashboard":
		fmt.Fprint(w, `{"total_balance":"1500.25","monthly_income":"0","monthly_expenses":"0","accounts_count":1}`)
	case r.URL.Path == "/api/v1/transactions" && r.Method == http.MethodGet:
		fmt.Fprint(w, `{"transactions":[{"id":100,"account_id":1,"amount":"-42.50","description":"milk","date":"2026-08-29"}]}`)
	case r.URL.Path == "/api/v1/transactions" && r.Method == http.MethodPost:
		var tx model.Transaction
		json.NewDecoder(r.Body).Decode(&tx)
		f.mu.Lock()
		f.nextTxID++
		id := f.nextTxID
		f.created = append(f.created, tx)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id":%d}`, id)
	default:
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{}`)
	}
}

func (f *fakeServer) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// newTestOffline wires a facade against the fake server without starting
// the connectivity monitor; tests drive online state via SetOnline and drain
// the queue with explicit Sync calls.
func newTestOffline(t *testing.T, f *fakeServer) *Offline {
	t.Helper()
	cfg := &config.Config{ServerURL: f.srv.URL}
	log := testLogger()
	api, err := NewAPIClient(cfg, log)
	require.NoError(t, err)

	store := openClientStore(t)
	o := &Offline{
		cfg:     cfg,
		log:     log,
		api:     api,
		store:   store,
		fresh:   NewFreshness(store),
		queue:   NewQueueProcessor(store, api, log),
		monitor: NewMonitor(api, nil, log),
	}
	o.SetOnline(true)
	return o
}

func TestFreshReadSkipsNetwork(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	first, err := o.GetCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Groceries", first[0].Name)

	second, err := o.GetCategories(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.hitCount("/api/v1/categories"), "second read within the TTL must come from cache")
}

func TestForceRefreshBypassesFreshCache(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)
	_, err = o.GetAccounts(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/api/v1/accounts"))
}

func TestOfflineReadServesCache(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)

	o.SetOnline(false)
	require.NoError(t, o.InvalidateCache(ctx, "accounts"))

	accounts, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.Equal(t, 1, f.hitCount("/api/v1/accounts"), "offline reads must not touch the network")
}

func TestOfflineReadWithEmptyCache(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	o.SetOnline(false)

	payees, err := o.GetPayees(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, payees, "list reads degrade to an empty slice, never an error")
}

func TestFetchFailureFallsBackToCache(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetCategoryGroups(ctx, false)
	require.NoError(t, err)

	f.srv.Close() // network gone, but the monitor still believes we are online
	groups, err := o.GetCategoryGroups(ctx, true)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Essentials", groups[0].Name)
}

func TestInvalidateCacheForcesRefetch(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)
	require.NoError(t, o.InvalidateCache(ctx, "accounts"))

	_, err = o.GetAccounts(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/api/v1/accounts"))
}

func TestClearAllDataWipesEverything(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)
	o.SetOnline(false)
	_, err = o.CreateTransaction(ctx, model.Transaction{AccountID: 1, Amount: decimal.NewFromInt(-5), Description: "gum", Date: "2026-08-30"})
	require.NoError(t, err)

	require.NoError(t, o.ClearAllData(ctx))

	pending, err := o.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)

	accounts, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	o.SetOnline(true)
	accounts, err = o.GetAccounts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, accounts, 1, "refetch after clear repopulates the cache")
}

func TestOnlineCreateMirrorsServerID(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	res, err := o.CreateTransaction(ctx, model.Transaction{
		AccountID:   1,
		Amount:      decimal.RequireFromString("-12.30"),
		Description: "coffee",
		Date:        "2026-08-30",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.Offline)
	assert.Equal(t, int64(1001), res.ID)

	mirrored, err := localstore.GetByID[model.Transaction](ctx, o.store, localstore.StoreTransactions, res.ID)
	require.NoError(t, err)
	require.NotNil(t, mirrored)
	assert.Equal(t, "coffee", mirrored.Description)
}

func TestOfflineCreateQueuesAndSyncs(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()
	o.SetOnline(false)

	res, err := o.CreateTransaction(ctx, model.Transaction{
		AccountID:   1,
		Amount:      decimal.RequireFromString("-8.99"),
		Description: "sandwich",
		Date:        "2026-08-30",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.Offline)
	assert.Negative(t, res.ID, "offline creates get a negative placeholder id")

	// The optimistic row is immediately readable.
	all, err := localstore.GetAll[model.Transaction](ctx, o.store, localstore.StoreTransactions)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, res.ID, all[0].ID)

	pending, err := o.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	o.SetOnline(true)
	require.NoError(t, o.Sync(ctx))

	pending, err = o.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Equal(t, 1, f.hitCount("/api/v1/transactions"))

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.created, 1)
	assert.Equal(t, "sandwich", f.created[0].Description)
	assert.Zero(t, f.created[0].ID, "the placeholder id never reaches the server")
}

func TestOfflineDeleteRemovesRowAndQueues(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)

	o.SetOnline(false)
	res, err := o.DeleteTransaction(ctx, 100)
	require.NoError(t, err)
	assert.True(t, res.Offline)

	all, err := localstore.GetAll[model.Transaction](ctx, o.store, localstore.StoreTransactions)
	require.NoError(t, err)
	assert.Empty(t, all)

	pending, err := o.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	txs, err := o.GetTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	orig := txs[0]

	o.SetOnline(false)
	updated := orig
	updated.Description = "whole milk"
	updated.CreatedAt = orig.CreatedAt.AddDate(1, 0, 0)
	_, err = o.UpdateTransaction(ctx, orig.ID, updated)
	require.NoError(t, err)

	stored, err := localstore.GetByID[model.Transaction](ctx, o.store, localstore.StoreTransactions, orig.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "whole milk", stored.Description)
	assert.Equal(t, orig.CreatedAt, stored.CreatedAt)
}

func TestGetTransactionsFilteredByAccount(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	id := int64(1)
	txs, err := o.GetTransactions(ctx, TransactionQuery{AccountID: &id})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	// Filtered reads upsert, they do not wipe rows from other accounts.
	other := model.Transaction{ID: 500, AccountID: 2, Amount: decimal.NewFromInt(-1), Description: "other", Date: "2026-08-28"}
	require.NoError(t, localstore.PutOne(ctx, o.store, localstore.StoreTransactions, other))

	txs, err = o.GetTransactions(ctx, TransactionQuery{AccountID: &id, ForceRefresh: true})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	all, err := localstore.GetAll[model.Transaction](ctx, o.store, localstore.StoreTransactions)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetDashboardCachesResponse(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	stats, err := o.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AccountsCount)

	_, err = o.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.hitCount("/api/v1/dashboard"))

	// Offline with an expired entry the stale copy is still served.
	o.SetOnline(false)
	stats, err = o.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AccountsCount)
}

func TestFetchJSONOfflineWithNoCache(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	o.SetOnline(false)

	var out map[string]any
	err := o.FetchJSON(context.Background(), "/api/v1/reports/spending", ttlAPICache, &out)
	assert.ErrorIs(t, err, ErrNoCachedData)
}

func TestInvalidateTransactionsCoversAllStamps(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()
	accountID := int64(1)

	_, err := o.GetTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)
	_, err = o.GetTransactions(ctx, TransactionQuery{AccountID: &accountID})
	require.NoError(t, err)
	require.Equal(t, 2, f.hitCount("/api/v1/transactions"))

	require.NoError(t, o.InvalidateCache(ctx, "transactions"))

	_, err = o.GetTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)
	_, err = o.GetTransactions(ctx, TransactionQuery{AccountID: &accountID})
	require.NoError(t, err)
	assert.Equal(t, 4, f.hitCount("/api/v1/transactions"))
}

func TestInvalidateDashboardForcesRefetch(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.hitCount("/api/v1/dashboard"))

	require.NoError(t, o.InvalidateCache(ctx, "dashboard"))

	_, err = o.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/api/v1/dashboard"))
}

func TestInvalidateAllClearsAPICache(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	_, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)
	_, err = o.GetDashboard(ctx)
	require.NoError(t, err)

	require.NoError(t, o.InvalidateCache(ctx, ""))

	_, err = o.GetAccounts(ctx, false)
	require.NoError(t, err)
	_, err = o.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/api/v1/accounts"))
	assert.Equal(t, 2, f.hitCount("/api/v1/dashboard"))
}

func TestLoginAsDifferentUserClearsLocalData(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	require.NoError(t, o.Login(ctx, "alice@example.com", "secret"))
	_, err := o.GetAccounts(ctx, false)
	require.NoError(t, err)

	o.SetOnline(false)
	result, err := o.CreateTransaction(ctx, model.Transaction{
		AccountID:   1,
		Amount:      decimal.NewFromInt(-5),
		Description: "coffee",
		Date:        "2026-08-30",
	})
	require.NoError(t, err)
	require.True(t, result.Offline)
	pending, err := o.PendingChanges(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, pending)

	require.NoError(t, o.Login(ctx, "bob@example.com", "secret"))

	pending, err = o.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending, "previous user's queue must not replay under the new session")

	cached, err := localstore.GetAll[model.Account](ctx, o.store, localstore.StoreAccounts)
	require.NoError(t, err)
	assert.Empty(t, cached, "previous user's cache must not be served")

	_, err = o.GetAccounts(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/api/v1/accounts"))
}

func TestLoginSameUserKeepsQueue(t *testing.T) {
	f := newFakeServer(t)
	o := newTestOffline(t, f)
	ctx := context.Background()

	require.NoError(t, o.Login(ctx, "alice@example.com", "secret"))

	o.SetOnline(false)
	_, err := o.CreateTransaction(ctx, model.Transaction{
		AccountID:   1,
		Amount:      decimal.NewFromInt(-5),
		Description: "coffee",
		Date:        "2026-08-30",
	})
	require.NoError(t, err)

	require.NoError(t, o.Login(ctx, "alice@example.com", "secret"))

	pending, err := o.PendingChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
