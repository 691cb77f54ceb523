// Package client implements the offline-capable budgetkeeper client: a
// durable local cache of the server's collections, a queue of mutations made
// while disconnected, and a facade that hides the fresh/stale and
// online/offline decision tree from callers.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"budgetkeeper/internal/app/client/config"
	"budgetkeeper/internal/app/client/localstore"
	"budgetkeeper/internal/model"
)

// ErrNoCachedData is returned when a read can neither reach the network nor
// find anything cached (only FetchJSON-style single-document reads; list
// reads degrade to an empty slice instead).
var ErrNoCachedData = errors.New("no cached data available")

// TransactionQuery narrows a transaction read. A nil AccountID means the
// whole collection.
type TransactionQuery struct {
	AccountID    *int64
	ForceRefresh bool
}

// MutationResult reports the outcome of a write. Offline is set when the
// write was applied locally and queued; ID carries the server id for online
// creates and the negative placeholder id for offline ones.
type MutationResult struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id,omitempty"`
	Offline bool  `json:"offline,omitempty"`
}

// Offline is the single entry point application code uses for reads and
// writes of budget data. Call Init once per session before use and Close on
// shutdown.
type Offline struct {
	cfg     *config.Config
	log     *slog.Logger
	api     *APIClient
	store   *localstore.Store
	fresh   *Freshness
	queue   *QueueProcessor
	monitor *Monitor
}

func NewOffline(cfg *config.Config, log *slog.Logger) (*Offline, error) {
	api, err := NewAPIClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Offline{cfg: cfg, log: log, api: api}, nil
}

// Init opens the local store, primes queue state and starts the connectivity
// monitor. When the server is already reachable a sync is kicked off
// immediately. A store-open failure is fatal for offline support and is
// returned as-is; callers may fall back to online-only behavior.
func (o *Offline) Init(ctx context.Context) error {
	store, err := localstore.Open(o.cfg.StorePath)
	if err != nil {
		return fmt.Errorf("offline storage unavailable: %w", err)
	}
	o.store = store
	o.fresh = NewFreshness(store)
	o.queue = NewQueueProcessor(store, o.api, o.log)
	o.monitor = NewMonitor(o.api, func() { o.syncAsync() }, o.log)
	o.monitor.Start(ctx)

	pending, err := o.queue.PendingCount(ctx)
	if err != nil {
		return err
	}
	if pending > 0 {
		o.log.Info("offline store primed", "pending_changes", pending)
	}
	if o.monitor.IsOnline() {
		o.syncAsync()
	}
	return nil
}

func (o *Offline) Close() error {
	if o.monitor != nil {
		o.monitor.Stop()
	}
	if o.store != nil {
		return o.store.Close()
	}
	return nil
}

func (o *Offline) syncAsync() {
	go func() {
		if err := o.queue.Process(context.Background()); err != nil {
			o.log.Error("sync run failed", "error", err)
		}
	}()
}

// Sync drains the pending queue now, if online. A run already in flight
// makes this a no-op.
func (o *Offline) Sync(ctx context.Context) error {
	if !o.monitor.IsOnline() {
		return nil
	}
	return o.queue.Process(ctx)
}

// ---- Status surface ----

func (o *Offline) IsOnline() bool          { return o.monitor.IsOnline() }
func (o *Offline) IsSyncing() bool         { return o.queue.IsSyncing() }
func (o *Offline) LastSyncTime() time.Time { return o.queue.LastSyncTime() }
func (o *Offline) SyncError() string       { return o.queue.SyncError() }
func (o *Offline) DroppedCount() int       { return o.queue.DroppedCount() }

// PendingChanges counts queued mutations awaiting replay.
func (o *Offline) PendingChanges(ctx context.Context) (int, error) {
	return o.queue.PendingCount(ctx)
}

// SetOnline feeds an explicit connectivity signal to the monitor.
func (o *Offline) SetOnline(online bool) { o.monitor.SetOnline(online) }

// ---- Reads ----

func (o *Offline) GetAccounts(ctx context.Context, forceRefresh bool) ([]model.Account, error) {
	return readCollection(ctx, o, "accounts", localstore.StoreAccounts, ttlAccounts, forceRefresh, o.api.FetchAccounts)
}

func (o *Offline) GetCategories(ctx context.Context, forceRefresh bool) ([]model.Category, error) {
	return readCollection(ctx, o, "categories", localstore.StoreCategories, ttlCategories, forceRefresh, o.api.FetchCategories)
}

func (o *Offline) GetCategoryGroups(ctx context.Context, forceRefresh bool) ([]model.CategoryGroup, error) {
	return readCollection(ctx, o, "categoryGroups", localstore.StoreCategoryGroups, ttlCategoryGroups, forceRefresh, o.api.FetchCategoryGroups)
}

func (o *Offline) GetPayees(ctx context.Context, forceRefresh bool) ([]model.Payee, error) {
	return readCollection(ctx, o, "payees", localstore.StorePayees, ttlPayees, forceRefresh, o.api.FetchPayees)
}

// GetTransactions reads transactions, optionally narrowed to one account.
// Account-filtered fetches upsert into the store rather than replacing it,
// so other accounts' cached rows survive.
func (o *Offline) GetTransactions(ctx context.Context, q TransactionQuery) ([]model.Transaction, error) {
	key := "transactions_all"
	if q.AccountID != nil {
		key = "transactions_" + strconv.FormatInt(*q.AccountID, 10)
	}

	local := func() ([]model.Transaction, error) {
		if q.AccountID != nil {
			return localstore.GetByIndex[model.Transaction](ctx, o.store, localstore.StoreTransactions, "account_id", *q.AccountID)
		}
		return localstore.GetAll[model.Transaction](ctx, o.store, localstore.StoreTransactions)
	}

	if !q.ForceRefresh {
		valid, err := o.fresh.IsValid(ctx, key)
		if err != nil {
			return nil, err
		}
		if valid {
			return local()
		}
	}
	if !o.monitor.IsOnline() {
		return local()
	}

	fetched, err := o.api.FetchTransactions(ctx, q.AccountID)
	if err != nil {
		o.log.Warn("transaction fetch failed, serving cached data", "error", err)
		return local()
	}
	if q.AccountID == nil {
		err = localstore.ReplaceAll(ctx, o.store, localstore.StoreTransactions, fetched)
	} else {
		err = localstore.PutMany(ctx, o.store, localstore.StoreTransactions, fetched)
	}
	if err != nil {
		return nil, err
	}
	if err := o.fresh.Set(ctx, key, ttlTransactions); err != nil {
		return nil, err
	}
	return fetched, nil
}

const dashboardPath = "/api/v1/dashboard"

// GetDashboard serves the dashboard aggregate through the generic api cache.
func (o *Offline) GetDashboard(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := o.FetchJSON(ctx, dashboardPath, ttlDashboard, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// readCollection applies the freshness decision tree for a whole-collection
// entity read. Reads never fail for being offline; they degrade to whatever
// the local store holds.
func readCollection[T any](
	ctx context.Context,
	o *Offline,
	key, store string,
	ttl time.Duration,
	forceRefresh bool,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	if !forceRefresh {
		valid, err := o.fresh.IsValid(ctx, key)
		if err != nil {
			return nil, err
		}
		if valid {
			return localstore.GetAll[T](ctx, o.store, store)
		}
	}
	if !o.monitor.IsOnline() {
		return localstore.GetAll[T](ctx, o.store, store)
	}

	fetched, err := fetch(ctx)
	if err != nil {
		o.log.Warn("fetch failed, serving cached data", "store", store, "error", err)
		return localstore.GetAll[T](ctx, o.store, store)
	}
	if err := localstore.ReplaceAll(ctx, o.store, store, fetched); err != nil {
		return nil, err
	}
	if err := o.fresh.Set(ctx, key, ttl); err != nil {
		return nil, err
	}
	return fetched, nil
}

// ---- Writes ----

// CreateTransaction books a new transaction. Online it goes straight to the
// server and mirrors the stored row locally with the server id; offline it
// is applied optimistically under a negative placeholder id and queued, with
// both writes in one local transaction.
func (o *Offline) CreateTransaction(ctx context.Context, tx model.Transaction) (MutationResult, error) {
	if o.monitor.IsOnline() {
		id, err := o.api.CreateTransaction(ctx, tx)
		if err != nil {
			return MutationResult{}, err
		}
		tx.ID = id
		if err := localstore.PutOne(ctx, o.store, localstore.StoreTransactions, tx); err != nil {
			o.log.Error("failed to mirror created transaction", "id", id, "error", err)
		}
		return MutationResult{Success: true, ID: id}, nil
	}

	tx.ID = -time.Now().UnixMilli()
	body := tx
	body.ID = 0
	item, err := newQueueItem(http.MethodPost, "/api/v1/transactions", body)
	if err != nil {
		return MutationResult{}, err
	}
	err = o.store.InTx(ctx, func(s *localstore.Store) error {
		if err := localstore.PutOne(ctx, s, localstore.StoreTransactions, tx); err != nil {
			return err
		}
		return localstore.PutOne(ctx, s, localstore.StoreSyncQueue, item)
	})
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Success: true, ID: tx.ID, Offline: true}, nil
}

// UpdateTransaction replaces the mutable fields of a transaction.
func (o *Offline) UpdateTransaction(ctx context.Context, id int64, tx model.Transaction) (MutationResult, error) {
	tx.ID = id
	if existing, err := localstore.GetByID[model.Transaction](ctx, o.store, localstore.StoreTransactions, id); err == nil && existing != nil {
		tx.CreatedAt = existing.CreatedAt
	}

	if o.monitor.IsOnline() {
		if err := o.api.UpdateTransaction(ctx, id, tx); err != nil {
			return MutationResult{}, err
		}
		if err := localstore.PutOne(ctx, o.store, localstore.StoreTransactions, tx); err != nil {
			o.log.Error("failed to mirror updated transaction", "id", id, "error", err)
		}
		return MutationResult{Success: true, ID: id}, nil
	}

	item, err := newQueueItem(http.MethodPut, "/api/v1/transactions/"+strconv.FormatInt(id, 10), tx)
	if err != nil {
		return MutationResult{}, err
	}
	err = o.store.InTx(ctx, func(s *localstore.Store) error {
		if err := localstore.PutOne(ctx, s, localstore.StoreTransactions, tx); err != nil {
			return err
		}
		return localstore.PutOne(ctx, s, localstore.StoreSyncQueue, item)
	})
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Success: true, ID: id, Offline: true}, nil
}

// DeleteTransaction removes a transaction.
func (o *Offline) DeleteTransaction(ctx context.Context, id int64) (MutationResult, error) {
	if o.monitor.IsOnline() {
		if err := o.api.DeleteTransaction(ctx, id); err != nil {
			return MutationResult{}, err
		}
		if err := o.store.DeleteOne(ctx, localstore.StoreTransactions, id); err != nil {
			o.log.Error("failed to mirror deleted transaction", "id", id, "error", err)
		}
		return MutationResult{Success: true, ID: id}, nil
	}

	item, err := newQueueItem(http.MethodDelete, "/api/v1/transactions/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return MutationResult{}, err
	}
	err = o.store.InTx(ctx, func(s *localstore.Store) error {
		if err := s.DeleteOne(ctx, localstore.StoreTransactions, id); err != nil {
			return err
		}
		return localstore.PutOne(ctx, s, localstore.StoreSyncQueue, item)
	})
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Success: true, ID: id, Offline: true}, nil
}

// ---- Generic cached fetch ----

type apiCacheEntry struct {
	URL       string          `json:"url"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	ExpiresAt int64           `json:"expires_at"`
}

// FetchJSON gets a JSON document from the server with read-through caching
// in the api_cache store. Offline or on fetch failure the cached copy is
// served even when expired; ErrNoCachedData is returned only when neither
// network nor cache can satisfy the read.
func (o *Offline) FetchJSON(ctx context.Context, path string, ttl time.Duration, dest any) error {
	fromCache := func(requireFresh bool) (bool, error) {
		entry, err := localstore.GetByID[apiCacheEntry](ctx, o.store, localstore.StoreAPICache, path)
		if err != nil || entry == nil {
			return false, err
		}
		if requireFresh && time.Now().UnixMilli() >= entry.ExpiresAt {
			return false, nil
		}
		return true, json.Unmarshal(entry.Data, dest)
	}

	if ok, err := fromCache(true); ok || err != nil {
		return err
	}
	if !o.monitor.IsOnline() {
		if ok, err := fromCache(false); ok || err != nil {
			return err
		}
		return ErrNoCachedData
	}

	var raw json.RawMessage
	if err := o.api.getJSON(ctx, path, &raw); err != nil {
		o.log.Warn("fetch failed, trying cache", "path", path, "error", err)
		if ok, cerr := fromCache(false); ok || cerr != nil {
			return cerr
		}
		return err
	}
	now := time.Now().UnixMilli()
	entry := apiCacheEntry{URL: path, Data: raw, Timestamp: now, ExpiresAt: now + ttl.Milliseconds()}
	if err := localstore.PutOne(ctx, o.store, localstore.StoreAPICache, entry); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// ---- Administration ----

// InvalidateCache forces the next read of a cached collection to hit the
// network. Keys match the read surface: accounts, categories, categoryGroups,
// payees, transactions (which covers the per-account stamps too) and
// dashboard. An empty key invalidates everything, cached API responses
// included.
func (o *Offline) InvalidateCache(ctx context.Context, key string) error {
	switch key {
	case "":
		if err := o.fresh.Invalidate(ctx, ""); err != nil {
			return err
		}
		return o.store.ClearStore(ctx, localstore.StoreAPICache)
	case "transactions":
		return o.fresh.InvalidatePrefix(ctx, "transactions_")
	case "dashboard":
		return o.store.DeleteOne(ctx, localstore.StoreAPICache, dashboardPath)
	default:
		return o.fresh.Invalidate(ctx, key)
	}
}

// ClearAllData wipes every cached entity, queued mutation, freshness stamp
// and cached API response. Used on logout or account switch.
func (o *Offline) ClearAllData(ctx context.Context) error {
	return o.store.InTx(ctx, func(s *localstore.Store) error {
		for _, store := range []string{
			localstore.StoreAccounts,
			localstore.StoreCategories,
			localstore.StoreTransactions,
			localstore.StorePayees,
			localstore.StoreCategoryGroups,
			localstore.StoreSyncQueue,
			localstore.StoreMetadata,
			localstore.StoreAPICache,
		} {
			if err := s.ClearStore(ctx, store); err != nil {
				return err
			}
		}
		return nil
	})
}

// sessionStamp records which user the local store belongs to, so a login
// under a different account can be detected and the cache wiped.
type sessionStamp struct {
	Key   string `json:"key"`
	Email string `json:"email"`
}

const sessionUserKey = "session_user"

// Login authenticates against the server. Unless the store already belongs
// to the same user, all cached data and queued mutations are wiped first:
// one user's cache must never be served to another, and a stale queue would
// replay the previous user's mutations under the new session.
func (o *Offline) Login(ctx context.Context, email, password string) error {
	if err := o.api.Login(ctx, email, password); err != nil {
		return err
	}

	prev, err := localstore.GetByID[sessionStamp](ctx, o.store, localstore.StoreMetadata, sessionUserKey)
	if err != nil {
		return err
	}
	if prev == nil || prev.Email != email {
		if prev != nil {
			o.log.Info("store belongs to another user, clearing local data", "previous", prev.Email)
		}
		if err := o.ClearAllData(ctx); err != nil {
			return err
		}
	}
	if err := localstore.PutOne(ctx, o.store, localstore.StoreMetadata, sessionStamp{Key: sessionUserKey, Email: email}); err != nil {
		return err
	}

	o.monitor.SetOnline(true)
	return nil
}

// Register creates a server account. It does not log the user in.
func (o *Offline) Register(ctx context.Context, email, name, password string) error {
	return o.api.Register(ctx, email, name, password)
}

// ChangePassword rotates the server password for the current session user.
func (o *Offline) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return o.api.ChangePassword(ctx, oldPassword, newPassword)
}

func (o *Offline) Logout(ctx context.Context) error {
	if err := o.api.Logout(ctx); err != nil {
		return err
	}
	return o.ClearAllData(ctx)
}
