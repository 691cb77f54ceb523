package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetkeeper/internal/app/client/config"
	"budgetkeeper/internal/app/client/localstore"
)

func newTestQueue(t *testing.T, handler http.Handler) (*QueueProcessor, *localstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{ServerURL: srv.URL}
	api, err := NewAPIClient(cfg, testLogger())
	require.NoError(t, err)

	store := openClientStore(t)
	return NewQueueProcessor(store, api, testLogger()), store
}

func enqueueAt(t *testing.T, store *localstore.Store, ts int64, method, url string) SyncQueueItem {
	t.Helper()
	item, err := newQueueItem(method, url, map[string]string{"payload": url})
	require.NoError(t, err)
	item.Timestamp = ts
	require.NoError(t, localstore.PutOne(context.Background(), store, localstore.StoreSyncQueue, item))
	return item
}

func TestProcessReplaysInEnqueueOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	p, store := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		order = append(order, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))

	// Inserted out of order on purpose; replay must follow timestamps.
	enqueueAt(t, store, 300, http.MethodPost, "/third")
	enqueueAt(t, store, 100, http.MethodPost, "/first")
	enqueueAt(t, store, 200, http.MethodPut, "/second")

	require.NoError(t, p.Process(context.Background()))

	assert.Equal(t, []string{"/first", "/second", "/third"}, order)
	n, err := p.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessIsSingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var hits int
	var mu sync.Mutex

	p, store := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		first := hits == 1
		mu.Unlock()
		if first {
			close(entered)
			<-release
		}
		w.WriteHeader(http.StatusOK)
	}))
	enqueueAt(t, store, 100, http.MethodPost, "/one")

	done := make(chan error, 1)
	go func() { done <- p.Process(context.Background()) }()
	<-entered

	// Second trigger while the first run is in flight: must be a no-op.
	require.NoError(t, p.Process(context.Background()))
	assert.True(t, p.IsSyncing())

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits)
}

func TestRetryCeilingDropsItem(t *testing.T) {
	var hits int
	p, store := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	enqueueAt(t, store, 100, http.MethodPost, "/flaky")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Process(ctx))
	}
	assert.Equal(t, 3, hits)

	n, err := p.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "item must be dropped at the retry ceiling")

	// A fourth run must not produce another network call.
	require.NoError(t, p.Process(ctx))
	assert.Equal(t, 3, hits)
	assert.Equal(t, 1, p.DroppedCount())
	assert.NotEmpty(t, p.SyncError())
}

func TestClientErrorDropsAfterOneAttempt(t *testing.T) {
	var hits int
	p, store := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	enqueueAt(t, store, 100, http.MethodPost, "/invalid")
	ctx := context.Background()

	require.NoError(t, p.Process(ctx))
	require.NoError(t, p.Process(ctx))

	assert.Equal(t, 1, hits, "4xx items are never retried")
	n, err := p.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, p.DroppedCount())
}

func TestNetworkFailureKeepsItemQueued(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := &config.Config{ServerURL: srv.URL}
	api, err := NewAPIClient(cfg, testLogger())
	require.NoError(t, err)
	srv.Close() // every replay now fails at the transport level

	store := openClientStore(t)
	p := NewQueueProcessor(store, api, testLogger())
	enqueueAt(t, store, 100, http.MethodPost, "/unreachable")
	ctx := context.Background()

	require.NoError(t, p.Process(ctx))

	items, err := localstore.GetAll[SyncQueueItem](ctx, store, localstore.StoreSyncQueue)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Retries)
}

func TestReplayCarriesIdempotencyKey(t *testing.T) {
	var got string
	p, store := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusOK)
	}))
	item := enqueueAt(t, store, 100, http.MethodPost, "/tx")

	require.NoError(t, p.Process(context.Background()))
	assert.Equal(t, item.IdempotencyKey, got)
	assert.NotEmpty(t, got)
}

func TestQueueItemIDsAreTimeOrdered(t *testing.T) {
	a := ulid.Make().String()
	time.Sleep(2 * time.Millisecond)
	b := ulid.Make().String()
	assert.Less(t, a, b)
}

func TestLastSyncTimeRecorded(t *testing.T) {
	p, _ := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.True(t, p.LastSyncTime().IsZero())
	require.NoError(t, p.Process(context.Background()))
	assert.False(t, p.LastSyncTime().IsZero())
}

func TestEmptyRunDoesNotStampLastSync(t *testing.T) {
	p, _ := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, p.Process(context.Background()))
	assert.True(t, p.LastSyncTime().IsZero())
}

func TestFailedLoadDoesNotStampLastSync(t *testing.T) {
	p, store := newTestQueue(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	require.NoError(t, store.Close())

	err := p.Process(context.Background())
	assert.Error(t, err)
	assert.True(t, p.LastSyncTime().IsZero())
}
