package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/exp/slog"

	"budgetkeeper/internal/app/client/localstore"
)

const maxQueueRetries = 3

// SyncQueueItem is one pending mutation awaiting replay. The ULID id makes
// items unique and time-ordered; the idempotency key keeps a replay safe when
// a crash lands between "request delivered" and "item removed".
type SyncQueueItem struct {
	ID             string          `json:"id"`
	Timestamp      int64           `json:"timestamp"`
	Method         string          `json:"method"`
	URL            string          `json:"url"`
	Body           json.RawMessage `json:"body,omitempty"`
	Retries        int             `json:"retries"`
	IdempotencyKey string          `json:"idempotency_key"`
}

func newQueueItem(method, url string, body any) (SyncQueueItem, error) {
	item := SyncQueueItem{
		ID:             ulid.Make().String(),
		Timestamp:      time.Now().UnixMilli(),
		Method:         method,
		URL:            url,
		IdempotencyKey: uuid.NewString(),
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return SyncQueueItem{}, fmt.Errorf("failed to encode queue item body: %w", err)
		}
		item.Body = data
	}
	return item, nil
}

// QueueProcessor replays queued mutations in enqueue order once the server is
// reachable. Runs are single-flight: a trigger arriving while a run is in
// progress is dropped, not queued.
type QueueProcessor struct {
	store *localstore.Store
	api   *APIClient
	log   *slog.Logger

	mu        sync.Mutex
	isSyncing bool
	lastSync  time.Time
	syncErr   string
	dropped   int
}

func NewQueueProcessor(store *localstore.Store, api *APIClient, log *slog.Logger) *QueueProcessor {
	return &QueueProcessor{store: store, api: api, log: log}
}

// Process drains the queue in FIFO order. Each item is handled in isolation:
// a 2xx response removes it, a 4xx removes it permanently (the request will
// never succeed), a 5xx or transport failure increments its retry count until
// the ceiling drops it. One item's failure never aborts the rest of the run.
func (p *QueueProcessor) Process(ctx context.Context) error {
	p.mu.Lock()
	if p.isSyncing {
		p.mu.Unlock()
		return nil
	}
	p.isSyncing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.isSyncing = false
		p.mu.Unlock()
	}()

	items, err := localstore.GetAll[SyncQueueItem](ctx, p.store, localstore.StoreSyncQueue)
	if err != nil {
		return fmt.Errorf("failed to load sync queue: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Timestamp != items[j].Timestamp {
			return items[i].Timestamp < items[j].Timestamp
		}
		return items[i].ID < items[j].ID
	})

	for _, item := range items {
		p.processItem(ctx, item)
	}

	// Stamped only after a full pass; a failed load or an empty queue is not
	// a sync.
	p.mu.Lock()
	p.lastSync = time.Now()
	p.mu.Unlock()
	return nil
}

func (p *QueueProcessor) processItem(ctx context.Context, item SyncQueueItem) {
	headers := map[string]string{"Idempotency-Key": item.IdempotencyKey}
	resp, err := p.api.Replay(ctx, item.Method, item.URL, item.Body, headers)
	if err != nil {
		p.log.Warn("sync item failed, will retry",
			"id", item.ID, "method", item.Method, "url", item.URL, "error", err)
		p.retryOrDrop(ctx, item, err.Error())
		return
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		if err := p.store.DeleteOne(ctx, localstore.StoreSyncQueue, item.ID); err != nil {
			p.log.Error("failed to remove synced queue item", "id", item.ID, "error", err)
		}
	case resp.StatusCode < 500:
		// The request is inherently invalid; retrying cannot fix it.
		p.log.Warn("sync item rejected by server, dropping",
			"id", item.ID, "status", resp.StatusCode, "url", item.URL)
		p.drop(ctx, item, fmt.Sprintf("%s %s rejected with status %d", item.Method, item.URL, resp.StatusCode))
	default:
		p.retryOrDrop(ctx, item, fmt.Sprintf("server status %d", resp.StatusCode))
	}
}

func (p *QueueProcessor) retryOrDrop(ctx context.Context, item SyncQueueItem, reason string) {
	item.Retries++
	if item.Retries >= maxQueueRetries {
		p.log.Error("sync item exhausted retries, dropping",
			"id", item.ID, "url", item.URL, "reason", reason)
		p.drop(ctx, item, fmt.Sprintf("%s %s dropped after %d attempts: %s",
			item.Method, item.URL, item.Retries, reason))
		return
	}
	if err := localstore.PutOne(ctx, p.store, localstore.StoreSyncQueue, item); err != nil {
		p.log.Error("failed to persist retry count", "id", item.ID, "error", err)
	}
}

func (p *QueueProcessor) drop(ctx context.Context, item SyncQueueItem, reason string) {
	if err := p.store.DeleteOne(ctx, localstore.StoreSyncQueue, item.ID); err != nil {
		p.log.Error("failed to remove dropped queue item", "id", item.ID, "error", err)
		return
	}
	p.mu.Lock()
	p.dropped++
	p.syncErr = reason
	p.mu.Unlock()
}

// PendingCount returns the number of queued mutations.
func (p *QueueProcessor) PendingCount(ctx context.Context) (int, error) {
	return p.store.Count(ctx, localstore.StoreSyncQueue)
}

// IsSyncing reports whether a replay run is in flight.
func (p *QueueProcessor) IsSyncing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isSyncing
}

// LastSyncTime is the completion time of the most recent run (zero before the
// first run).
func (p *QueueProcessor) LastSyncTime() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSync
}

// SyncError describes the most recent permanently dropped mutation, empty
// when none has been dropped. DroppedCount counts them for the session.
func (p *QueueProcessor) SyncError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.syncErr
}

func (p *QueueProcessor) DroppedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}
