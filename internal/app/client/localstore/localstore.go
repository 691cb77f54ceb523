// Package localstore is the durable client-side cache backing offline use.
//
// Entities, the sync queue and cache metadata live in one SQLite database as
// JSON documents, one table per named store. The primary key of each row is
// extracted from the document itself (id for entities, key for metadata, url
// for the api cache), so callers only ever hand over whole documents.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store names, mirroring the object stores of the web client.
const (
	StoreAccounts       = "accounts"
	StoreCategories     = "categories"
	StoreTransactions   = "transactions"
	StorePayees         = "payees"
	StoreCategoryGroups = "category_groups"
	StoreSyncQueue      = "sync_queue"
	StoreMetadata       = "metadata"
	StoreAPICache       = "api_cache"
)

var ErrUnknownStore = errors.New("unknown store")

type storeDef struct {
	keyPath string
	indexes []string
}

var stores = map[string]storeDef{
	StoreAccounts:       {keyPath: "id"},
	StoreCategories:     {keyPath: "id", indexes: []string{"group_id", "type"}},
	StoreTransactions:   {keyPath: "id", indexes: []string{"account_id", "category_id", "date"}},
	StorePayees:         {keyPath: "id"},
	StoreCategoryGroups: {keyPath: "id"},
	StoreSyncQueue:      {keyPath: "id", indexes: []string{"timestamp"}},
	StoreMetadata:       {keyPath: "key"},
	StoreAPICache:       {keyPath: "url"},
}

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every operation can run
// either standalone or inside InTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	q  DBTX
}

// Open opens (or creates) the local store at path. A failure to open the
// database or create the schema is returned immediately; there is no
// degraded mode at this layer.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	s := &Store{db: db, q: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local store schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	for name, def := range stores {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (k PRIMARY KEY NOT NULL, doc TEXT NOT NULL)`, name)
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
		for _, idx := range def.indexes {
			ddl := fmt.Sprintf(
				`CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (json_extract(doc, '$.%s'))`,
				name, idx, name, idx)
			if _, err := s.db.Exec(ddl); err != nil {
				return fmt.Errorf("create index on %s(%s): %w", name, idx, err)
			}
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InTx runs fn against a transaction-bound view of the store. Every operation
// fn performs is committed atomically, or rolled back when fn errors. Pairs
// such as "optimistic write + enqueue" go through here.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w; rollback failed: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func def(store string) (storeDef, error) {
	d, ok := stores[store]
	if !ok {
		return storeDef{}, fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}
	return d, nil
}

// GetAll returns every document in the named store. An empty store yields an
// empty slice, not an error.
func GetAll[T any](ctx context.Context, s *Store, store string) ([]T, error) {
	if _, err := def(store); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx, fmt.Sprintf(`SELECT doc FROM %s`, store))
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", store, err)
	}
	defer rows.Close()
	return scanDocs[T](rows, store)
}

// GetByID returns the document with the given primary key, or nil when the
// store has no such document.
func GetByID[T any](ctx context.Context, s *Store, store string, id any) (*T, error) {
	if _, err := def(store); err != nil {
		return nil, err
	}
	var doc []byte
	row := s.q.QueryRowContext(ctx, fmt.Sprintf(`SELECT doc FROM %s WHERE k = ?`, store), id)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select from %s: %w", store, err)
	}
	item := new(T)
	if err := json.Unmarshal(doc, item); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", store, err)
	}
	return item, nil
}

// GetByIndex returns the documents whose indexed field equals value. The
// field must be one of the store's declared indexes.
func GetByIndex[T any](ctx context.Context, s *Store, store, field string, value any) ([]T, error) {
	d, err := def(store)
	if err != nil {
		return nil, err
	}
	if !contains(d.indexes, field) {
		return nil, fmt.Errorf("store %s has no index on %s", store, field)
	}
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE json_extract(doc, '$.%s') = ?`, store, field)
	rows, err := s.q.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s by %s: %w", store, field, err)
	}
	defer rows.Close()
	return scanDocs[T](rows, store)
}

// PutOne upserts a single document by its key path.
func PutOne[T any](ctx context.Context, s *Store, store string, item T) error {
	d, err := def(store)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", store, err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (k, doc) VALUES (json_extract(?1, '$.%s'), ?1)
		 ON CONFLICT(k) DO UPDATE SET doc = excluded.doc`, store, d.keyPath)
	if _, err := s.q.ExecContext(ctx, query, string(doc)); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", store, err)
	}
	return nil
}

// PutMany upserts the items inside one transaction: either every item is
// written or the store is left unchanged. Called on a transaction-bound
// store the surrounding transaction is reused instead.
func PutMany[T any](ctx context.Context, s *Store, store string, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if _, ok := s.q.(*sql.Tx); ok {
		return putAll(ctx, s, store, items)
	}
	return s.InTx(ctx, func(tx *Store) error {
		return putAll(ctx, tx, store, items)
	})
}

// ReplaceAll swaps the full contents of a store for items, atomically. Used
// for whole-collection refreshes from the network.
func ReplaceAll[T any](ctx context.Context, s *Store, store string, items []T) error {
	if _, ok := s.q.(*sql.Tx); ok {
		if err := s.ClearStore(ctx, store); err != nil {
			return err
		}
		return putAll(ctx, s, store, items)
	}
	return s.InTx(ctx, func(tx *Store) error {
		if err := tx.ClearStore(ctx, store); err != nil {
			return err
		}
		return putAll(ctx, tx, store, items)
	})
}

func putAll[T any](ctx context.Context, s *Store, store string, items []T) error {
	for _, item := range items {
		if err := PutOne(ctx, s, store, item); err != nil {
			return err
		}
	}
	return nil
}

// DeleteOne removes the document with the given primary key. Deleting a
// missing document is not an error.
func (s *Store) DeleteOne(ctx context.Context, store string, id any) error {
	if _, err := def(store); err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE k = ?`, store), id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", store, err)
	}
	return nil
}

// ClearStore removes every document in the named store.
func (s *Store) ClearStore(ctx context.Context, store string) error {
	if _, err := def(store); err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, store)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", store, err)
	}
	return nil
}

// Count returns the number of documents in the named store.
func (s *Store) Count(ctx context.Context, store string) (int, error) {
	if _, err := def(store); err != nil {
		return 0, err
	}
	var n int
	row := s.q.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, store))
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", store, err)
	}
	return n, nil
}

func scanDocs[T any](rows *sql.Rows, store string) ([]T, error) {
	result := []T{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", store, err)
		}
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", store, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
