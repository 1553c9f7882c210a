// Package postgres mirrors committed trainerdex state into a Postgres journal
// table. Like the sqlite mirror it never hydrates the in-memory store.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"trainerdex/internal/infra/persistence/memory"
	"trainerdex/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/trainerdex?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const journalDDL = `CREATE TABLE IF NOT EXISTS snapshots (
	seq      BIGSERIAL PRIMARY KEY,
	taken_at TIMESTAMPTZ NOT NULL,
	payload  JSONB NOT NULL,
	changes  JSONB NOT NULL
)`

// Store is a memory.Store whose commits are appended to Postgres.
type Store struct {
	*memory.Store
	db  *sql.DB
	now func() time.Time
}

// NewStore connects with dsn (defaultDSN when empty) and ensures the journal
// table exists.
func NewStore(ctx context.Context, dsn string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, journalDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure snapshots table: %w", err)
	}
	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	opts = append(opts, memory.WithCommitObserver(s.append))
	s.Store = memory.NewStore(engine, opts...)
	return s, nil
}

func (s *Store) append(ctx context.Context, snapshot domain.Snapshot, changes []domain.Change) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if changes == nil {
		changes = []domain.Change{}
	}
	changeData, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encode changes: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots(taken_at, payload, changes) VALUES($1, $2, $3)`,
		s.now(), payload, changeData); err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

// Entry is one journal row.
type Entry struct {
	Seq      int64
	TakenAt  time.Time
	Snapshot domain.Snapshot
	Changes  []json.RawMessage
}

// Journal returns the appended rows, oldest first.
func (s *Store) Journal(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, taken_at, payload, changes FROM snapshots ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			payload []byte
			changes []byte
		)
		if err := rows.Scan(&e.Seq, &e.TakenAt, &payload, &changes); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal(payload, &e.Snapshot); err != nil {
			return nil, fmt.Errorf("decode snapshot %d: %w", e.Seq, err)
		}
		if err := json.Unmarshal(changes, &e.Changes); err != nil {
			return nil, fmt.Errorf("decode changes %d: %w", e.Seq, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sql.Open function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
