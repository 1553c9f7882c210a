// Package sqlite mirrors committed trainerdex state into a SQLite journal.
// The in-memory store stays authoritative: the journal is append-only and is
// never read back on open.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"trainerdex/internal/infra/persistence/memory"
	"trainerdex/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Store is a memory.Store whose commits are appended to the snapshots table.
type Store struct {
	*memory.Store
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore opens (or creates) the journal at path and migrates it. The
// returned store starts empty; callers seed it like any memory store.
func NewStore(ctx context.Context, path string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if path == "" {
		path = "trainerdex.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{db: db, path: path, now: func() time.Time { return time.Now().UTC() }}
	opts = append(opts, memory.WithCommitObserver(s.append))
	s.Store = memory.NewStore(engine, opts...)
	return s, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
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
		`INSERT INTO snapshots(taken_at, payload, changes) VALUES(?, ?, ?)`,
		s.now().Format(time.RFC3339Nano), payload, changeData); err != nil {
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

// Journal returns the rows appended so far, oldest first.
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
			takenAt string
			payload []byte
			changes []byte
		)
		if err := rows.Scan(&e.Seq, &takenAt, &payload, &changes); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if e.TakenAt, err = time.Parse(time.RFC3339Nano, takenAt); err != nil {
			return nil, fmt.Errorf("snapshot %d taken_at: %w", e.Seq, err)
		}
		if err := json.Unmarshal(payload, &e.Snapshot); err != nil {
			return nil, fmt.Errorf("decode snapshot %d: %w", e.Seq, err)
		}
		if err := json.Unmarshal(changes, &e.Changes); err != nil {
			return nil, fmt.Errorf("decode changes %d: %w", e.Seq, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DB exposes the underlying handle for tests and inspection tooling.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
