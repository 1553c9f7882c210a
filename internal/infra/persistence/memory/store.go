// Package memory provides the in-memory implementation of the trainerdex entity
// store. It is the single source of truth for a process lifetime; the sqlite
// and postgres packages wrap it to mirror committed state.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"trainerdex/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Trainer aliases domain.Trainer.
	Trainer = domain.Trainer
	// Region aliases domain.Region.
	Region = domain.Region
	// Snapshot aliases domain.Snapshot.
	Snapshot = domain.Snapshot
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView.
	TransactionView = domain.TransactionView
)

// Prefixes applied to generated identifiers.
const (
	TrainerIDPrefix    = "trainer-"
	CollectionIDPrefix = "collection-"
)

type memoryState struct {
	trainer  Trainer
	trainers map[string]Trainer
	order    []string
	regions  []Region
}

func newMemoryState() memoryState {
	return memoryState{trainers: make(map[string]Trainer)}
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		trainer:  s.trainer.Clone(),
		trainers: make(map[string]Trainer, len(s.trainers)),
		order:    append([]string(nil), s.order...),
		regions:  make([]Region, len(s.regions)),
	}
	for id, t := range s.trainers {
		out.trainers[id] = t.Clone()
	}
	for i, r := range s.regions {
		out.regions[i] = r.Clone()
	}
	return out
}

func stateFromSnapshot(snapshot Snapshot) memoryState {
	state := newMemoryState()
	state.trainer = snapshot.Trainer.Clone()
	for _, t := range snapshot.OtherTrainers {
		if _, dup := state.trainers[t.ID]; !dup {
			state.order = append(state.order, t.ID)
		}
		state.trainers[t.ID] = t.Clone()
	}
	for _, r := range snapshot.Regions {
		state.regions = append(state.regions, r.Clone())
	}
	return state
}

func (s memoryState) snapshot() Snapshot {
	out := Snapshot{
		Trainer:       s.trainer.Clone(),
		OtherTrainers: make([]Trainer, 0, len(s.order)),
		Regions:       make([]Region, 0, len(s.regions)),
	}
	for _, id := range s.order {
		out.OtherTrainers = append(out.OtherTrainers, s.trainers[id].Clone())
	}
	for _, r := range s.regions {
		out.Regions = append(out.Regions, r.Clone())
	}
	return out
}

// Store is the in-memory transactional entity store. A single mutex serialises
// transactions; readers work on copies.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
	idFn   func() string
	commit CommitObserver
}

// CommitObserver receives the snapshot about to be committed and its changes
// while the store lock is held, so calls arrive in commit order.
type CommitObserver func(ctx context.Context, snapshot Snapshot, changes []Change) error

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp join dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// WithIDGenerator overrides the token appended to the trainer- and
// collection- prefixes.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.idFn = next
		}
	}
}

// WithCommitObserver registers fn to run for every transaction that passed its
// rules, just before the new state is swapped in. An observer error aborts the
// transaction and leaves the live state untouched.
func WithCommitObserver(fn CommitObserver) Option {
	return func(s *Store) { s.commit = fn }
}

// NewStore constructs an empty store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
		idFn:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportState clones the current store state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snapshot)
}

// RulesEngine exposes the configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// RunInTransaction applies fn to a private copy of the state. The copy replaces
// the live state only when fn returns nil and no blocking rule fires.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	if s.commit != nil {
		if err := s.commit(ctx, tx.state.snapshot(), tx.changes); err != nil {
			return Result{}, fmt.Errorf("commit observer: %w", err)
		}
	}
	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newTransactionView(&snapshot))
}

// Profile returns the current trainer.
func (s *Store) Profile() Trainer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.trainer.Clone()
}

// ListTrainers returns the directory in insertion order.
func (s *Store) ListTrainers() []Trainer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListTrainers()
}

// ListRegions returns every region with its locations.
func (s *Store) ListRegions() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newTransactionView(&s.state).ListRegions()
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

func (v transactionView) Profile() Trainer { return v.state.trainer.Clone() }

func (v transactionView) ListTrainers() []Trainer {
	out := make([]Trainer, 0, len(v.state.order))
	for _, id := range v.state.order {
		out = append(out, v.state.trainers[id].Clone())
	}
	return out
}

func (v transactionView) FindTrainer(id string) (Trainer, bool) {
	t, ok := v.state.trainers[id]
	if !ok {
		return Trainer{}, false
	}
	return t.Clone(), true
}

func (v transactionView) ListRegions() []Region {
	out := make([]Region, len(v.state.regions))
	for i, r := range v.state.regions {
		out[i] = r.Clone()
	}
	return out
}

// FindRegion matches the region id or name, ignoring case.
func (v transactionView) FindRegion(key string) (Region, bool) {
	key = strings.TrimSpace(key)
	for _, r := range v.state.regions {
		if strings.EqualFold(r.ID, key) || strings.EqualFold(r.Name, key) {
			return r.Clone(), true
		}
	}
	return Region{}, false
}
