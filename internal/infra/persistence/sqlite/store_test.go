package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"trainerdex/internal/infra/persistence/memory"
	"trainerdex/pkg/domain"
)

func seedSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Trainer: domain.Trainer{ID: "trainer-001", Name: "Red", Region: "Kanto", CollectedPokemon: []int{25}, PokemonCaught: 1},
		OtherTrainers: []domain.Trainer{
			{ID: "trainer-002", Name: "Blue", Region: "Kanto"},
		},
		Regions: []domain.Region{{ID: "kanto", Name: "Kanto"}},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "dex.db")
	store, err := NewStore(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	store.ImportState(seedSnapshot())
	return store
}

func TestCommitsAreJournaled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateProfile(func(tr *domain.Trainer) error {
			tr.Badges = 2
			return nil
		})
		return err
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteTrainer("trainer-002")
	}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entries, err := store.Journal(ctx)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Seq >= entries[1].Seq {
		t.Fatalf("expected ascending seq, got %d then %d", entries[0].Seq, entries[1].Seq)
	}
	if entries[0].Snapshot.Trainer.Badges != 2 || len(entries[0].Changes) != 1 {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if len(entries[1].Snapshot.OtherTrainers) != 0 {
		t.Fatalf("expected trainer removed in second snapshot, got %+v", entries[1].Snapshot.OtherTrainers)
	}
	if !strings.Contains(string(entries[1].Changes[0]), `"delete"`) {
		t.Fatalf("expected delete change, got %s", entries[1].Changes[0])
	}
	if entries[1].TakenAt.IsZero() {
		t.Fatalf("expected timestamp")
	}
}

func TestFailedTransactionsAreNotJournaled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeleteTrainer("ghost-id")
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	entries, err := store.Journal(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty journal, got %v %d", err, len(entries))
	}
}

func TestReopenDoesNotHydrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dex.db")
	ctx := context.Background()
	first, err := NewStore(ctx, path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first.ImportState(seedSnapshot())
	if _, err := first.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdateProfile(func(tr *domain.Trainer) error { tr.Name = "Ash"; return nil })
		return err
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	_ = first.Close()

	second, err := NewStore(ctx, path, nil, memory.WithIDGenerator(func() string { return "x" }))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = second.Close() }()
	if second.Profile().Name != "" {
		t.Fatalf("journal must not hydrate the store, got profile %+v", second.Profile())
	}
	entries, err := second.Journal(ctx)
	if err != nil || len(entries) != 1 || entries[0].Snapshot.Trainer.Name != "Ash" {
		t.Fatalf("expected previous journal to survive migration rerun: %v %+v", err, entries)
	}
	if second.Path() != path || second.DB() == nil {
		t.Fatalf("unexpected accessors")
	}
}

func TestInMemoryDatabase(t *testing.T) {
	store, err := NewStore(context.Background(), ":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	store.ImportState(seedSnapshot())
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateTrainer(domain.Trainer{Name: "Gold", Region: "Johto"})
		return err
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	entries, err := store.Journal(context.Background())
	if err != nil || len(entries) != 1 {
		t.Fatalf("journal: %v %d", err, len(entries))
	}
}
