package domain

import "context"

// Transaction exposes the mutations a persistence implementation must support
// within an atomic scope. Items and collections are owned by a trainer and are
// therefore changed through the trainer mutators.
type Transaction interface {
	Snapshot() TransactionView
	Profile() Trainer
	UpdateProfile(mutator func(*Trainer) error) (Trainer, error)
	CreateTrainer(Trainer) (Trainer, error)
	UpdateTrainer(id string, mutator func(*Trainer) error) (Trainer, error)
	DeleteTrainer(id string) error
	FindTrainer(id string) (Trainer, bool)
	NewCollectionID() string
}

// TransactionView provides read-only access to snapshot data.
type TransactionView interface {
	RuleView
}

// Snapshot is a point-in-time copy of the whole store.
type Snapshot struct {
	Trainer       Trainer   `json:"trainer" yaml:"trainer"`
	OtherTrainers []Trainer `json:"other_trainers" yaml:"other_trainers"`
	Regions       []Region  `json:"regions" yaml:"regions"`
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Trainer:       s.Trainer.Clone(),
		OtherTrainers: make([]Trainer, len(s.OtherTrainers)),
		Regions:       make([]Region, len(s.Regions)),
	}
	for i, t := range s.OtherTrainers {
		out.OtherTrainers[i] = t.Clone()
	}
	for i, r := range s.Regions {
		out.Regions[i] = r.Clone()
	}
	return out
}

// PersistentStore is the abstraction the service layer runs against. Every
// backend keeps the in-memory semantics; durable backends only mirror state.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ImportState(Snapshot)
	ExportState() Snapshot
}
