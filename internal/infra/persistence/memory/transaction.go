package memory

import (
	"fmt"
	"time"

	"trainerdex/pkg/domain"
)

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// Profile returns the current trainer as seen inside the transaction.
func (tx *transaction) Profile() Trainer {
	return tx.state.trainer.Clone()
}

// UpdateProfile mutates the current trainer. ID and JoinDate survive any mutator.
func (tx *transaction) UpdateProfile(mutator func(*Trainer) error) (Trainer, error) {
	current := tx.state.trainer.Clone()
	before := tx.state.trainer.Clone()
	if err := mutator(&current); err != nil {
		return Trainer{}, err
	}
	current.ID = before.ID
	current.JoinDate = before.JoinDate
	tx.state.trainer = current.Clone()
	tx.recordChange(Change{Entity: domain.EntityTrainer, Action: domain.ActionUpdate, Before: before, After: current.Clone()})
	return current, nil
}

// CreateTrainer appends a directory trainer, generating its id and stamping the
// join date when they are unset.
func (tx *transaction) CreateTrainer(t Trainer) (Trainer, error) {
	if t.ID == "" {
		t.ID = TrainerIDPrefix + tx.store.idFn()
	}
	if _, exists := tx.state.trainers[t.ID]; exists {
		return Trainer{}, fmt.Errorf("trainer %q already exists", t.ID)
	}
	if t.JoinDate.IsZero() {
		t.JoinDate = tx.now
	}
	t = t.Clone()
	tx.state.trainers[t.ID] = t
	tx.state.order = append(tx.state.order, t.ID)
	tx.recordChange(Change{Entity: domain.EntityTrainer, Action: domain.ActionCreate, After: t.Clone()})
	return t.Clone(), nil
}

// UpdateTrainer mutates a directory trainer using the provided mutator.
func (tx *transaction) UpdateTrainer(id string, mutator func(*Trainer) error) (Trainer, error) {
	current, ok := tx.state.trainers[id]
	if !ok {
		return Trainer{}, domain.NotFoundError{Entity: domain.EntityTrainer, ID: id}
	}
	before := current.Clone()
	current = current.Clone()
	if err := mutator(&current); err != nil {
		return Trainer{}, err
	}
	current.ID = id
	current.JoinDate = before.JoinDate
	tx.state.trainers[id] = current.Clone()
	tx.recordChange(Change{Entity: domain.EntityTrainer, Action: domain.ActionUpdate, Before: before, After: current.Clone()})
	return current, nil
}

// DeleteTrainer removes a directory trainer.
func (tx *transaction) DeleteTrainer(id string) error {
	current, ok := tx.state.trainers[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityTrainer, ID: id}
	}
	delete(tx.state.trainers, id)
	order := tx.state.order[:0:0]
	for _, existing := range tx.state.order {
		if existing != id {
			order = append(order, existing)
		}
	}
	tx.state.order = order
	tx.recordChange(Change{Entity: domain.EntityTrainer, Action: domain.ActionDelete, Before: current.Clone()})
	return nil
}

// FindTrainer exposes directory lookup within the transaction scope.
func (tx *transaction) FindTrainer(id string) (Trainer, bool) {
	t, ok := tx.state.trainers[id]
	if !ok {
		return Trainer{}, false
	}
	return t.Clone(), true
}

// NewCollectionID returns a fresh collection identifier.
func (tx *transaction) NewCollectionID() string {
	return CollectionIDPrefix + tx.store.idFn()
}
