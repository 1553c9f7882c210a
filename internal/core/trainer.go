package core

import (
	"context"
	"strconv"
	"strings"

	"trainerdex/pkg/domain"
)

const (
	opFetchTrainerProfile      = "fetch_trainer_profile"
	opUpdateTrainerProfile     = "update_trainer_profile"
	opUpdateTrainerName        = "update_trainer_name"
	opAddPokemonToTrainer      = "add_pokemon_to_trainer"
	opRemovePokemonFromTrainer = "remove_pokemon_from_trainer"
	opFetchTrainerItems        = "fetch_trainer_items"
	opUseItem                  = "use_item"
	opRemoveItem               = "remove_item"
	opAddItem                  = "add_item"
)

func trainerID(t Trainer) string { return t.ID }

// FetchTrainerProfile returns the current trainer. It only fails when the
// backing store does.
func (s *Service) FetchTrainerProfile(ctx context.Context) (Trainer, error) {
	return read(ctx, s, opFetchTrainerProfile, "", func(view TransactionView) (Trainer, error) {
		return view.Profile(), nil
	})
}

// UpdateTrainerProfile shallow-merges the set fields of update into the
// current trainer, last write wins per field.
func (s *Service) UpdateTrainerProfile(ctx context.Context, update TrainerUpdate) (Trainer, Result, error) {
	return mutate(ctx, s, opUpdateTrainerProfile, "", func(tx Transaction) (Trainer, error) {
		return tx.UpdateProfile(func(t *Trainer) error {
			update.Apply(t)
			return nil
		})
	}, trainerID)
}

// UpdateTrainerName renames the current trainer. A blank name is rejected.
func (s *Service) UpdateTrainerName(ctx context.Context, name string) (Trainer, Result, error) {
	return mutate(ctx, s, opUpdateTrainerName, "", func(tx Transaction) (Trainer, error) {
		if strings.TrimSpace(name) == "" {
			return Trainer{}, domain.ValidationError{Field: "name", Value: name, Reason: "must not be empty"}
		}
		return tx.UpdateProfile(func(t *Trainer) error {
			t.Name = name
			return nil
		})
	}, trainerID)
}

// AddPokemonToTrainer adds pokemonID to the collected set. Adding a member
// again changes nothing; a real add increments PokemonCaught by one.
func (s *Service) AddPokemonToTrainer(ctx context.Context, pokemonID int) (Trainer, Result, error) {
	return mutate(ctx, s, opAddPokemonToTrainer, strconv.Itoa(pokemonID), func(tx Transaction) (Trainer, error) {
		if tx.Profile().HasPokemon(pokemonID) {
			return tx.Profile(), nil
		}
		return tx.UpdateProfile(func(t *Trainer) error {
			t.CollectedPokemon = append(t.CollectedPokemon, pokemonID)
			t.PokemonCaught++
			return nil
		})
	}, trainerID)
}

// RemovePokemonFromTrainer drops pokemonID from the collected set. Removing a
// non-member changes nothing; PokemonCaught never drops below zero.
func (s *Service) RemovePokemonFromTrainer(ctx context.Context, pokemonID int) (Trainer, Result, error) {
	return mutate(ctx, s, opRemovePokemonFromTrainer, strconv.Itoa(pokemonID), func(tx Transaction) (Trainer, error) {
		if !tx.Profile().HasPokemon(pokemonID) {
			return tx.Profile(), nil
		}
		return tx.UpdateProfile(func(t *Trainer) error {
			t.CollectedPokemon = withoutInt(t.CollectedPokemon, pokemonID)
			t.PokemonCaught = decrementCaught(t.PokemonCaught)
			return nil
		})
	}, trainerID)
}

// FetchTrainerItems returns the current trainer's inventory.
func (s *Service) FetchTrainerItems(ctx context.Context) ([]TrainerItem, error) {
	return read(ctx, s, opFetchTrainerItems, "", func(view TransactionView) ([]TrainerItem, error) {
		return view.Profile().Items, nil
	})
}

// UseItem decrements the quantity of itemID by one and returns the updated
// inventory.
func (s *Service) UseItem(ctx context.Context, itemID int) ([]TrainerItem, Result, error) {
	return mutate(ctx, s, opUseItem, strconv.Itoa(itemID), func(tx Transaction) ([]TrainerItem, error) {
		updated, err := tx.UpdateProfile(func(t *Trainer) error {
			idx := t.FindItem(itemID)
			if idx < 0 {
				return itemNotFound(itemID)
			}
			if t.Items[idx].Quantity <= 0 {
				return domain.OutOfStockError{ItemID: itemID, Name: t.Items[idx].Name}
			}
			t.Items[idx].Quantity--
			return nil
		})
		return updated.Items, err
	}, nil)
}

// RemoveItem deletes itemID from the inventory.
func (s *Service) RemoveItem(ctx context.Context, itemID int) ([]TrainerItem, Result, error) {
	return mutate(ctx, s, opRemoveItem, strconv.Itoa(itemID), func(tx Transaction) ([]TrainerItem, error) {
		updated, err := tx.UpdateProfile(func(t *Trainer) error {
			idx := t.FindItem(itemID)
			if idx < 0 {
				return itemNotFound(itemID)
			}
			t.Items = append(t.Items[:idx], t.Items[idx+1:]...)
			return nil
		})
		return updated.Items, err
	}, nil)
}

// AddItem appends item with the next free id (max+1, or 1 for an empty
// inventory). Names are not checked for duplicates.
func (s *Service) AddItem(ctx context.Context, item NewItem) ([]TrainerItem, Result, error) {
	var assigned int
	items, res, err := mutate(ctx, s, opAddItem, item.Name, func(tx Transaction) ([]TrainerItem, error) {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		updated, err := tx.UpdateProfile(func(t *Trainer) error {
			assigned = t.NextItemID()
			t.Items = append(t.Items, item.WithID(assigned))
			return nil
		})
		return updated.Items, err
	}, func([]TrainerItem) string { return strconv.Itoa(assigned) })
	return items, res, err
}

func itemNotFound(itemID int) error {
	return domain.NotFoundError{Entity: EntityTrainerItem, ID: strconv.Itoa(itemID)}
}

func decrementCaught(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}

func withoutInt(values []int, drop int) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
