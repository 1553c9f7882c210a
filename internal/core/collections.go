package core

import (
	"context"
	"strconv"

	"trainerdex/pkg/domain"
)

const (
	opFetchPokemonCollections   = "fetch_pokemon_collections"
	opCreatePokemonCollection   = "create_pokemon_collection"
	opAddPokemonToCollection    = "add_pokemon_to_collection"
	opRemoveFromNamedCollection = "remove_pokemon_from_named_collection"
	opRemovePokemonFromAll      = "remove_pokemon_from_collections"
	opDeletePokemonCollection   = "delete_pokemon_collection"
)

func collectionID(c PokemonCollection) string { return c.ID }

func collectionNotFound(id string) error {
	return domain.NotFoundError{Entity: EntityPokemonCollection, ID: id}
}

// FetchPokemonCollections returns the current trainer's named collections.
func (s *Service) FetchPokemonCollections(ctx context.Context) ([]PokemonCollection, error) {
	return read(ctx, s, opFetchPokemonCollections, "", func(view TransactionView) ([]PokemonCollection, error) {
		collections := view.Profile().Collections
		if collections == nil {
			return []PokemonCollection{}, nil
		}
		return collections, nil
	})
}

// CreatePokemonCollection appends a new named collection with a generated id.
func (s *Service) CreatePokemonCollection(ctx context.Context, req NewCollection) (PokemonCollection, Result, error) {
	return mutate(ctx, s, opCreatePokemonCollection, req.Name, func(tx Transaction) (PokemonCollection, error) {
		created := req.WithID(tx.NewCollectionID())
		_, err := tx.UpdateProfile(func(t *Trainer) error {
			t.Collections = append(t.Collections, created)
			return nil
		})
		return created.Clone(), err
	}, collectionID)
}

// AddPokemonToCollection adds pokemonID to the named collection. Adding an
// existing member is a no-op.
func (s *Service) AddPokemonToCollection(ctx context.Context, id string, pokemonID int) (PokemonCollection, Result, error) {
	return mutate(ctx, s, opAddPokemonToCollection, id, func(tx Transaction) (PokemonCollection, error) {
		var out PokemonCollection
		_, err := tx.UpdateProfile(func(t *Trainer) error {
			idx := t.FindCollection(id)
			if idx < 0 {
				return collectionNotFound(id)
			}
			c := &t.Collections[idx]
			if !c.Contains(pokemonID) {
				c.Pokemon = append(c.Pokemon, pokemonID)
			}
			out = c.Clone()
			return nil
		})
		return out, err
	}, collectionID)
}

// RemovePokemonFromNamedCollection drops pokemonID from one named collection
// only. The collected set is left alone.
func (s *Service) RemovePokemonFromNamedCollection(ctx context.Context, id string, pokemonID int) (PokemonCollection, Result, error) {
	return mutate(ctx, s, opRemoveFromNamedCollection, id, func(tx Transaction) (PokemonCollection, error) {
		var out PokemonCollection
		_, err := tx.UpdateProfile(func(t *Trainer) error {
			idx := t.FindCollection(id)
			if idx < 0 {
				return collectionNotFound(id)
			}
			c := &t.Collections[idx]
			c.Pokemon = withoutInt(c.Pokemon, pokemonID)
			out = c.Clone()
			return nil
		})
		return out, err
	}, collectionID)
}

// RemovePokemonFromCollection releases pokemonID: it leaves every named
// collection and the collected set in one step. PokemonCaught drops by one
// when the Pokémon was collected.
func (s *Service) RemovePokemonFromCollection(ctx context.Context, pokemonID int) (Trainer, Result, error) {
	return mutate(ctx, s, opRemovePokemonFromAll, strconv.Itoa(pokemonID), func(tx Transaction) (Trainer, error) {
		return tx.UpdateProfile(func(t *Trainer) error {
			for i := range t.Collections {
				t.Collections[i].Pokemon = withoutInt(t.Collections[i].Pokemon, pokemonID)
			}
			if t.HasPokemon(pokemonID) {
				t.CollectedPokemon = withoutInt(t.CollectedPokemon, pokemonID)
				t.PokemonCaught = decrementCaught(t.PokemonCaught)
			}
			return nil
		})
	}, trainerID)
}

// DeletePokemonCollection removes a named collection. Its Pokémon stay collected.
func (s *Service) DeletePokemonCollection(ctx context.Context, id string) (Result, error) {
	_, res, err := mutate(ctx, s, opDeletePokemonCollection, id, func(tx Transaction) (struct{}, error) {
		_, err := tx.UpdateProfile(func(t *Trainer) error {
			idx := t.FindCollection(id)
			if idx < 0 {
				return collectionNotFound(id)
			}
			t.Collections = append(t.Collections[:idx], t.Collections[idx+1:]...)
			return nil
		})
		return struct{}{}, err
	}, nil)
	return res, err
}
