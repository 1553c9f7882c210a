// Package seed holds the mock data every store starts from.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"trainerdex/pkg/domain"
)

//go:embed seed.yaml
var seedYAML []byte

// Raw returns the embedded seed document.
func Raw() []byte {
	return append([]byte(nil), seedYAML...)
}

// Load parses and validates the embedded seed.
func Load() (domain.Snapshot, error) {
	return Parse(seedYAML)
}

// Parse decodes a seed document and validates it.
func Parse(raw []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := Validate(snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// Validate reports every record in snap that breaks a store invariant.
func Validate(snap domain.Snapshot) error {
	var errs []error
	errs = append(errs, validateTrainer(snap.Trainer)...)

	trainerIDs := map[string]struct{}{snap.Trainer.ID: {}}
	for _, t := range snap.OtherTrainers {
		if _, dup := trainerIDs[t.ID]; dup {
			errs = append(errs, fmt.Errorf("trainer %s: duplicate id", t.ID))
		}
		trainerIDs[t.ID] = struct{}{}
		errs = append(errs, validateTrainer(t)...)
	}

	locationIDs := make(map[string]struct{})
	for _, r := range snap.Regions {
		if err := domain.CheckRegion(r.Name); err != nil {
			errs = append(errs, fmt.Errorf("region %s: %w", r.ID, err))
		}
		for _, loc := range r.Locations {
			if _, dup := locationIDs[loc.ID]; dup {
				errs = append(errs, fmt.Errorf("location %s: duplicate id", loc.ID))
			}
			locationIDs[loc.ID] = struct{}{}
			if !strings.EqualFold(loc.Region, r.Name) {
				errs = append(errs, fmt.Errorf("location %s: region %q does not match owner %q", loc.ID, loc.Region, r.Name))
			}
			for _, enc := range loc.PokemonEncounters {
				if !enc.Rarity.Valid() {
					errs = append(errs, fmt.Errorf("location %s: pokemon %d has unknown rarity %q", loc.ID, enc.PokemonID, enc.Rarity))
				}
				if enc.EncounterRate < 0 || enc.EncounterRate > 100 {
					errs = append(errs, fmt.Errorf("location %s: pokemon %d encounter rate %.1f out of range", loc.ID, enc.PokemonID, enc.EncounterRate))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func validateTrainer(t domain.Trainer) []error {
	var errs []error
	wrap := func(err error) { errs = append(errs, fmt.Errorf("trainer %s: %w", t.ID, err)) }

	if t.ID == "" {
		errs = append(errs, fmt.Errorf("trainer %q: missing id", t.Name))
	}
	if t.JoinDate.IsZero() {
		wrap(errors.New("missing join date"))
	}
	if err := domain.CheckRegion(t.Region); err != nil {
		wrap(err)
	}
	if t.Badges < 0 || t.Badges > domain.MaxBadges {
		wrap(domain.ValidationError{Field: "badges", Value: t.Badges, Reason: "must be between 0 and 8"})
	}
	if t.FavoriteType != "" && !domain.IsPokemonType(t.FavoriteType) {
		wrap(domain.ValidationError{Field: "favoriteType", Value: t.FavoriteType, Reason: "unknown pokemon type"})
	}
	seenPokemon := make(map[int]struct{}, len(t.CollectedPokemon))
	for _, id := range t.CollectedPokemon {
		if _, dup := seenPokemon[id]; dup {
			wrap(fmt.Errorf("pokemon %d collected twice", id))
		}
		seenPokemon[id] = struct{}{}
	}
	seenItems := make(map[int]struct{}, len(t.Items))
	for _, item := range t.Items {
		if _, dup := seenItems[item.ID]; dup {
			wrap(fmt.Errorf("item %d: duplicate id", item.ID))
		}
		seenItems[item.ID] = struct{}{}
		if !item.Category.Valid() {
			wrap(domain.ValidationError{Field: "category", Value: item.Category, Reason: "unknown item category"})
		}
		if item.Quantity < 0 {
			wrap(domain.ValidationError{Field: "quantity", Value: item.Quantity, Reason: "must not be negative"})
		}
	}
	return errs
}
