package core

import (
	"context"
	"fmt"
)

// NewCollectionMembershipRule keeps the collected set and every named
// collection free of duplicate Pokémon ids, and collection ids unique.
func NewCollectionMembershipRule() Rule {
	return collectionMembershipRule{}
}

type collectionMembershipRule struct{}

func (collectionMembershipRule) Name() string { return "collection_membership" }

func (collectionMembershipRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	res := Result{}
	block := func(entity EntityType, id, msg string) {
		res.Violations = append(res.Violations, Violation{
			Rule:     "collection_membership",
			Severity: SeverityBlock,
			Message:  msg,
			Entity:   entity,
			EntityID: id,
		})
	}
	for _, t := range touchedTrainers(view, changes) {
		if dup, ok := firstDuplicate(t.CollectedPokemon); ok {
			block(EntityTrainer, t.ID, fmt.Sprintf("trainer %s collected pokemon %d twice", t.ID, dup))
		}
		collectionIDs := make(map[string]struct{}, len(t.Collections))
		for _, c := range t.Collections {
			if _, seen := collectionIDs[c.ID]; seen {
				block(EntityPokemonCollection, c.ID, fmt.Sprintf("trainer %s has two collections with id %s", t.ID, c.ID))
			}
			collectionIDs[c.ID] = struct{}{}
			if dup, ok := firstDuplicate(c.Pokemon); ok {
				block(EntityPokemonCollection, c.ID, fmt.Sprintf("collection %s (%s) lists pokemon %d twice", c.Name, c.ID, dup))
			}
		}
	}
	return res, nil
}

func firstDuplicate(values []int) (int, bool) {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return 0, false
}
