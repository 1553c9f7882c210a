package core

import (
	"context"
	"fmt"
)

// NewCaughtCountRule warns when PokemonCaught falls below the size of the
// collected set. The commit still goes through.
func NewCaughtCountRule() Rule {
	return caughtCountRule{}
}

type caughtCountRule struct{}

func (caughtCountRule) Name() string { return "caught_count" }

func (caughtCountRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	res := Result{}
	for _, t := range touchedTrainers(view, changes) {
		if t.PokemonCaught < len(t.CollectedPokemon) {
			res.Violations = append(res.Violations, Violation{
				Rule:     "caught_count",
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("trainer %s reports %d caught but has collected %d", t.ID, t.PokemonCaught, len(t.CollectedPokemon)),
				Entity:   EntityTrainer,
				EntityID: t.ID,
			})
		}
	}
	return res, nil
}
