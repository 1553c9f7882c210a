package core

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	for _, rule := range defaultRules() {
		engine.Register(rule)
	}
	return engine
}

func defaultRules() []Rule {
	return []Rule{
		NewBadgeRangeRule(),
		NewItemQuantityRule(),
		NewCollectionMembershipRule(),
		NewTrainerRegionRule(),
		NewCaughtCountRule(),
	}
}

// allTrainers returns the current trainer followed by the directory.
func allTrainers(view RuleView) []Trainer {
	return append([]Trainer{view.Profile()}, view.ListTrainers()...)
}

// touchedTrainers returns the trainers affected by changes, or every trainer
// when a change does not carry a trainer payload.
func touchedTrainers(view RuleView, changes []Change) []Trainer {
	seen := make(map[string]struct{})
	var out []Trainer
	for _, change := range changes {
		if change.Entity != EntityTrainer || change.Action == ActionDelete {
			continue
		}
		after, ok := change.After.(Trainer)
		if !ok {
			return allTrainers(view)
		}
		if _, dup := seen[after.ID]; dup {
			continue
		}
		seen[after.ID] = struct{}{}
		current := view.Profile()
		if current.ID == after.ID {
			out = append(out, current)
			continue
		}
		if t, found := view.FindTrainer(after.ID); found {
			out = append(out, t)
		}
	}
	return out
}
