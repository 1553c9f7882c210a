package core

import (
	"context"
	"fmt"

	"trainerdex/pkg/domain"
)

// NewTrainerRegionRule blocks directory trainers whose region is not in
// ValidRegions. The current trainer's profile is free-form.
func NewTrainerRegionRule() Rule {
	return trainerRegionRule{}
}

type trainerRegionRule struct{}

func (trainerRegionRule) Name() string { return "trainer_region" }

func (trainerRegionRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	res := Result{}
	profileID := view.Profile().ID
	for _, t := range touchedTrainers(view, changes) {
		if t.ID == profileID {
			continue
		}
		if err := domain.CheckRegion(t.Region); err != nil {
			res.Violations = append(res.Violations, Violation{
				Rule:     "trainer_region",
				Severity: SeverityBlock,
				Message:  fmt.Sprintf("trainer %s: %v", t.ID, err),
				Entity:   EntityTrainer,
				EntityID: t.ID,
			})
		}
	}
	return res, nil
}
