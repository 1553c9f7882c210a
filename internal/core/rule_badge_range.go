package core

import (
	"context"
	"fmt"

	"trainerdex/pkg/domain"
)

// NewBadgeRangeRule blocks commits that leave a trainer outside 0..8 badges.
func NewBadgeRangeRule() Rule {
	return badgeRangeRule{}
}

type badgeRangeRule struct{}

func (badgeRangeRule) Name() string { return "badge_range" }

func (badgeRangeRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	res := Result{}
	for _, t := range touchedTrainers(view, changes) {
		if t.Badges < 0 || t.Badges > domain.MaxBadges {
			res.Violations = append(res.Violations, Violation{
				Rule:     "badge_range",
				Severity: SeverityBlock,
				Message:  fmt.Sprintf("trainer %s (%s) has %d badges, allowed 0-%d", t.Name, t.ID, t.Badges, domain.MaxBadges),
				Entity:   EntityTrainer,
				EntityID: t.ID,
			})
		}
	}
	return res, nil
}
