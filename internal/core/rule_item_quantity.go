package core

import (
	"context"
	"fmt"
)

// NewItemQuantityRule blocks negative quantities, unknown categories and
// duplicate item ids within one inventory.
func NewItemQuantityRule() Rule {
	return itemQuantityRule{}
}

type itemQuantityRule struct{}

func (itemQuantityRule) Name() string { return "item_quantity" }

func (itemQuantityRule) Evaluate(_ context.Context, view RuleView, changes []Change) (Result, error) {
	res := Result{}
	block := func(t Trainer, msg string) {
		res.Violations = append(res.Violations, Violation{
			Rule:     "item_quantity",
			Severity: SeverityBlock,
			Message:  msg,
			Entity:   EntityTrainerItem,
			EntityID: t.ID,
		})
	}
	for _, t := range touchedTrainers(view, changes) {
		ids := make(map[int]struct{}, len(t.Items))
		for _, item := range t.Items {
			if _, dup := ids[item.ID]; dup {
				block(t, fmt.Sprintf("trainer %s holds item id %d twice", t.ID, item.ID))
			}
			ids[item.ID] = struct{}{}
			if item.Quantity < 0 {
				block(t, fmt.Sprintf("trainer %s item %d (%s) has negative quantity %d", t.ID, item.ID, item.Name, item.Quantity))
			}
			if !item.Category.Valid() {
				block(t, fmt.Sprintf("trainer %s item %d (%s) has unknown category %q", t.ID, item.ID, item.Name, item.Category))
			}
		}
	}
	return res, nil
}
