package core

import "trainerdex/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	Trainer            = domain.Trainer
	TrainerItem        = domain.TrainerItem
	TrainerUpdate      = domain.TrainerUpdate
	NewTrainer         = domain.NewTrainer
	NewItem            = domain.NewItem
	NewCollection      = domain.NewCollection
	PokemonCollection  = domain.PokemonCollection
	Location           = domain.Location
	Region             = domain.Region
	Snapshot           = domain.Snapshot
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	Rule               = domain.Rule
	RuleView           = domain.RuleView
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
)

const (
	EntityTrainer           = domain.EntityTrainer
	EntityTrainerItem       = domain.EntityTrainerItem
	EntityPokemonCollection = domain.EntityPokemonCollection
	EntityRegion            = domain.EntityRegion
	EntityLocation          = domain.EntityLocation
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine { return domain.NewRulesEngine() }
