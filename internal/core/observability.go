package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Clock supplies timestamps for audit entries and operation timing.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// MetricsRecorder observes the outcome of every service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens a span around a service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is closed with the operation error, nil on success.
type TraceSpan interface {
	End(err error)
}

// AuditStatus is the outcome recorded for a mutating operation.
type AuditStatus string

// Audit outcomes.
const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutating service call.
type AuditEntry struct {
	Operation string
	Entity    EntityType
	Action    Action
	EntityID  string
	Status    AuditStatus
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// AuditRecorder receives an entry for every mutating operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type operationMetadata struct {
	entity EntityType
	action Action
}

// auditedOperations lists the mutating operations; reads are never audited.
var auditedOperations = map[string]operationMetadata{
	opUpdateTrainerProfile:      {EntityTrainer, ActionUpdate},
	opUpdateTrainerName:         {EntityTrainer, ActionUpdate},
	opAddPokemonToTrainer:       {EntityTrainer, ActionUpdate},
	opRemovePokemonFromTrainer:  {EntityTrainer, ActionUpdate},
	opUseItem:                   {EntityTrainerItem, ActionUpdate},
	opRemoveItem:                {EntityTrainerItem, ActionDelete},
	opAddItem:                   {EntityTrainerItem, ActionCreate},
	opCreatePokemonCollection:   {EntityPokemonCollection, ActionCreate},
	opAddPokemonToCollection:    {EntityPokemonCollection, ActionUpdate},
	opRemoveFromNamedCollection: {EntityPokemonCollection, ActionUpdate},
	opRemovePokemonFromAll:      {EntityTrainer, ActionUpdate},
	opDeletePokemonCollection:   {EntityPokemonCollection, ActionDelete},
	opInsertTrainer:             {EntityTrainer, ActionCreate},
	opUpdateTrainer:             {EntityTrainer, ActionUpdate},
	opDeleteTrainer:             {EntityTrainer, ActionDelete},
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

type noopAudit struct{}

func (noopAudit) Record(context.Context, AuditEntry) {}

// LogAuditRecorder writes audit entries to a zap logger at Info level.
type LogAuditRecorder struct {
	logger *zap.Logger
}

// NewLogAuditRecorder builds an AuditRecorder over logger.
func NewLogAuditRecorder(logger *zap.Logger) *LogAuditRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogAuditRecorder{logger: logger.Named("audit")}
}

// Record implements AuditRecorder.
func (r *LogAuditRecorder) Record(_ context.Context, entry AuditEntry) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("entity", string(entry.Entity)),
		zap.String("action", string(entry.Action)),
		zap.String("entity_id", entry.EntityID),
		zap.String("status", string(entry.Status)),
		zap.Duration("duration", entry.Duration),
		zap.Time("timestamp", entry.Timestamp),
	}
	if entry.Error != "" {
		fields = append(fields, zap.String("error", entry.Error))
	}
	r.logger.Info("audit", fields...)
}
