package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trainerdex/internal/infra/persistence/memory"
	"trainerdex/internal/seed"
)

// Service exposes the trainer, directory and map operations over a PersistentStore.
// Every call pauses for the configured latency, then runs atomically against the store.
type Service struct {
	store   PersistentStore
	logger  *zap.Logger
	clock   Clock
	latency Latency
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for operation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for timing and audit timestamps.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLatency sets the artificial delay applied before every operation.
func WithLatency(latency Latency) Option {
	return func(s *Service) {
		if latency != nil {
			s.latency = latency
		}
	}
}

// WithMetricsRecorder installs a metrics sink.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithAuditRecorder installs an audit sink for mutating operations.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// NewService constructs a service backed by the supplied store. The store is
// used as is; callers seed it beforehand.
func NewService(store PersistentStore, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		logger:  zap.NewNop(),
		latency: NoLatency{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		audit:   noopAudit{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.clock == nil {
		svc.clock = storeClock(store)
	}
	return svc
}

// NewInMemoryService creates a memory store loaded with the embedded seed.
func NewInMemoryService(engine *RulesEngine, opts ...Option) (*Service, error) {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	store := memory.NewStore(engine)
	if err := SeedStore(store); err != nil {
		return nil, err
	}
	return NewService(store, opts...), nil
}

// SeedStore replaces the store contents with the embedded seed.
func SeedStore(store PersistentStore) error {
	snap, err := seed.Load()
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	store.ImportState(snap)
	return nil
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

func storeClock(store PersistentStore) Clock {
	type nowFuncer interface{ NowFunc() func() time.Time }
	if nf, ok := store.(nowFuncer); ok {
		if fn := nf.NowFunc(); fn != nil {
			return ClockFunc(fn)
		}
	}
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}

// run applies latency, tracing, metrics, logging and auditing around fn.
// entityID extracts the audited id from a successful result and may be nil.
func run[T any](ctx context.Context, s *Service, op string, subject string, fn func(context.Context) (T, error), entityID func(T) string) (T, error) {
	wait(s.latency)
	start := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, op)
	out, err := fn(ctx)
	span.End(err)
	duration := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, op, err == nil, duration)

	if err != nil {
		s.logger.Warn("operation failed",
			zap.String("operation", op),
			zap.String("subject", subject),
			zap.Duration("duration", duration),
			zap.Error(err))
		s.recordAudit(ctx, op, subject, duration, err)
		return out, err
	}
	id := subject
	if entityID != nil {
		id = entityID(out)
	}
	s.logger.Debug("operation completed",
		zap.String("operation", op),
		zap.String("subject", id),
		zap.Duration("duration", duration))
	s.recordAuditSuccess(ctx, op, id, duration)
	return out, nil
}

func (s *Service) recordAuditSuccess(ctx context.Context, op, entityID string, duration time.Duration) {
	s.recordAudit(ctx, op, entityID, duration, nil)
}

func (s *Service) recordAudit(ctx context.Context, op, entityID string, duration time.Duration, err error) {
	meta, ok := auditedOperations[op]
	if !ok {
		return
	}
	entry := AuditEntry{
		Operation: op,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    AuditStatusSuccess,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	}
	if err != nil {
		entry.Status = AuditStatusError
		entry.Error = err.Error()
	}
	s.audit.Record(ctx, entry)
}

// mutation is the value threaded through run for write operations.
type mutation[T any] struct {
	value  T
	result Result
}

// mutate runs fn inside a store transaction and instruments it as op.
func mutate[T any](ctx context.Context, s *Service, op, subject string, fn func(Transaction) (T, error), entityID func(T) string) (T, Result, error) {
	out, err := run(ctx, s, op, subject, func(ctx context.Context) (mutation[T], error) {
		var value T
		res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
			var err error
			value, err = fn(tx)
			return err
		})
		return mutation[T]{value: value, result: res}, err
	}, func(m mutation[T]) string {
		if entityID == nil {
			return subject
		}
		return entityID(m.value)
	})
	if err != nil {
		var zero T
		return zero, out.result, err
	}
	return out.value, out.result, nil
}

// read runs fn against a read-only view and instruments it as op.
func read[T any](ctx context.Context, s *Service, op, subject string, fn func(TransactionView) (T, error)) (T, error) {
	return run(ctx, s, op, subject, func(ctx context.Context) (T, error) {
		var value T
		err := s.store.View(ctx, func(view TransactionView) error {
			var err error
			value, err = fn(view)
			return err
		})
		return value, err
	}, nil)
}
