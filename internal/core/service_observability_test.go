package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"trainerdex/internal/core"
)

func TestServiceAuditsMutationsOnly(t *testing.T) {
	audit := &recordingAudit{}
	clock := &steppingClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := newService(t, core.WithAuditRecorder(audit), core.WithClock(clock))
	ctx := context.Background()

	if _, err := svc.FetchTrainerProfile(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, _, err := svc.UseItem(ctx, 1); err != nil {
		t.Fatalf("use item: %v", err)
	}
	if _, err := svc.DeleteTrainer(ctx, "ghost-id"); err == nil {
		t.Fatalf("expected delete to fail")
	}
	if _, _, err := svc.AddItem(ctx, core.NewItem{Name: "Lure", Category: "key", Quantity: 1}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	entries := audit.snapshot()
	if len(entries) != 3 {
		t.Fatalf("expected 3 audit entries, got %+v", entries)
	}
	use := entries[0]
	if use.Operation != "use_item" || use.Entity != core.EntityTrainerItem || use.Action != core.ActionUpdate ||
		use.EntityID != "1" || use.Status != core.AuditStatusSuccess {
		t.Fatalf("unexpected use_item entry %+v", use)
	}
	if use.Duration <= 0 || use.Timestamp.IsZero() {
		t.Fatalf("expected timing on audit entry, got %+v", use)
	}
	del := entries[1]
	if del.Operation != "delete_trainer" || del.Status != core.AuditStatusError || del.EntityID != "ghost-id" || del.Error == "" {
		t.Fatalf("unexpected delete entry %+v", del)
	}
	add := entries[2]
	if add.Action != core.ActionCreate || add.EntityID != "10" {
		t.Fatalf("add_item should audit the assigned id, got %+v", add)
	}
}

func TestServiceMetricsAndTracing(t *testing.T) {
	metrics := &recordingMetrics{}
	tracer := &recordingTracer{}
	svc := newService(t, core.WithMetricsRecorder(metrics), core.WithTracer(tracer))
	ctx := context.Background()

	if _, err := svc.FetchOtherTrainers(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := svc.FetchLocationsByRegion(ctx, "orre"); err == nil {
		t.Fatalf("expected not found")
	}

	if len(metrics.seen) != 2 {
		t.Fatalf("expected two observations, got %+v", metrics.seen)
	}
	if metrics.seen[0] != (observation{"fetch_other_trainers", true}) {
		t.Fatalf("unexpected first observation %+v", metrics.seen[0])
	}
	if metrics.seen[1] != (observation{"fetch_locations_by_region", false}) {
		t.Fatalf("unexpected second observation %+v", metrics.seen[1])
	}
	if len(tracer.spans) != 2 || tracer.errs[0] != nil || tracer.errs[1] == nil {
		t.Fatalf("unexpected spans %v errs %v", tracer.spans, tracer.errs)
	}
}

func TestServiceLogsFailuresAtWarn(t *testing.T) {
	logCore, logs := observer.New(zapcore.DebugLevel)
	svc := newService(t, core.WithLogger(zap.New(logCore)))
	ctx := context.Background()

	if _, err := svc.FetchTrainerProfile(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, _, err := svc.UseItem(ctx, 404); err == nil {
		t.Fatalf("expected failure")
	}
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 {
		t.Fatalf("expected one warning, got %d", len(warns))
	}
	fields := warns[0].ContextMap()
	if fields["operation"] != "use_item" || fields["subject"] != "404" {
		t.Fatalf("unexpected warning fields %+v", fields)
	}
	if logs.FilterMessage("operation completed").Len() != 1 {
		t.Fatalf("expected one debug completion entry")
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg, "trainerdex")
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	svc := newService(t, core.WithMetricsRecorder(rec))
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, _, err := svc.UseItem(ctx, 1); err != nil {
			t.Fatalf("use item: %v", err)
		}
	}
	if _, _, err := svc.UseItem(ctx, 404); err == nil {
		t.Fatalf("expected failure")
	}

	expected := `
# HELP trainerdex_service_operations_total Service operations by name and outcome.
# TYPE trainerdex_service_operations_total counter
trainerdex_service_operations_total{operation="use_item",status="error"} 1
trainerdex_service_operations_total{operation="use_item",status="success"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "trainerdex_service_operations_total"); err != nil {
		t.Fatalf("unexpected counters: %v", err)
	}
	if n, err := testutil.GatherAndCount(reg, "trainerdex_service_operation_duration_seconds"); err != nil || n != 1 {
		t.Fatalf("expected one histogram series, got %d (%v)", n, err)
	}

	if _, err := core.NewPrometheusMetricsRecorder(reg, "trainerdex"); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestLogTracerAndAuditRecorder(t *testing.T) {
	logCore, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(logCore)
	tracer := core.NewLogTracer(logger)
	audit := core.NewLogAuditRecorder(logger)
	svc := newService(t, core.WithTracer(tracer), core.WithAuditRecorder(audit))
	ctx := context.Background()

	if _, _, err := svc.AddPokemonToTrainer(ctx, 150); err != nil {
		t.Fatalf("add pokemon: %v", err)
	}
	if _, err := svc.DeleteTrainer(ctx, "ghost-id"); err == nil {
		t.Fatalf("expected failure")
	}

	spans := entriesFrom(logs, "trace")
	if len(spans) != 2 {
		t.Fatalf("expected two spans, got %d", len(spans))
	}
	if spans[0].Level != zapcore.DebugLevel || spans[1].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected span levels %v, %v", spans[0].Level, spans[1].Level)
	}
	audits := entriesFrom(logs, "audit")
	if len(audits) != 2 {
		t.Fatalf("expected two audit lines, got %d", len(audits))
	}
	first := audits[0].ContextMap()
	if first["operation"] != "add_pokemon_to_trainer" || first["entity_id"] != "trainer-001" || first["status"] != "success" {
		t.Fatalf("unexpected audit fields %+v", first)
	}
	second := audits[1].ContextMap()
	if second["status"] != "error" || second["error"] == nil {
		t.Fatalf("expected failed audit with error, got %+v", second)
	}
}

func TestLogTracerToleratesNilLogger(t *testing.T) {
	_, span := core.NewLogTracer(nil).Start(context.Background(), "noop")
	span.End(errors.New("ignored"))
	core.NewLogAuditRecorder(nil).Record(context.Background(), core.AuditEntry{Operation: "noop"})
}

func entriesFrom(logs *observer.ObservedLogs, name string) []observer.LoggedEntry {
	return logs.Filter(func(e observer.LoggedEntry) bool { return e.LoggerName == name }).All()
}
