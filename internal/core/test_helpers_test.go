package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"trainerdex/internal/core"
)

func newService(t *testing.T, opts ...core.Option) *core.Service {
	t.Helper()
	svc, err := core.NewInMemoryService(nil, opts...)
	if err != nil {
		t.Fatalf("new in-memory service: %v", err)
	}
	return svc
}

func itemQuantity(items []core.TrainerItem, id int) (int, bool) {
	for _, item := range items {
		if item.ID == id {
			return item.Quantity, true
		}
	}
	return 0, false
}

func containsID(values []int, id int) bool {
	for _, v := range values {
		if v == id {
			return true
		}
	}
	return false
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func (r *recordingAudit) Record(_ context.Context, entry core.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAudit) snapshot() []core.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.AuditEntry(nil), r.entries...)
}

type observation struct {
	operation string
	success   bool
}

type recordingMetrics struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingMetrics) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{operation, success})
}

type recordingTracer struct {
	mu    sync.Mutex
	spans []string
	errs  []error
}

func (r *recordingTracer) Start(ctx context.Context, operation string) (context.Context, core.TraceSpan) {
	r.mu.Lock()
	r.spans = append(r.spans, operation)
	r.mu.Unlock()
	return ctx, recordingSpan{tracer: r}
}

type recordingSpan struct{ tracer *recordingTracer }

func (s recordingSpan) End(err error) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.errs = append(s.tracer.errs, err)
}

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}
