package core

import (
	"math/rand/v2"
	"strings"
	"time"

	"trainerdex/internal/config"
)

// Latency decides how long a service call pauses before touching the store.
// The pause emulates a remote backend; it is not cancellable.
type Latency interface {
	Delay() time.Duration
}

// NoLatency never pauses.
type NoLatency struct{}

// Delay implements Latency.
func (NoLatency) Delay() time.Duration { return 0 }

// FixedLatency pauses for the same duration on every call.
type FixedLatency time.Duration

// Delay implements Latency.
func (f FixedLatency) Delay() time.Duration {
	if f < 0 {
		return 0
	}
	return time.Duration(f)
}

type randomLatency struct {
	min, max time.Duration
}

// RandomLatency pauses for a uniformly distributed duration in [min, max].
// Swapped bounds are reordered.
func RandomLatency(minDelay, maxDelay time.Duration) Latency {
	if maxDelay < minDelay {
		minDelay, maxDelay = maxDelay, minDelay
	}
	if minDelay < 0 {
		minDelay = 0
	}
	return randomLatency{min: minDelay, max: maxDelay}
}

func (r randomLatency) Delay() time.Duration {
	if r.max <= r.min {
		return r.min
	}
	return r.min + rand.N(r.max-r.min+1)
}

// NewLatency maps the latency section of the config onto a strategy. Unknown
// modes behave like "none".
func NewLatency(cfg config.LatencyConfig) Latency {
	switch strings.ToLower(cfg.Mode) {
	case "fixed":
		return FixedLatency(cfg.Min)
	case "random":
		return RandomLatency(cfg.Min, cfg.Max)
	default:
		return NoLatency{}
	}
}

func wait(l Latency) {
	if l == nil {
		return
	}
	if d := l.Delay(); d > 0 {
		time.Sleep(d)
	}
}
