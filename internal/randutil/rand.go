// Package randutil centralises how the process derives randomness: a
// deterministic *rand.Rand constructor for anything that takes a seed flag,
// time-based seeding for the cases that don't, and a process-wide default
// generator that hands out independent streams to concurrent callers.
package randutil

import (
	rand "math/rand/v2"
	"sync/atomic"

	"github.com/coder/quartz"

	"github.com/lox/splitrand/splitmix"
)

// New returns a *rand.Rand seeded deterministically from the provided int64
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	return rand.New(splitmix.NewSource(uint64(seed)))
}

// TimeSeed derives a seed from the clock: wall-clock seconds in the high 32
// bits, sub-second nanoseconds in the low 32. The combined word always goes
// through splitmix.New afterwards, so nearby clock readings still yield
// unrelated streams.
func TimeSeed(clk quartz.Clock) uint64 {
	now := clk.Now()
	return uint64(now.Unix())<<32 | uint64(uint32(now.Nanosecond()))
}

var defaultState atomic.Pointer[splitmix.State]

// Default detaches a generator from the process-wide default instance. The
// instance is lazily seeded from the real clock on first use. Each call
// splits the shared state and atomically installs the continuation, so
// concurrent callers always receive disjoint streams.
func Default() splitmix.State {
	for {
		cur := defaultState.Load()
		if cur == nil {
			seeded := splitmix.New(TimeSeed(quartz.NewReal()))
			defaultState.CompareAndSwap(nil, &seeded)
			continue
		}
		cont, child := cur.Split()
		if defaultState.CompareAndSwap(cur, &cont) {
			return child
		}
	}
}

// SetDefault replaces the process-wide default instance, primarily so tests
// and the CLI can pin it to a known seed.
func SetDefault(s splitmix.State) {
	defaultState.Store(&s)
}
