package splitmix

import rand "math/rand/v2"

// Source adapts a State to math/rand/v2. Unlike State it is mutable: each
// Uint64 call advances the wrapped state in place, which is what the rand
// package expects from a source. A Source must not be shared across
// goroutines without external synchronization.
type Source struct {
	state State
}

// Splitter is the capability a consumer of splittable randomness needs: a
// single signed-word draw plus detaching an independent source. Libraries
// that fan computations out can accept this instead of the concrete type.
type Splitter interface {
	Int64() int64
	Split() *Source
}

// Assert that Source satisfies rand/v2's source contract and the splitting
// capability.
var (
	_ rand.Source = (*Source)(nil)
	_ Splitter    = (*Source)(nil)
)

// NewSource returns a Source seeded via New.
func NewSource(seed uint64) *Source {
	return &Source{state: New(seed)}
}

// FromState wraps an existing State in a Source.
func FromState(s State) *Source {
	return &Source{state: s}
}

// Uint64 returns the next word, advancing the source.
func (s *Source) Uint64() uint64 {
	w, next := s.state.Next()
	s.state = next
	return w
}

// Int64 returns the next word as a signed integer, advancing the source.
func (s *Source) Int64() int64 {
	return int64(s.Uint64())
}

// Split detaches an independent child source. The receiver continues its
// own stream; the child shares no future state with it.
func (s *Source) Split() *Source {
	cont, child := s.state.Split()
	s.state = cont
	return &Source{state: child}
}

// State returns a snapshot of the source's current state, suitable for
// replay with FromState.
func (s *Source) State() State {
	return s.state
}
