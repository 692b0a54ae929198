// Package splitmix implements a splittable pseudorandom number generator.
//
// A generator is an immutable State value holding a 64-bit accumulator and an
// odd 64-bit stride ("gamma"). Every draw returns the output word together
// with the successor state; Split derives two statistically independent
// generators from one without any communication. This makes the generator
// safe to fan out across a tree of parallel computations while keeping every
// stream reproducible from its root seed.
//
// The mixing functions and their constants follow the published
// SplittableRandom algorithm and are a fixed bit-exact contract. The output
// is not cryptographically secure.
package splitmix

import "math/bits"

// GoldenGamma is the odd integer closest to 2^64 divided by the golden
// ratio. It is the default stride used when deriving a State from a plain
// seed, chosen for good equidistribution across many splits.
const GoldenGamma = 0x9e3779b97f4a7c15

// State is an immutable generator value. Operations never mutate a State;
// they return the successor. Copies are cheap and a State may be shared
// read-only across goroutines without synchronization.
//
// The zero State is not a valid generator; use New or SeedWith.
type State struct {
	seed  uint64
	gamma uint64
}

// New derives a State from a 64-bit seed. Both the accumulator and the
// stride are mixed from the seed, so nearby seeds produce unrelated streams.
// This is the preferred constructor.
func New(seed uint64) State {
	return State{
		seed:  mix64(seed),
		gamma: mixGamma(seed + GoldenGamma),
	}
}

// SeedWith builds a State directly from a seed and gamma pair. The low bit
// of gamma is forced on; no other adjustment is made. Intended for replaying
// a previously observed state, not for deriving fresh generators.
func SeedWith(seed, gamma uint64) State {
	return State{seed: seed, gamma: gamma | 1}
}

// Next returns the next pseudorandom word and the successor state. Calling
// Next twice on the same State returns the same pair both times; feed the
// returned State back in to advance the sequence.
func (s State) Next() (uint64, State) {
	next := State{seed: s.seed + s.gamma, gamma: s.gamma}
	return mix64(next.seed), next
}

// NextInt64 returns the next word reinterpreted as a signed integer.
// Outputs are uniform over the full int64 range, negatives included.
func (s State) NextInt64() (int64, State) {
	w, next := s.Next()
	return int64(w), next
}

// NextFloat64 returns a float64 uniformly distributed over the 2^53
// representable values in [0, 1). It never returns 1.0.
func (s State) NextFloat64() (float64, State) {
	w, next := s.Next()
	return float64(w>>11) * 0x1.0p-53, next
}

// Split derives two independent generators from s. The first continues the
// original stream with the same gamma, advanced by two strides; the second
// is a child with a freshly mixed seed and gamma. Neither equals s, and the
// output sequences of the two results are uncorrelated with each other and
// with children of any other split.
func (s State) Split() (State, State) {
	s1 := s.seed + s.gamma
	s2 := s1 + s.gamma
	cont := State{seed: s2, gamma: s.gamma}
	child := State{seed: mix64(s1), gamma: mixGamma(s2)}
	return cont, child
}

// mix64 is the MurmurHash3 fmix64 finalizer, a bijection over 64-bit words
// with full avalanche. It turns the raw accumulator into the output word.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 33)) * 0xff51afd7ed558ccd
	z = (z ^ (z >> 33)) * 0xc4ceb9fe1a85ec53
	return z ^ (z >> 33)
}

// mix64variant13 is Stafford's variant 13 of the fmix64 finalizer, also a
// bijection. Used only to derive gammas.
func mix64variant13(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// mixGamma derives an odd stride from z. Candidates whose bit pattern has 24
// or more 01/10 transitions are repaired by XOR with the alternating mask,
// which keeps the low bit set. The threshold and mask are reference
// constants of the algorithm.
func mixGamma(z uint64) uint64 {
	g := mix64variant13(z) | 1
	if bits.OnesCount64(g^(g>>1)) >= 24 {
		g ^= 0xaaaaaaaaaaaaaaaa
	}
	return g
}
