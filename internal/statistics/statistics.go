// Package statistics accumulates quality measurements over generator output:
// summary statistics of uniform draws, per-bit balance of raw words, and
// duplicate detection over mixed samples.
package statistics

import (
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// DrawStats tracks summary statistics for a stream of float64 draws in [0, 1)
type DrawStats struct {
	Draws  int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
	Min    float64
	Max    float64
}

// Add incorporates a new draw into the statistics
func (s *DrawStats) Add(v float64) {
	if s.Draws == 0 || v < s.Min {
		s.Min = v
	}
	if s.Draws == 0 || v > s.Max {
		s.Max = v
	}
	s.Draws++
	s.Sum += v
	s.Sum2 += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean of all draws
func (s *DrawStats) Mean() float64 {
	if s.Draws == 0 {
		return 0
	}
	return s.Sum / float64(s.Draws)
}

// Variance returns the sample variance of all draws
func (s *DrawStats) Variance() float64 {
	if s.Draws < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Draws)*mean*mean) / float64(s.Draws-1)
}

// StdDev returns the sample standard deviation of all draws
func (s *DrawStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *DrawStats) StdError() float64 {
	if s.Draws == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Draws))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *DrawStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	se := s.StdError()
	margin := 1.96 * se // 95% confidence
	return mean - margin, mean + margin
}

// Median returns the median value of all draws
func (s *DrawStats) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *DrawStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the accumulated data
func (s *DrawStats) Validate() error {
	if s.Draws <= 0 {
		return fmt.Errorf("invalid draw count: %d", s.Draws)
	}
	if len(s.Values) != s.Draws {
		return fmt.Errorf("values array length (%d) does not match draw count (%d)",
			len(s.Values), s.Draws)
	}
	if s.Min < 0 || s.Max >= 1 {
		return fmt.Errorf("draws outside [0, 1): min=%v max=%v", s.Min, s.Max)
	}
	return nil
}

// BitBalance counts how often each of the 64 bit positions is set across a
// stream of raw output words. A healthy generator keeps every position close
// to half.
type BitBalance struct {
	Draws int
	Ones  [64]int
}

// Add incorporates a raw output word
func (b *BitBalance) Add(w uint64) {
	b.Draws++
	for w != 0 {
		i := bits.TrailingZeros64(w)
		b.Ones[i]++
		w &= w - 1
	}
}

// Skew returns how far a bit position deviates from the expected half, as a
// fraction of the draw count (0 is perfect balance, 1 is total skew).
func (b *BitBalance) Skew(bit int) float64 {
	if b.Draws == 0 {
		return 0
	}
	return math.Abs(float64(b.Ones[bit])/float64(b.Draws)-0.5) * 2
}

// Worst returns the most skewed bit position and its skew
func (b *BitBalance) Worst() (int, float64) {
	worst, max := 0, 0.0
	for i := 0; i < 64; i++ {
		if s := b.Skew(i); s > max {
			worst, max = i, s
		}
	}
	return worst, max
}

// Chi2 returns the chi-squared statistic of the per-bit one counts against
// the uniform expectation (63 degrees of freedom).
func (b *BitBalance) Chi2() float64 {
	if b.Draws == 0 {
		return 0
	}
	expected := float64(b.Draws) / 2
	var chi2 float64
	for i := 0; i < 64; i++ {
		d := float64(b.Ones[i]) - expected
		chi2 += d * d / expected
	}
	return chi2
}

// CollisionCounter detects duplicate words in a sample. The mixing functions
// are bijections, so distinct inputs must never collide.
type CollisionCounter struct {
	seen       map[uint64]struct{}
	Samples    int
	Collisions int
}

// NewCollisionCounter pre-sizes the counter for the expected sample count
func NewCollisionCounter(expected int) *CollisionCounter {
	return &CollisionCounter{seen: make(map[uint64]struct{}, expected)}
}

// Add records a word, returning true if it was seen before
func (c *CollisionCounter) Add(w uint64) bool {
	c.Samples++
	if _, dup := c.seen[w]; dup {
		c.Collisions++
		return true
	}
	c.seen[w] = struct{}{}
	return false
}
