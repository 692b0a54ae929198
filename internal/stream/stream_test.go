package stream

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/splitrand/splitmix"
)

func TestForkProducesDistinctStates(t *testing.T) {
	t.Parallel()
	root := splitmix.New(0)
	children, trunk := Fork(root, 8)

	require.Len(t, children, 8)
	assert.NotEqual(t, root, trunk, "trunk should have advanced")

	seen := map[splitmix.State]bool{root: true, trunk: true}
	for i, c := range children {
		assert.False(t, seen[c], "child %d duplicates another state", i)
		seen[c] = true
	}
}

func TestForkIsDeterministic(t *testing.T) {
	t.Parallel()
	a, trunkA := Fork(splitmix.New(9), 4)
	b, trunkB := Fork(splitmix.New(9), 4)
	assert.Equal(t, a, b)
	assert.Equal(t, trunkA, trunkB)
}

func TestRunDrawsExpectedCounts(t *testing.T) {
	t.Parallel()
	const streams, draws = 4, 1000

	var mu sync.Mutex
	counts := make([]int, streams)
	words := make(map[uint64]bool, streams*draws)

	err := Run(context.Background(), splitmix.New(1), streams, draws, func(stream int, word uint64) error {
		mu.Lock()
		counts[stream]++
		words[word] = true
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	for i, n := range counts {
		assert.Equal(t, draws, n, "stream %d draw count", i)
	}
	// Independent streams drawing 64-bit words should essentially never
	// collide in a sample this small.
	assert.Len(t, words, streams*draws, "streams produced overlapping words")
}

func TestRunMatchesSequentialSplits(t *testing.T) {
	t.Parallel()
	root := splitmix.New(5)
	children, _ := Fork(root, 2)

	got := make([][]uint64, 2)
	var mu sync.Mutex
	err := Run(context.Background(), root, 2, 3, func(stream int, word uint64) error {
		mu.Lock()
		got[stream] = append(got[stream], word)
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	for i, child := range children {
		s := child
		for d := 0; d < 3; d++ {
			var want uint64
			want, s = s.Next()
			assert.Equal(t, want, got[i][d], "stream %d draw %d", i, d)
		}
	}
}

func TestRunPropagatesError(t *testing.T) {
	t.Parallel()
	fail := errors.New("bad draw")
	err := Run(context.Background(), splitmix.New(1), 2, 100, func(stream int, word uint64) error {
		if stream == 1 {
			return fail
		}
		return nil
	})
	assert.ErrorIs(t, err, fail)
}

func TestRunHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, splitmix.New(1), 2, 1<<20, func(stream int, word uint64) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectBitBalance(t *testing.T) {
	t.Parallel()
	balances, err := Collect(context.Background(), splitmix.New(0), 3, 4096)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	for i, b := range balances {
		assert.Equal(t, 4096, b.Draws, "stream %d", i)
		_, skew := b.Worst()
		// ~4 sigma at 4096 draws is a skew of about 0.06; allow slack.
		assert.Less(t, skew, 0.1, "stream %d bit skew", i)
	}
}
