// Package stream fans a splittable generator out across goroutines. Each
// worker owns an independent child state derived by splitting the root, so
// no locking is needed and every stream is reproducible from the root seed.
package stream

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/splitrand/splitmix"
	"github.com/lox/splitrand/internal/statistics"
)

// Fork derives n independent generators from root by repeated splitting.
// It returns the children and the advanced trunk, which remains usable for
// further draws or forks.
func Fork(root splitmix.State, n int) ([]splitmix.State, splitmix.State) {
	children := make([]splitmix.State, n)
	for i := range children {
		root, children[i] = root.Split()
	}
	return children, root
}

// Run draws the given number of words from each of several independent
// streams concurrently. fn is invoked once per word with the stream index;
// invocations within a stream are in order on a single goroutine, so fn only
// needs to be safe across distinct stream indexes. The first error from fn
// cancels the remaining streams.
func Run(ctx context.Context, root splitmix.State, streams, draws int, fn func(stream int, word uint64) error) error {
	children, _ := Fork(root, streams)
	g, ctx := errgroup.WithContext(ctx)
	for i, child := range children {
		g.Go(func() error {
			s := child
			for d := 0; d < draws; d++ {
				if d&1023 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				var w uint64
				w, s = s.Next()
				if err := fn(i, w); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Collect runs the streams and returns a per-stream bit balance, for
// checking that split siblings stay independently well distributed.
func Collect(ctx context.Context, root splitmix.State, streams, draws int) ([]statistics.BitBalance, error) {
	balances := make([]statistics.BitBalance, streams)
	err := Run(ctx, root, streams, draws, func(stream int, word uint64) error {
		balances[stream].Add(word)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}
