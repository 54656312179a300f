package match

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunBatch runs independent matches with at most workers in flight.
// Results keep the order of specs. The first failure cancels the matches
// still running; they finish with EndReasonCancelled.
func RunBatch(ctx context.Context, specs []Spec, workers int, opts ...Option) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			m, err := New(spec, opts...)
			if err != nil {
				return fmt.Errorf("match: batch #%d: %w", i, err)
			}
			r, err := m.Run(ctx)
			results[i] = r
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
