package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

// Callback is invoked once per query group per iteration. shard identifies
// the slot the callback may write worker-confined state to; callbacks of the
// same shard never run concurrently with each other.
type Callback func(group model.QueryGroup, shard int, iteration int)

// Barrier runs between iterations, after every callback of the finished
// iteration has joined. Returning false stops the run early.
type Barrier func(iteration int) bool

// Engine drives repeated passes over sharded query groups.
// Shards of one iteration run in parallel on a bounded worker pool and all
// of them join before the next iteration starts, so scoring always reads
// the model weights frozen at the last barrier.
type Engine struct {
	shards  [][]model.QueryGroup
	workers int
}

// New creates an engine over the given shards. workers < 1 selects NumCPU.
func New(shards [][]model.QueryGroup, workers int) *Engine {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Engine{shards: shards, workers: workers}
}

// Shards returns the number of partitions the engine iterates over.
func (e *Engine) Shards() int {
	return len(e.shards)
}

// Run executes up to n iterations and returns how many completed.
func (e *Engine) Run(ctx context.Context, n int, cb Callback, barrier Barrier) (int, error) {
	for it := 0; it < n; it++ {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for si := range e.shards {
			si := si
			g.Go(func() error {
				for _, group := range e.shards[si] {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
					cb(group, si, it)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return it, err
		}
		if barrier != nil && !barrier(it) {
			return it + 1, nil
		}
	}
	return n, nil
}
