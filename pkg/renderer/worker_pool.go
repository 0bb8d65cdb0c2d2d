package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileFunc renders a single tile
type TileFunc func(ctx context.Context, tile *Tile) error

// WorkerPool runs tile tasks with bounded parallelism
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile and waits for all of them.
// The first error cancels the remaining tiles and is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render TileFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return render(gctx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
