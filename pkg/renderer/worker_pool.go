package renderer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PixelResult is a finished pixel sent from a worker to the aggregator
type PixelResult struct {
	Row     int  // 0 is the top row
	Col     int  // 0 is the left column
	Color   RGB8 // Tone-mapped, quantized color
	Samples int  // Samples accumulated for this pixel
}

// TileFunc renders one tile, handing every finished pixel to emit
type TileFunc func(ctx context.Context, tile *Tile, emit func(PixelResult) error) error

// NewWorkerFunc creates the tile function for one worker; per-worker state such
// as random samplers lives in the returned closure
type NewWorkerFunc func(workerID int) TileFunc

// WorkerPool manages parallel tile rendering. Tiles are fed through a task
// queue to a fixed number of workers; finished pixels flow out through a
// bounded result queue, so workers block when the consumer falls behind.
type WorkerPool struct {
	taskQueue   chan *Tile
	resultQueue chan PixelResult
	numWorkers  int
	done        chan struct{}
	err         error
}

// NewWorkerPool creates a worker pool with the specified number of workers
// and result queue capacity
func NewWorkerPool(numWorkers, resultCapacity int) *WorkerPool {
	return &WorkerPool{
		taskQueue:   make(chan *Tile, numWorkers),
		resultQueue: make(chan PixelResult, resultCapacity),
		numWorkers:  numWorkers,
		done:        make(chan struct{}),
	}
}

// Start submits all tiles and begins all workers. The result queue is closed
// once every worker has returned. The first worker error, including a
// recovered panic, cancels the remaining workers.
func (wp *WorkerPool) Start(ctx context.Context, tiles []*Tile, newWorker NewWorkerFunc) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(wp.taskQueue)
		for _, tile := range tiles {
			select {
			case wp.taskQueue <- tile:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for id := range wp.numWorkers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d panicked: %v", id, r)
				}
			}()
			return wp.run(gctx, newWorker(id))
		})
	}

	go func() {
		wp.err = g.Wait()
		close(wp.resultQueue)
		close(wp.done)
	}()
}

// Results returns the queue of finished pixels; it is closed when all workers stop
func (wp *WorkerPool) Results() <-chan PixelResult {
	return wp.resultQueue
}

// Wait blocks until every worker has stopped and returns the first failure
func (wp *WorkerPool) Wait() error {
	<-wp.done
	return wp.err
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context, render TileFunc) error {
	emit := func(result PixelResult) error {
		select {
		case wp.resultQueue <- result:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tile, ok := <-wp.taskQueue:
			if !ok {
				return nil
			}
			if err := render(ctx, tile, emit); err != nil {
				return err
			}
		}
	}
}
