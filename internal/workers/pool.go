package workers

import (
	"context"
	"runtime/debug"

	"image-browser/internal/errors"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
)

var log = logging.Named("workers")

// Pool runs blocking filesystem tasks off the caller's goroutine with a
// bounded number running at once. Callers wait for the result but can stop
// waiting when their context ends.
type Pool struct {
	sem chan struct{}
}

// NewPool creates a pool allowing size concurrent tasks. A size of zero or
// less sizes the pool for I/O-bound work.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = ForIO(0)
	}
	metrics.WorkerPoolSize.Set(float64(size))
	return &Pool{sem: make(chan struct{}, size)}
}

// Size returns the maximum number of concurrent tasks.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// Run executes fn on a worker and returns its error.
func (p *Pool) Run(ctx context.Context, name string, fn func() error) error {
	_, err := Do(ctx, p, name, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

type result[T any] struct {
	value T
	err   error
}

// Do executes fn on a worker and returns its value.
//
// A panic in fn becomes a WORKER_ERROR. If ctx ends before a slot is free or
// before fn returns, Do returns a CANCELED error; fn itself is not
// interrupted and runs to completion in the background.
func Do[T any](ctx context.Context, p *Pool, name string, fn func() (T, error)) (T, error) {
	var zero T

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return zero, errors.Canceled(ctx.Err())
	}

	done := make(chan result[T], 1)
	go func() {
		defer func() { <-p.sem }()

		metrics.WorkerTasksInFlight.Inc()
		defer metrics.WorkerTasksInFlight.Dec()

		defer func() {
			if r := recover(); r != nil {
				metrics.WorkerPanicsTotal.Inc()
				log.Error("task %s panicked: %v\n%s", name, r, debug.Stack())
				done <- result[T]{err: errors.Worker("worker thread error in %s: %v", name, r)}
			}
		}()

		value, err := fn()
		done <- result[T]{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, errors.Canceled(ctx.Err())
	}
}
