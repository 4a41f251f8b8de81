// Package async bounds the blocking work of the bar.
//
// Block tasks and the event loop are ordinary goroutines that only wait on
// channels. Calls that hold an OS thread for an unbounded time (file system
// reads, subprocesses, network round trips) go through a Pool instead, so a
// slow block cannot starve the rest of the process of threads.
package async

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultBlockingThreads is the pool size used when none is configured.
const DefaultBlockingThreads = 2

// Observer receives the duration of every completed blocking call.
type Observer func(time.Duration)

// Pool runs blocking calls with bounded concurrency.
type Pool struct {
	sem     *semaphore.Weighted
	size    int
	observe Observer
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithObserver reports call durations, e.g. to a metrics histogram.
func WithObserver(o Observer) PoolOption {
	return func(p *Pool) {
		p.observe = o
	}
}

// NewPool creates a pool allowing size concurrent blocking calls.
// Sizes below one are raised to one.
func NewPool(size int, opts ...PoolOption) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the concurrency bound.
func (p *Pool) Size() int {
	return p.size
}

// Do runs fn on a pool slot and waits for it.
// If ctx ends first Do returns ctx.Err(); fn keeps its slot until it returns.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		start := time.Now()
		err := fn()
		if p.observe != nil {
			p.observe(time.Since(start))
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run is Do for calls that produce a value.
func Run[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ReadFile reads path on a pool slot.
func ReadFile(ctx context.Context, p *Pool, path string) ([]byte, error) {
	data, err := Run(ctx, p, func() ([]byte, error) {
		return os.ReadFile(path)
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
