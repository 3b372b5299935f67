package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrPoolClosed is returned by Do after Close has been called.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool runs tasks on dedicated goroutines, at most size at a time.
type Pool struct {
	sem  *semaphore.Weighted
	size int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool returns a pool of the given size. A non-positive size means one
// slot per CPU.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: size,
	}
}

// Size returns the maximum number of tasks running at once.
func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) Do(ctx context.Context, fn func() error) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPoolClosed
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.wg.Done()
		return fmt.Errorf("waiting for a worker: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		done <- runTask(fn)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting new tasks and waits for the running ones.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
}

func runTask(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker task panicked: %v", r)
		}
	}()

	return fn()
}
