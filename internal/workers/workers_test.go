// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewPool_Size(t *testing.T) {
	assert.Equal(t, 3, NewPool(3).Size())
	assert.Equal(t, runtime.NumCPU(), NewPool(0).Size())
	assert.Equal(t, runtime.NumCPU(), NewPool(-2).Size())
}

func TestPool_Do_ReturnsTaskResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(2)
	defer p.Close()

	assert.NoError(t, p.Do(context.Background(), func() error { return nil }))

	want := errors.New("boom")
	assert.ErrorIs(t, p.Do(context.Background(), func() error { return want }), want)
}

func TestPool_Do_RecoversPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(1)
	defer p.Close()

	err := p.Do(context.Background(), func() error { panic("bad task") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad task")

	// the slot was released
	assert.NoError(t, p.Do(context.Background(), func() error { return nil }))
}

func TestPool_Do_BoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	const size = 2
	p := NewPool(size)
	defer p.Close()

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Do(context.Background(), func() error {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(size))
	assert.Positive(t, peak.Load())
}

func TestPool_Do_ContextCancelledWhileWaiting(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(1)
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = p.Do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	p.Close()
}

func TestPool_Do_ContextCancelledWhileRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(1)
	release := make(chan struct{})
	var finished atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := p.Do(ctx, func() error {
		<-release
		finished.Store(true)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	// Close waits for the task that outlived its caller.
	p.Close()
	assert.True(t, finished.Load())
}

func TestPool_Close_RejectsNewTasks(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(1)
	p.Close()

	err := p.Do(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}
