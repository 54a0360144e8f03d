package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := New(4)
	defer pool.Shutdown()

	var count int64
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, int64(20), atomic.LoadInt64(&count))
}

func TestTrySubmitRefusesWhenFull(t *testing.T) {
	pool := New(1)
	defer pool.Shutdown()

	block := make(chan struct{})
	require.NoError(t, pool.Submit(func() { <-block }))

	// Fill the buffered queue, then one more must be refused.
	var refused bool
	for i := 0; i < 10; i++ {
		if err := pool.TrySubmit(func() {}); err != nil {
			assert.ErrorIs(t, err, ErrFull)
			refused = true
			break
		}
	}
	close(block)

	assert.True(t, refused)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := New(2)
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), ErrClosed)
	assert.ErrorIs(t, pool.TrySubmit(func() {}), ErrClosed)
}

func TestShutdownDrainsQueuedTasks(t *testing.T) {
	pool := New(2)

	var count int64
	for i := 0; i < 8; i++ {
		require.NoError(t, pool.Submit(func() {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&count, 1)
		}))
	}

	pool.Shutdown()
	assert.Equal(t, int64(8), atomic.LoadInt64(&count))
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	pool := New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.Submit(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive panicking task")
	}
}
