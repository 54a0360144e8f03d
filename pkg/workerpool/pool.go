// Package workerpool bounds concurrent background work. A Pool runs a fixed
// number of workers over a buffered task queue; when the queue is full,
// TrySubmit refuses instead of blocking, so callers choose their own
// backpressure policy.
package workerpool

import (
	"errors"
	"sync"
)

var (
	ErrFull   = errors.New("workerpool: queue is full")
	ErrClosed = errors.New("workerpool: pool is closed")
)

type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	closed chan struct{}
}

// New starts a pool of `workers` goroutines. The task queue buffers twice
// the worker count to absorb bursts.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	p := &Pool{
		tasks:  make(chan func(), workers*2),
		closed: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	return p
}

// TrySubmit enqueues task without blocking. It returns ErrFull when the
// queue is at capacity and ErrClosed after Shutdown.
func (p *Pool) TrySubmit(task func()) error {
	select {
	case <-p.closed:
		return ErrClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrFull
	}
}

// Submit blocks until the task is queued or the pool shuts down.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closed:
		return ErrClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops intake, drains queued tasks, and waits for the workers.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closed)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		runSafely(task)
	}
}

// runSafely keeps a panicking task from killing the worker.
func runSafely(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}
