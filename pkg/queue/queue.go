// Package queue runs background jobs. Jobs are serialized into a typed
// envelope, pushed through a driver (in-memory or Redis), and handled by a
// bounded worker pool with retry and failed-job persistence.
//
//	type LowStockAlertJob struct{ ProductID uint }
//	func (j *LowStockAlertJob) Handle() error { ... }
//
//	queue.Register("*jobs.LowStockAlertJob", func() queue.Job { return &LowStockAlertJob{} })
//	queue.Dispatch(&LowStockAlertJob{ProductID: 7})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/spectraretail/spectra-pos/pkg/logger"
	"github.com/spectraretail/spectra-pos/pkg/metrics"
	"github.com/spectraretail/spectra-pos/pkg/workerpool"
)

// Job is implemented by every background job.
type Job interface {
	Handle() error
}

// Driver is the queue transport.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var std = &manager{
	driver:   NewMemoryDriver(),
	registry: map[string]func() Job{},
	maxRetry: 3,
}

// SetDriver swaps the transport. Call before StartWorkers.
func SetDriver(d Driver) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.driver = d
}

// SetMaxRetry configures how many attempts a job gets before it is recorded
// as failed.
func SetMaxRetry(n int) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if n > 0 {
		std.maxRetry = n
	}
}

// Register maps a job type name to a constructor so popped envelopes can be
// deserialized. Call once per job type at boot.
func Register(name string, factory func() Job) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.registry[name] = factory
}

// Dispatch pushes job for immediate processing.
func Dispatch(job Job) error {
	return std.push(job)
}

// DispatchAfter pushes job once delay elapses. The Redis driver schedules it
// server-side; otherwise a goroutine sleeps out the delay.
func DispatchAfter(job Job, delay time.Duration) {
	std.mu.RLock()
	d := std.driver
	std.mu.RUnlock()

	if rd, ok := d.(*RedisDriver); ok {
		env, err := seal(job)
		if err != nil {
			logger.Error("queue delayed dispatch failed", "error", err)
			return
		}
		if err := rd.PushDelayed(env, delay); err != nil {
			logger.Error("queue delayed dispatch failed", "error", err)
		}
		return
	}

	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue delayed dispatch failed", "error", err)
		}
	}()
}

func seal(job Job) ([]byte, error) {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}

	env, err := json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("queue: marshal envelope: %w", err)
	}

	return env, nil
}

func (m *manager) push(job Job) error {
	env, err := seal(job)
	if err != nil {
		return err
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()

	return d.Push(env)
}

// StartWorkers pops jobs until ctx is cancelled and hands them to a pool of
// n workers.
func StartWorkers(ctx context.Context, n int) {
	pool := workerpool.New(n)

	go func() {
		defer pool.Shutdown()
		for {
			m := std

			m.mu.RLock()
			d := m.driver
			m.mu.RUnlock()

			raw, err := d.Pop(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				time.Sleep(500 * time.Millisecond)
				continue
			}
			if raw == nil {
				continue
			}

			payload := raw
			if err := pool.Submit(func() { m.process(payload) }); err != nil {
				return
			}
		}
	}()

	logger.Info("queue workers started", "count", n)
}

func (m *manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue unmarshal payload", "type", env.Type, "error", err)
		return
	}

	m.runWithRetry(job, env.Type)
}

func (m *manager) runWithRetry(job Job, typeName string) {
	start := time.Now()

	m.mu.RLock()
	maxRetry := m.maxRetry
	m.mu.RUnlock()

	var lastErr error
	for attempt := 1; attempt <= maxRetry; attempt++ {
		if err := job.Handle(); err != nil {
			lastErr = err
			logger.Warn("queue job failed, retrying",
				"type", typeName, "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}

		metrics.RecordQueueJob(typeName, "success", start)
		logger.Info("queue job processed", "type", typeName)
		return
	}

	metrics.RecordQueueJob(typeName, "failed", start)
	m.recordFailure(job, typeName, lastErr, maxRetry)
	logger.Error("queue job exhausted retries", "type", typeName, "error", lastErr)
}

// FailedJobs returns a snapshot of jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return append([]FailedJob(nil), std.failed...)
}
