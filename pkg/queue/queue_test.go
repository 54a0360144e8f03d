package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/pkg/queue"
)

var (
	echoRuns    atomic.Int32
	failerRuns  atomic.Int32
	workersOnce atomic.Bool
)

type echoJob struct {
	Val string
}

func (j *echoJob) Handle() error {
	echoRuns.Add(1)
	return nil
}

type failingJob struct{}

func (j *failingJob) Handle() error {
	failerRuns.Add(1)
	return errors.New("always fails")
}

func startWorkers(t *testing.T) {
	t.Helper()
	if workersOnce.CompareAndSwap(false, true) {
		queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
		queue.Register("*queue_test.failingJob", func() queue.Job { return &failingJob{} })
		queue.StartWorkers(context.Background(), 2)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDispatchAndProcess(t *testing.T) {
	startWorkers(t)

	before := echoRuns.Load()
	require.NoError(t, queue.Dispatch(&echoJob{Val: "hello"}))

	waitFor(t, func() bool { return echoRuns.Load() > before })
}

func TestExhaustedRetriesAreRecorded(t *testing.T) {
	startWorkers(t)
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())
	require.NoError(t, queue.Dispatch(&failingJob{}))

	waitFor(t, func() bool { return len(queue.FailedJobs()) > before })
	assert.GreaterOrEqual(t, failerRuns.Load(), int32(1))
}

func TestConcurrentDispatch(t *testing.T) {
	startWorkers(t)

	before := echoRuns.Load()
	for i := 0; i < 20; i++ {
		go queue.Dispatch(&echoJob{Val: "c"}) //nolint:errcheck
	}

	waitFor(t, func() bool { return echoRuns.Load() >= before+20 })
}
