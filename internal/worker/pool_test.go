package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CityProduction_Go/internal/logger"
	"github.com/osse101/CityProduction_Go/internal/testing/leaktest"
)

type countingJob struct {
	executed *int32
	err      error
}

func (j *countingJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

type blockingJob struct {
	release chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	<-j.release
	return nil
}

// taggedJob records the pass ID it sees and tags its context with one
type taggedJob struct {
	passID string
	seen   chan string
	err    error
}

func (j *taggedJob) JobContext(ctx context.Context) context.Context {
	return logger.WithPassID(ctx, j.passID)
}

func (j *taggedJob) Process(ctx context.Context) error {
	j.seen <- logger.GetPassID(ctx)
	return j.err
}

type panickingJob struct{}

func (panickingJob) Process(ctx context.Context) error {
	panic("boom")
}

func TestPool_ProcessesQueuedJobsBeforeStop(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, pool.TryEnqueue(&countingJob{executed: &executed}))
	}
	require.NoError(t, pool.TryEnqueue(&countingJob{executed: &executed, err: errors.New("failed")}))

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(6), atomic.LoadInt32(&executed))
}

func TestPool_RejectsAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))

	assert.ErrorIs(t, pool.TryEnqueue(&countingJob{executed: &executed}), ErrPoolStopped)
	assert.NoError(t, pool.Stop(context.Background()), "Stop is idempotent")
}

func TestPool_TryEnqueueFull(t *testing.T) {
	release := make(chan struct{})
	pool := NewPool(1, 1)
	pool.Start()

	require.NoError(t, pool.TryEnqueue(&blockingJob{release: release}))
	// Wait until the worker has taken the first job off the queue
	assert.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, pool.TryEnqueue(&blockingJob{release: release}))
	assert.ErrorIs(t, pool.TryEnqueue(&blockingJob{release: release}), ErrQueueFull)

	close(release)
	require.NoError(t, pool.Stop(context.Background()))
}

func TestPool_StopTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	pool := NewPool(1, 1)
	pool.Start()
	require.NoError(t, pool.TryEnqueue(&blockingJob{release: release}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Stop(ctx), context.DeadlineExceeded)
}

func TestPool_SurvivesPanic(t *testing.T) {
	var executed int32
	pool := NewPool(1, 4)
	pool.Start()

	require.NoError(t, pool.TryEnqueue(panickingJob{}))
	require.NoError(t, pool.TryEnqueue(&countingJob{executed: &executed}))

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		var executed int32
		pool := NewPool(4, 8)
		pool.Start()
		for i := 0; i < 8; i++ {
			require.NoError(t, pool.TryEnqueue(&countingJob{executed: &executed}))
		}
		require.NoError(t, pool.Stop(context.Background()))
	})
}

func TestPool_ContextJobTagsContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	pool := NewPool(1, 1)
	pool.Start()

	job := &taggedJob{passID: "pass-42", seen: make(chan string, 1), err: errors.New("save failed")}
	require.NoError(t, pool.TryEnqueue(job))
	require.NoError(t, pool.Stop(context.Background()))

	assert.Equal(t, "pass-42", <-job.seen)
	assert.Contains(t, buf.String(), LogMsgWorkerJobFailed)
	assert.Contains(t, buf.String(), `"pass_id":"pass-42"`)
}

func TestPool_WithJobTimeout(t *testing.T) {
	pool := NewPool(1, 1).WithJobTimeout(time.Minute)
	assert.Equal(t, time.Minute, pool.jobTimeout)

	pool.WithJobTimeout(0)
	assert.Equal(t, time.Minute, pool.jobTimeout, "zero keeps the current timeout")
	assert.Equal(t, DefaultJobTimeout, NewPool(1, 1).jobTimeout)
}
