package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/CityProduction_Go/internal/logger"
)

// ErrPoolStopped is returned when a job is submitted after Stop
var ErrPoolStopped = errors.New("worker pool stopped")

// ErrQueueFull is returned by TryEnqueue when no queue slot is free
var ErrQueueFull = errors.New("worker queue full")

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// ContextJob is a job that tags its own context, e.g. with the request and
// pass IDs of the call that queued it. The tagged context reaches both
// Process and the pool's failure logs.
type ContextJob interface {
	Job
	JobContext(ctx context.Context) context.Context
}

// Pool runs jobs on a fixed number of goroutines. Jobs queued before Stop
// are still processed.
type Pool struct {
	workers    int
	jobTimeout time.Duration
	jobQueue   chan Job
	wg         sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:    workers,
		jobTimeout: DefaultJobTimeout,
		jobQueue:   make(chan Job, queueSize),
	}
}

// WithJobTimeout bounds the context passed to each job. Non-positive values
// keep the current timeout.
func (p *Pool) WithJobTimeout(d time.Duration) *Pool {
	if d > 0 {
		p.jobTimeout = d
	}
	return p
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobQueue {
		p.run(job)
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()
	if cj, ok := job.(ContextJob); ok {
		ctx = cj.JobContext(ctx)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// TryEnqueue adds a job without blocking. A full queue returns ErrQueueFull
// and the job is not run.
func (p *Pool) TryEnqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for queued jobs to finish or ctx to expire
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.jobQueue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgWorkerDrainTimeout, "pending", len(p.jobQueue))
		return ctx.Err()
	}
}
