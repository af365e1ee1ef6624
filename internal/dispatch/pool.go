// Package dispatch provides the bounded worker pool that async queries run
// on. Submission never blocks; the semaphore caps how many jobs run at once.
package dispatch

import (
    "context"
    "sync"

    "golang.org/x/sync/semaphore"
)

// Job is one unit of work executed on the pool.
type Job func(ctx context.Context)

// Pool runs jobs with a fixed concurrency limit. The zero value is not
// usable; construct with NewPool.
type Pool struct {
    sem *semaphore.Weighted
    wg  sync.WaitGroup
}

// NewPool creates a pool that runs at most limit jobs concurrently. A limit
// below one is coerced to one.
func NewPool(limit int) *Pool {
    if limit < 1 {
        limit = 1
    }
    return &Pool{sem: semaphore.NewWeighted(int64(limit))}
}

// Go schedules job and returns immediately. The job waits for a pool slot on
// its own goroutine; cancelling ctx before a slot frees abandons the job
// without running it.
func (p *Pool) Go(ctx context.Context, job Job) {
    p.wg.Add(1)
    go func() {
        defer p.wg.Done()
        if err := p.sem.Acquire(ctx, 1); err != nil {
            return
        }
        defer p.sem.Release(1)
        job(ctx)
    }()
}

// Wait blocks until every scheduled job has finished or been abandoned.
func (p *Pool) Wait() {
    p.wg.Wait()
}
