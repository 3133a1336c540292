// Package worker runs recoloring and extraction jobs on a fixed set of
// goroutines. A Pool is created with New and must be shut down with Close.
//
// Jobs are plain data, and every job gets its own copy of what it touches, so
// any number of them can run at once. A job that panics, which is how the
// core reports broken preconditions, is reported as a failed Result instead
// of taking the process down.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
	"github.com/makeworld-the-better-one/paletteshift/recolor"
)

// ErrClosed is the error of every job submitted after Close.
var ErrClosed = errors.New("worker pool is closed")

// Status says whether a job completed.
type Status int

const (
	Succeeded Status = iota
	Failed
)

func (s Status) String() string {
	if s == Succeeded {
		return "complete"
	}
	return "failed"
}

// Result is the outcome of one job. Only the field matching the job type is
// set, and only when Status is Succeeded.
type Result struct {
	Status Status
	Err    error

	Buffer     *pixbuf.Buffer
	Variations []recolor.Variation
	Similar    []recolor.Similar
	Palette    palette.Palette
}

// OK reports whether the job succeeded.
func (r Result) OK() bool {
	return r.Status == Succeeded
}

func failed(err error) Result {
	return Result{Status: Failed, Err: err}
}

// Config configures a Pool.
type Config struct {
	// Workers is the number of goroutines. Zero means runtime.GOMAXPROCS(0).
	Workers int
}

type task struct {
	ctx context.Context
	job Job
	out chan Result
}

// Pool is an owned set of worker goroutines.
type Pool struct {
	tasks chan task
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts a pool.
func New(cfg Config) *Pool {
	n := cfg.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{tasks: make(chan task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for t := range p.tasks {
		t.out <- run(t.ctx, t.job)
	}
}

func run(ctx context.Context, job Job) (res Result) {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}
	if err := job.validate(); err != nil {
		return failed(err)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker: %T panicked: %v", job, r)
			res = failed(fmt.Errorf("%T panicked: %v", job, r))
		}
	}()
	return job.run()
}

// Submit queues job and returns a channel that receives its Result once.
// It blocks while every worker is busy, until ctx is done.
//
// If ctx is done before the job starts, the Result is a failure carrying
// ctx.Err(). A job that has started always runs to completion.
func (p *Pool) Submit(ctx context.Context, job Job) <-chan Result {
	out := make(chan Result, 1)

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		out <- failed(ErrClosed)
		return out
	}

	select {
	case p.tasks <- task{ctx, job, out}:
	case <-ctx.Done():
		out <- failed(ctx.Err())
	}
	return out
}

// Do submits job and waits for its Result. If ctx is done first, it returns
// a failure and the job's eventual result is dropped.
func (p *Pool) Do(ctx context.Context, job Job) Result {
	select {
	case r := <-p.Submit(ctx, job):
		return r
	case <-ctx.Done():
		return failed(ctx.Err())
	}
}

// Close stops accepting jobs and waits for queued and running ones to
// finish. It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}
