package console

import (
	"context"
	"sync"
)

// Dispatcher runs functions on the goroutine that owns the console.
// Post must not block and must run functions in the order they were
// posted.
type Dispatcher interface {
	Post(fn func())
}

// Inline runs posted functions immediately on the caller's goroutine. Use
// it when every caller already is the owning goroutine.
type Inline struct{}

// Post runs fn.
func (Inline) Post(fn func()) {
	fn()
}

// Queue is a FIFO of functions drained by Run on a single goroutine.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Post enqueues fn and returns immediately.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is done. Functions posted by a running
// function run after it, in the same drain.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
		q.Drain()
	}
}

// Drain runs every queued function, including ones queued while draining.
// It must only be called from the owning goroutine.
func (q *Queue) Drain() {
	for {
		q.mu.Lock()
		tasks := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}
