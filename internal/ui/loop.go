package ui

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Sentinel errors for the ui package.
var (
	// ErrAlreadyRunning is returned when Start is called on a running loop.
	ErrAlreadyRunning = errors.New("ui loop is already running")

	// ErrNotRunning is returned when Stop is called on a stopped loop.
	ErrNotRunning = errors.New("ui loop is not running")
)

// PanicHandler is called when a posted task panics.
type PanicHandler func(recovered any, stack []byte)

// defaultPanicHandler silently recovers. The application installs a
// handler that logs.
func defaultPanicHandler(recovered any, stack []byte) {}

// Loop is a single-threaded FIFO task executor. Tasks posted before Start
// are queued and run once the loop starts. Exactly one worker goroutine
// executes tasks, so two tasks never run concurrently and always run in
// post order.
type Loop struct {
	queueSize    int
	panicHandler PanicHandler

	mu     sync.RWMutex
	queue  chan func()
	done   chan struct{}
	closed bool

	started  atomic.Bool
	stopping atomic.Bool
	wg       sync.WaitGroup

	// Stats
	posted   atomic.Uint64
	executed atomic.Uint64
	panicked atomic.Uint64
	dropped  atomic.Uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the task queue capacity. Posting to a full queue
// blocks until the worker drains it; tasks are never reordered or lost.
func WithQueueSize(size int) Option {
	return func(l *Loop) {
		if size > 0 {
			l.queueSize = size
		}
	}
}

// WithPanicHandler sets the handler invoked when a task panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(l *Loop) {
		if h != nil {
			l.panicHandler = h
		}
	}
}

// NewLoop creates a new task loop.
func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		queueSize:    256,
		panicHandler: defaultPanicHandler,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.queue = make(chan func(), l.queueSize)
	l.done = make(chan struct{})
	return l
}

// Start starts the worker goroutine.
func (l *Loop) Start() error {
	if l.started.Swap(true) {
		return ErrAlreadyRunning
	}
	l.wg.Add(1)
	go l.run()
	return nil
}

// Stop shuts the loop down. Already queued tasks are drained before the
// worker exits; Stop waits for the drain to finish or for the context to
// be cancelled. Tasks posted after Stop are dropped.
func (l *Loop) Stop(ctx context.Context) error {
	if l.stopping.Swap(true) {
		return ErrNotRunning
	}

	// Closing done first unblocks any Post waiting on a full queue, so the
	// write lock below cannot deadlock against a blocked poster.
	close(l.done)

	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	// All in-flight Post calls have returned once the write lock was
	// acquired, so closing the queue is safe now.
	close(l.queue)

	if !l.started.Load() {
		return nil
	}

	finished := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post enqueues a task for execution on the loop. Blocks while the queue
// is full. After Stop, the task is dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		l.dropped.Add(1)
		return
	}

	// Fast path first so a closed done channel does not race a send into
	// a queue that still has room.
	select {
	case l.queue <- fn:
		l.posted.Add(1)
		return
	default:
	}

	select {
	case l.queue <- fn:
		l.posted.Add(1)
	case <-l.done:
		l.dropped.Add(1)
	}
}

// run is the worker goroutine.
func (l *Loop) run() {
	defer l.wg.Done()
	for fn := range l.queue {
		l.execute(fn)
	}
}

// execute runs one task with panic recovery.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.panicked.Add(1)
			l.panicHandler(r, debug.Stack())
		}
		l.executed.Add(1)
	}()
	fn()
}

// Stats contains loop counters.
type Stats struct {
	// Posted is the number of tasks accepted into the queue.
	Posted uint64

	// Executed is the number of tasks that have run, including ones that
	// panicked.
	Executed uint64

	// Panicked is the number of tasks that panicked.
	Panicked uint64

	// Dropped is the number of tasks rejected after Stop.
	Dropped uint64
}

// Stats returns current loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Posted:   l.posted.Load(),
		Executed: l.executed.Load(),
		Panicked: l.panicked.Load(),
		Dropped:  l.dropped.Load(),
	}
}
