package host

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoopClosed is returned by Do after the loop has shut down.
var ErrLoopClosed = errors.New("main loop closed")

// MainLoop serializes work onto the host's single logical main thread.
// Connection goroutines enqueue closures with Do and block until the
// loop's sole consumer has run them; Tick drains the queue in strict
// FIFO order, one batch per host tick. This mirrors the editor's rule
// that all object-model mutation happens on one thread.
type MainLoop struct {
	tasks     chan task
	closed    chan struct{}
	closeOnce sync.Once
}

type task struct {
	fn   func()
	done chan struct{}
}

// NewMainLoop creates a loop with the given queue depth.
func NewMainLoop(depth int) *MainLoop {
	if depth <= 0 {
		depth = 64
	}
	return &MainLoop{
		tasks:  make(chan task, depth),
		closed: make(chan struct{}),
	}
}

// Do enqueues fn and blocks until the loop has run it, or until ctx is
// done or the loop closes.
func (l *MainLoop) Do(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case l.tasks <- t:
	case <-l.closed:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-t.done:
		return nil
	case <-l.closed:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick runs every task queued at the moment of the call, in FIFO order.
// Tasks enqueued while Tick is draining wait for the next tick.
func (l *MainLoop) Tick() {
	for pending := len(l.tasks); pending > 0; pending-- {
		select {
		case t := <-l.tasks:
			t.fn()
			close(t.done)
		default:
			return
		}
	}
}

// Run ticks the loop at the given interval until ctx is done, then
// closes the loop. The real editor drives Tick from its update callback;
// Run is the standalone equivalent.
func (l *MainLoop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Close wakes all blocked producers. Idempotent.
func (l *MainLoop) Close() {
	l.closeOnce.Do(func() { close(l.closed) })
}
