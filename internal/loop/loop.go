// Package loop delivers asynchronous completions back onto a single logical
// goroutine, so controllers never observe concurrent mutation of their state.
package loop

import "sync"

// Dispatcher schedules fn to run on the owning event loop.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// Immediate runs callbacks on whichever goroutine completed the work.
// Only safe when the caller serializes completions itself.
var Immediate Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// Chan is a channel-backed dispatcher. The owning loop receives from C and
// runs each function in turn.
type Chan struct {
	C chan func()
}

// NewChan returns a Chan with the given buffer size.
func NewChan(buffer int) *Chan {
	return &Chan{C: make(chan func(), buffer)}
}

// Dispatch implements Dispatcher. It blocks when the buffer is full.
func (c *Chan) Dispatch(fn func()) {
	c.C <- fn
}

// Queue collects callbacks until the test or host decides to run them.
// Run order is fully controlled by the caller, which makes it suitable for
// reproducing out-of-order completions.
type Queue struct {
	pending []func()
	mu      sync.Mutex
}

// Dispatch implements Dispatcher.
func (q *Queue) Dispatch(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Len reports how many callbacks are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunNext runs the oldest waiting callback. It reports false when empty.
func (q *Queue) RunNext() bool {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return false
	}
	fn := q.pending[0]
	q.pending = q.pending[1:]
	q.mu.Unlock()

	fn()
	return true
}

// Drain runs callbacks until none are left, including ones queued while
// draining.
func (q *Queue) Drain() int {
	n := 0
	for q.RunNext() {
		n++
	}
	return n
}
