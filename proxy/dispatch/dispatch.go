package dispatch

import "sync"

// Executor runs functions on a serialized execution context. All
// functions posted to one Executor must run one at a time, in post
// order. Implementations embedding a UI main loop satisfy this by
// forwarding to it.
type Executor interface {
	Post(fn func())
}

// Func adapts a plain function to an Executor. The serialization
// guarantee is the adapted function's responsibility.
type Func func(fn func())

func (f Func) Post(fn func()) { f(fn) }

// Loop is an Executor backed by a single goroutine draining an
// unbounded FIFO queue. Post never blocks, so a posted function may
// itself post more work without deadlocking.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewLoop starts a Loop. The caller owns it and must Close it when no
// more results will be delivered.
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)

	go l.run()

	return l
}

// Post enqueues fn. Functions run in post order on the loop's
// goroutine. Posting after Close drops fn.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Close stops the loop after draining everything already posted and
// blocks until the final function has run. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	l.cond.Signal()
	l.mu.Unlock()

	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}

		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}

		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}
