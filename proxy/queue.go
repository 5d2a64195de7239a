package proxy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrQueueShutdown is delivered for invocations submitted to a queue
// that has been shut down.
var ErrQueueShutdown = errors.New("queue shut down")

// Queue batches concurrent invocations under a shared concurrency
// cap. Each call still gets its own handle and callback; Wait joins
// every failure in the batch.
type Queue struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	sem      chan struct{}
	shutdown atomic.Bool
	errs     []error
}

// NewQueue creates a Queue limiting in-flight invocations to
// maxConcurrent. If maxConcurrent <= 0, concurrency is unlimited.
func NewQueue(maxConcurrent int) *Queue {
	q := &Queue{}
	if maxConcurrent > 0 {
		q.sem = make(chan struct{}, maxConcurrent)
	}
	return q
}

// Wait blocks until every invocation in the batch has completed and
// posted its outcome for delivery, then returns all failures joined
// via errors.Join. Use the individual handles to wait for the
// callbacks themselves.
func (q *Queue) Wait() error {
	q.wg.Wait()

	q.mu.Lock()
	defer q.mu.Unlock()

	return errors.Join(q.errs...)
}

// Shutdown prevents queued-but-unstarted invocations from executing.
// They are delivered as failures matching [ErrQueueShutdown].
func (q *Queue) Shutdown() {
	q.shutdown.Store(true)
}

// Invoke submits call through p under the queue's concurrency cap.
// Delivery semantics match [Proxy.Invoke]: exactly one callback per
// invocation on the proxy's dispatch executor, cancellation surfacing
// as a failure.
func (q *Queue) Invoke(ctx context.Context, p *Proxy, call Call, done Callback) *Invocation {
	ctx, cancel := context.WithCancel(ctx)
	inv := &Invocation{
		id:     uuid.New(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	q.wg.Add(1)
	go func() {
		defer func() {
			cancel()
			q.wg.Done()
		}()

		if q.sem != nil {
			select {
			case q.sem <- struct{}{}:
				defer func() {
					<-q.sem
				}()
			case <-ctx.Done():
				out := Outcome{Err: fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())}
				q.recordErr(out.Err)
				p.deliver(inv, out, done)
				return
			}
		}

		if q.shutdown.Load() {
			out := Outcome{Err: ErrQueueShutdown}
			q.recordErr(out.Err)
			p.deliver(inv, out, done)
			return
		}

		out := p.run(ctx, call)
		if out.Err != nil {
			q.recordErr(out.Err)
		}
		p.deliver(inv, out, done)
	}()

	return inv
}

// recordErr appends err to the batch's error slice under the mutex.
func (q *Queue) recordErr(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = append(q.errs, err)
}
