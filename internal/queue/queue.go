package queue

import "context"

// Queue is a bounded FIFO channel of small tokens shared between two tasks.
// Capacity is fixed at construction; a send against a full queue is dropped.
type Queue[T any] struct {
	// ch carries the tokens in FIFO order.
	ch chan T
	// onDrop, if set, is invoked for every token discarded by TrySend.
	onDrop func()
}

// New creates a queue with the given capacity. onDrop may be nil; when set it
// is called each time TrySend discards a token, and must itself be
// non-blocking (it runs in the sender's context, possibly interrupt context).
func New[T any](capacity int, onDrop func()) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Queue[T]{
		ch:     make(chan T, capacity),
		onDrop: onDrop,
	}
}

// TrySend enqueues the token without blocking. It reports whether the token
// was accepted; a full queue drops the token silently.
func (q *Queue[T]) TrySend(token T) bool {
	select {
	case q.ch <- token:
		return true
	default:
		if q.onDrop != nil {
			q.onDrop()
		}

		return false
	}
}

// Receive blocks until a token is available or the context is done.
func (q *Queue[T]) Receive(ctx context.Context) (T, error) {
	select {
	case token := <-q.ch:
		return token, nil
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Len returns the number of tokens currently queued.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return cap(q.ch)
}

// ISRSender is the only queue handle an interrupt handler is allowed to
// hold. It exposes nothing but the non-blocking send, making the
// no-blocking, no-receive restriction visible in the type system.
type ISRSender[T any] struct {
	q *Queue[T]
}

// NewISRSender wraps a queue in its interrupt-safe sending facade.
func NewISRSender[T any](q *Queue[T]) ISRSender[T] {
	return ISRSender[T]{q: q}
}

// TrySend enqueues the token without blocking; a pending unconsumed token
// means the new one is dropped.
func (s ISRSender[T]) TrySend(token T) bool {
	return s.q.TrySend(token)
}
