package queue

import "github.com/pkg/errors"

// ErrFull is returned if element is enqueued to the queue which is full. Such element is dropped.
var ErrFull = errors.New("queue is full")

// Prioritized is implemented by elements stored in the queue.
type Prioritized interface {
	Priority() uint32
}

// Queue is the bounded ready queue kept sorted ascending by priority value.
// Dequeue takes the element with the largest value. Queue is not safe for concurrent use.
type Queue[T Prioritized] struct {
	items []T
}

// New creates empty queue of the provided capacity. Negative capacity is treated as zero.
func New[T Prioritized](capacity int) *Queue[T] {
	return &Queue[T]{
		items: make([]T, 0, max(capacity, 0)),
	}
}

// Empty tells if there are no elements in the queue.
func (q *Queue[T]) Empty() bool {
	return len(q.items) == 0
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Cap returns the capacity of the queue.
func (q *Queue[T]) Cap() int {
	return cap(q.items)
}

// Enqueue inserts element before the first one having priority value greater or equal to its own.
func (q *Queue[T]) Enqueue(item T) error {
	if len(q.items) == cap(q.items) {
		return errors.Wrapf(ErrFull, "capacity %d", cap(q.items))
	}

	pos := 0
	for ; pos < len(q.items); pos++ {
		if item.Priority() <= q.items[pos].Priority() {
			break
		}
	}

	var zero T
	q.items = append(q.items, zero)
	copy(q.items[pos+1:], q.items[pos:])
	q.items[pos] = item
	return nil
}

// Dequeue removes and returns the element at the tail, the one with the largest priority value.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}

	last := len(q.items) - 1
	item := q.items[last]
	q.items[last] = zero
	q.items = q.items[:last]
	return item, true
}
