package queue

import (
	"sync"
)

// ConsumerQueue is an unbounded FIFO with a single blocking consumer.
// Items added before Stop but not yet taken are dropped.
type ConsumerQueue[T any] struct {
	cond    *sync.Cond
	items   []T
	stopped bool
}

func NewConsumerQueue[T any]() *ConsumerQueue[T] {
	return &ConsumerQueue[T]{
		cond:  sync.NewCond(&sync.Mutex{}),
		items: []T{},
	}
}

func (cq *ConsumerQueue[T]) Add(item T) {
	cq.cond.L.Lock()
	defer cq.cond.L.Unlock()

	if cq.stopped {
		return
	}

	cq.items = append(cq.items, item)
	cq.cond.Signal()
}

// WaitForItems blocks until at least one item is queued and returns all of them in insertion order.
// It returns nil once the queue is stopped.
func (cq *ConsumerQueue[T]) WaitForItems() []T {
	cq.cond.L.Lock()
	defer cq.cond.L.Unlock()

	for len(cq.items) == 0 && !cq.stopped {
		cq.cond.Wait()
	}

	if cq.stopped {
		return nil
	}

	result := cq.items
	cq.items = make([]T, 0, len(result))

	return result
}

func (cq *ConsumerQueue[T]) Len() int {
	cq.cond.L.Lock()
	defer cq.cond.L.Unlock()

	return len(cq.items)
}

func (cq *ConsumerQueue[T]) Stop() {
	cq.cond.L.Lock()
	defer cq.cond.L.Unlock()

	cq.stopped = true
	cq.cond.Broadcast()
}
