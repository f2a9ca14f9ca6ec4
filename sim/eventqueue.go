package sim

import (
	"container/heap"
	"sync"
)

// EventQueue orders events by time. At equal times, primary events come
// before secondary events, and events of the same kind leave in the order
// they were pushed.
type EventQueue struct {
	sync.Mutex

	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	q.Lock()
	defer q.Unlock()

	heap.Push(&q.events, queuedEvent{evt: evt, seq: q.nextSeq})
	q.nextSeq++
}

// Pop removes and returns the first event.
func (q *EventQueue) Pop() Event {
	q.Lock()
	defer q.Unlock()

	return heap.Pop(&q.events).(queuedEvent).evt
}

// Peek returns the first event without removing it.
func (q *EventQueue) Peek() Event {
	q.Lock()
	defer q.Unlock()

	return q.events[0].evt
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.Lock()
	defer q.Unlock()

	return len(q.events)
}

type queuedEvent struct {
	evt Event
	seq uint64
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int {
	return len(h)
}

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]

	if a.evt.Time() != b.evt.Time() {
		return a.evt.Time() < b.evt.Time()
	}

	if a.evt.IsSecondary() != b.evt.IsSecondary() {
		return b.evt.IsSecondary()
	}

	return a.seq < b.seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queuedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedEvent{}
	*h = old[:n-1]

	return item
}
