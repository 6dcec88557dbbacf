package system

import (
	"container/heap"

	"github.com/milk9111/arena/ecs"
)

// fireTolerance lets an action due at t fire on the tick whose accumulated
// clock lands a rounding error short of t.
const fireTolerance = 1e-9

type deferredAction struct {
	at   float64
	seq  uint64
	tick uint64
	fn   func()
}

type deferredHeap []*deferredAction

func (h deferredHeap) Len() int { return len(h) }
func (h deferredHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h deferredHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *deferredHeap) Push(x any)   { *h = append(*h, x.(*deferredAction)) }
func (h *deferredHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// DeferredQueue runs callbacks once simulation time passes their fire time.
// Time only moves through Advance, so a paused simulation that stops calling
// Advance freezes every pending action. An action never fires on the tick
// that scheduled it.
type DeferredQueue struct {
	now   float64
	seq   uint64
	tick  uint64
	items deferredHeap
}

func NewDeferredQueue() *DeferredQueue {
	return &DeferredQueue{}
}

// Now is the simulation clock in seconds.
func (q *DeferredQueue) Now() float64 {
	return q.now
}

func (q *DeferredQueue) Len() int {
	return len(q.items)
}

// Schedule queues fn to run delay seconds from now.
func (q *DeferredQueue) Schedule(delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	q.seq++
	heap.Push(&q.items, &deferredAction{at: q.now + delay, seq: q.seq, tick: q.tick, fn: fn})
}

// Advance moves the clock by dt and runs every due action in fire-time
// order. It returns how many actions ran.
func (q *DeferredQueue) Advance(dt float64) int {
	if dt > 0 {
		q.now += dt
	}
	q.tick++

	fired := 0
	var held []*deferredAction
	for len(q.items) > 0 && q.items[0].at <= q.now+fireTolerance {
		item := heap.Pop(&q.items).(*deferredAction)
		if item.tick == q.tick {
			held = append(held, item)
			continue
		}
		item.fn()
		fired++
	}
	for _, item := range held {
		heap.Push(&q.items, item)
	}
	return fired
}

// Update drives the queue as a system.
func (q *DeferredQueue) Update(_ *ecs.World, dt float64) {
	q.Advance(dt)
}

// Reset drops every pending action and rewinds the clock.
func (q *DeferredQueue) Reset() {
	q.now = 0
	q.seq = 0
	q.tick = 0
	q.items = nil
}
