package ecs

// EventType names a kind of world event.
type EventType string

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// MaxQueuedEvents bounds the polling FIFO. Once full, the oldest event is
// dropped for each new one; listeners still see every event.
const MaxQueuedEvents = 1024

// Listener reacts to an event as soon as it is pushed.
type Listener func(Event)

// EventQueue delivers events to listeners synchronously and also keeps the
// most recent MaxQueuedEvents in a FIFO for consumers that poll once per
// frame.
type EventQueue struct {
	items     []Event
	listeners map[EventType][]Listener
}

// Subscribe registers fn for events of type t.
func (q *EventQueue) Subscribe(t EventType, fn Listener) {
	if q == nil || fn == nil {
		return
	}
	if q.listeners == nil {
		q.listeners = make(map[EventType][]Listener)
	}
	q.listeners[t] = append(q.listeners[t], fn)
}

// Push delivers evt to listeners and queues it.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if len(q.items) >= MaxQueuedEvents {
		n := copy(q.items, q.items[len(q.items)-MaxQueuedEvents+1:])
		q.items = q.items[:n]
	}
	q.items = append(q.items, evt)
	for _, fn := range q.listeners[evt.Type] {
		fn(evt)
	}
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Reset drops queued events and every listener.
func (q *EventQueue) Reset() {
	if q == nil {
		return
	}
	q.items = nil
	q.listeners = nil
}
