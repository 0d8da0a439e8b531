package events

// HistoryLimit caps the number of records kept by a Bus.
const HistoryLimit = 1000

// Record is an emitted event with its sequence number.
type Record struct {
	ID    uint64
	Event Event
}

type deferred struct {
	event Event
	ticks int
}

// Bus queues events for a single consumer. Deferred events are emitted
// after a number of ticks. A Bus is not safe for concurrent use.
type Bus struct {
	queue    []Event
	history  []Record
	deferred []deferred
	counter  uint64
	counts   map[Type]int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{counts: make(map[Type]int)}
}

// Emit queues ev immediately and records it in the history.
func (b *Bus) Emit(ev Event) {
	b.counter++
	b.queue = append(b.queue, ev)
	b.history = append(b.history, Record{ID: b.counter, Event: ev})
	if len(b.history) > HistoryLimit {
		b.history = append(b.history[:0], b.history[len(b.history)-HistoryLimit:]...)
	}
	b.counts[ev.Type()]++
}

// EmitDeferred emits ev on the tick that brings its delay to zero. A delay
// of zero or one fires on the next Tick.
func (b *Bus) EmitDeferred(ev Event, ticks int) {
	b.deferred = append(b.deferred, deferred{event: ev, ticks: ticks})
}

// Tick advances deferred events by one tick.
func (b *Bus) Tick() {
	var ready []Event
	kept := b.deferred[:0]
	for _, d := range b.deferred {
		d.ticks--
		if d.ticks <= 0 {
			ready = append(ready, d.event)
			continue
		}
		kept = append(kept, d)
	}
	b.deferred = kept
	for _, ev := range ready {
		b.Emit(ev)
	}
}

// Poll pops the oldest pending event.
func (b *Bus) Poll() (Event, bool) {
	if len(b.queue) == 0 {
		return nil, false
	}
	ev := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return ev, true
}

// Pending reports whether events are waiting to be polled.
func (b *Bus) Pending() bool {
	return len(b.queue) > 0
}

// Drain returns all pending events in order.
func (b *Bus) Drain() []Event {
	out := b.queue
	b.queue = nil
	return out
}

// History returns the recorded events matching types, oldest first. With no
// types every record is returned.
func (b *Bus) History(types ...Type) []Record {
	if len(types) == 0 {
		out := make([]Record, len(b.history))
		copy(out, b.history)
		return out
	}
	var out []Record
	for _, r := range b.history {
		for _, t := range types {
			if r.Event.Type() == t {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Counts returns how many events of each type were emitted.
func (b *Bus) Counts() map[Type]int {
	out := make(map[Type]int, len(b.counts))
	for k, v := range b.counts {
		out[k] = v
	}
	return out
}

// Clear drops pending events. History is kept.
func (b *Bus) Clear() {
	b.queue = nil
}
