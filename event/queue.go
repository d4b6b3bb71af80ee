package event

// EventQueue is a FIFO buffer for game events
// Single-threaded: producers and the consumer run inside the tick loop
type EventQueue struct {
	events []GameEvent
	spare  []GameEvent
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]GameEvent, 0, 64),
		spare:  make([]GameEvent, 0, 64),
	}
}

// Push appends an event
func (eq *EventQueue) Push(ev GameEvent) {
	eq.events = append(eq.events, ev)
}

// Emit is a convenience for Push with a payload and tick stamp
func (eq *EventQueue) Emit(t EventType, payload any, tick uint64) {
	eq.events = append(eq.events, GameEvent{Type: t, Payload: payload, Tick: tick})
}

// Consume returns all pending events in FIFO order and empties the queue
// The returned slice is valid until the next Consume
func (eq *EventQueue) Consume() []GameEvent {
	if len(eq.events) == 0 {
		return nil
	}
	out := eq.events
	eq.events = eq.spare[:0]
	eq.spare = out
	return out
}

// Len returns pending event count
func (eq *EventQueue) Len() int {
	return len(eq.events)
}

// Clear drops all pending events
func (eq *EventQueue) Clear() {
	eq.events = eq.events[:0]
}
