// Package event provides the synchronous signal primitive used by visual objects.
// Listeners run in registration order on the caller's stack; an event can be
// stopped, which halts both the remaining listeners and further bubbling.
package event

// Type identifies an event.
type Type string

const (
	Click         Type = "click"
	PointerDown   Type = "pointer_down"
	StatusChanged Type = "status_changed"
)

// Event carries a single signal through one or more dispatchers.
type Event struct {
	Type Type
	// Target is the object the event was raised on.
	Target any
	// CurrentTarget is the object whose listeners are running.
	CurrentTarget any
	// DoubleClick is set for the second click of a double click.
	DoubleClick bool

	stopped bool
}

// New creates an event of the given type raised on target.
func New(t Type, target any) *Event {
	return &Event{Type: t, Target: target, CurrentTarget: target}
}

// StopPropagation halts delivery to any later listener and any ancestor.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// Listener handles an event.
type Listener func(evt *Event)

type entry struct {
	id uint64
	fn Listener
}

// Dispatcher holds ordered listeners per event type.
// The zero value is ready to use.
type Dispatcher struct {
	owner     any
	listeners map[Type][]entry
	nextID    uint64
}

// NewDispatcher creates a dispatcher whose events report owner as CurrentTarget.
func NewDispatcher(owner any) *Dispatcher {
	return &Dispatcher{owner: owner}
}

// On registers fn for events of type t.
// Returns an unsubscribe function; calling it more than once is harmless.
func (d *Dispatcher) On(t Type, fn Listener) func() {
	if d.listeners == nil {
		d.listeners = make(map[Type][]entry)
	}
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], entry{id: id, fn: fn})
	return func() {
		d.off(t, id)
	}
}

func (d *Dispatcher) off(t Type, id uint64) {
	list := d.listeners[t]
	for i, e := range list {
		if e.id == id {
			// copy so an Emit iterating the old slice is unaffected
			next := make([]entry, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(d.listeners, t)
			} else {
				d.listeners[t] = next
			}
			return
		}
	}
}

// Count returns the number of listeners registered for t.
func (d *Dispatcher) Count(t Type) int {
	return len(d.listeners[t])
}

// Emit delivers evt to the listeners of evt.Type in registration order.
// Delivery stops as soon as a listener stops propagation.
func (d *Dispatcher) Emit(evt *Event) {
	list := d.listeners[evt.Type]
	if len(list) == 0 {
		return
	}
	if d.owner != nil {
		evt.CurrentTarget = d.owner
	}
	for _, e := range list {
		e.fn(evt)
		if evt.stopped {
			return
		}
	}
}

// Target is an object that can receive bubbling events.
type Target interface {
	Events() *Dispatcher
	// EventParent returns the next object in the bubbling chain, or nil.
	EventParent() Target
}

// Bubble delivers evt on target and then on each ancestor until stopped.
func Bubble(target Target, evt *Event) {
	for t := target; t != nil; t = t.EventParent() {
		t.Events().Emit(evt)
		if evt.stopped {
			return
		}
	}
}
