package core

// EventDispatcher binds one event to a chain of typed handlers.
//
//	d := core.NewEventDispatcher(ev)
//	core.Dispatch(d, l.onResize)
//	core.Dispatch(d, l.onKey)
type EventDispatcher struct {
	event *Event
}

func NewEventDispatcher(ev *Event) EventDispatcher { return EventDispatcher{event: ev} }

// Event returns the bound event.
func (d EventDispatcher) Event() *Event { return d.event }

// Dispatch calls fn when the bound event carries a T and records its result
// in the handled flag. It reports whether fn was called; on a type mismatch
// the event is left untouched.
func Dispatch[T Payload](d EventDispatcher, fn func(T) bool) bool {
	p, ok := d.event.payload.(T)
	if !ok {
		return false
	}
	d.event.SetHandled(fn(p))
	return true
}
