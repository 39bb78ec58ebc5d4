package core

import "fmt"

// EventType tags the concrete payload carried by an Event.
type EventType int

const (
	EventNone EventType = iota
	EventWindowClose
	EventWindowResize
	EventAppTick
	EventAppUpdate
	EventAppRender
	EventKeyPressed
	EventKeyReleased
	EventKeyTyped
	EventMouseButtonPressed
	EventMouseButtonReleased
	EventMouseMoved
	EventMouseScrolled
)

var eventTypeNames = [...]string{
	EventNone:                "None",
	EventWindowClose:         "WindowClose",
	EventWindowResize:        "WindowResize",
	EventAppTick:             "AppTick",
	EventAppUpdate:           "AppUpdate",
	EventAppRender:           "AppRender",
	EventKeyPressed:          "KeyPressed",
	EventKeyReleased:         "KeyReleased",
	EventKeyTyped:            "KeyTyped",
	EventMouseButtonPressed:  "MouseButtonPressed",
	EventMouseButtonReleased: "MouseButtonReleased",
	EventMouseMoved:          "MouseMoved",
	EventMouseScrolled:       "MouseScrolled",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// EventCategory is a bitmask used for coarse filtering of events.
type EventCategory uint8

const (
	CategoryApplication EventCategory = 1 << iota
	CategoryInput
	CategoryKeyboard
	CategoryMouse
	CategoryMouseButton
)

// Category returns the fixed category flags of an event type.
func (t EventType) Category() EventCategory {
	switch t {
	case EventWindowClose, EventWindowResize, EventAppTick, EventAppUpdate, EventAppRender:
		return CategoryApplication
	case EventKeyPressed, EventKeyReleased, EventKeyTyped:
		return CategoryKeyboard | CategoryInput
	case EventMouseMoved, EventMouseScrolled:
		return CategoryMouse | CategoryInput
	case EventMouseButtonPressed, EventMouseButtonReleased:
		return CategoryMouseButton | CategoryMouse | CategoryInput
	}
	return 0
}

// Payload is implemented by the closed set of event variants in this package.
type Payload interface {
	Type() EventType
	String() string
	payload()
}

// Event wraps one payload together with its handled flag. Events are created
// per occurrence and passed by pointer through dispatch; do not retain them.
type Event struct {
	payload Payload
	handled bool
}

// NewEvent wraps p in a fresh, unhandled event.
func NewEvent(p Payload) *Event { return &Event{payload: p} }

func (e *Event) Type() EventType                   { return e.payload.Type() }
func (e *Event) Category() EventCategory           { return e.payload.Type().Category() }
func (e *Event) Payload() Payload                  { return e.payload }
func (e *Event) Name() string                      { return e.payload.Type().String() }
func (e *Event) String() string                    { return e.payload.String() }
func (e *Event) Handled() bool                     { return e.handled }
func (e *Event) MarkHandled()                      { e.handled = true }
func (e *Event) IsInCategory(c EventCategory) bool { return e.Category()&c != 0 }

// SetHandled records a handler result. A handled event stays handled.
func (e *Event) SetHandled(h bool) { e.handled = e.handled || h }

// ---- application events ----

type WindowCloseEvent struct{}

func (WindowCloseEvent) Type() EventType { return EventWindowClose }
func (WindowCloseEvent) String() string  { return "WindowCloseEvent" }
func (WindowCloseEvent) payload()        {}

type WindowResizeEvent struct{ Width, Height int }

func (WindowResizeEvent) Type() EventType { return EventWindowResize }
func (e WindowResizeEvent) String() string {
	return fmt.Sprintf("WindowResizeEvent: %d, %d", e.Width, e.Height)
}
func (WindowResizeEvent) payload() {}

type AppTickEvent struct{}

func (AppTickEvent) Type() EventType { return EventAppTick }
func (AppTickEvent) String() string  { return "AppTickEvent" }
func (AppTickEvent) payload()        {}

type AppUpdateEvent struct{}

func (AppUpdateEvent) Type() EventType { return EventAppUpdate }
func (AppUpdateEvent) String() string  { return "AppUpdateEvent" }
func (AppUpdateEvent) payload()        {}

type AppRenderEvent struct{}

func (AppRenderEvent) Type() EventType { return EventAppRender }
func (AppRenderEvent) String() string  { return "AppRenderEvent" }
func (AppRenderEvent) payload()        {}

// ---- keyboard events ----

type KeyPressedEvent struct {
	Key         Key
	Mods        Mod
	RepeatCount int
}

func (KeyPressedEvent) Type() EventType { return EventKeyPressed }
func (e KeyPressedEvent) String() string {
	return fmt.Sprintf("KeyPressedEvent: %s (%d repeats)", e.Key, e.RepeatCount)
}
func (KeyPressedEvent) payload() {}

type KeyReleasedEvent struct {
	Key  Key
	Mods Mod
}

func (KeyReleasedEvent) Type() EventType  { return EventKeyReleased }
func (e KeyReleasedEvent) String() string { return "KeyReleasedEvent: " + e.Key.String() }
func (KeyReleasedEvent) payload()         {}

// KeyTypedEvent carries a text character rather than a physical key.
type KeyTypedEvent struct{ Char rune }

func (KeyTypedEvent) Type() EventType  { return EventKeyTyped }
func (e KeyTypedEvent) String() string { return fmt.Sprintf("KeyTypedEvent: %q", e.Char) }
func (KeyTypedEvent) payload()         {}

// ---- mouse events ----

type MouseMovedEvent struct{ X, Y float32 }

func (MouseMovedEvent) Type() EventType { return EventMouseMoved }
func (e MouseMovedEvent) String() string {
	return fmt.Sprintf("MouseMovedEvent: %g, %g", e.X, e.Y)
}
func (MouseMovedEvent) payload() {}

type MouseScrolledEvent struct{ XOffset, YOffset float32 }

func (MouseScrolledEvent) Type() EventType { return EventMouseScrolled }
func (e MouseScrolledEvent) String() string {
	return fmt.Sprintf("MouseScrolledEvent: %g, %g", e.XOffset, e.YOffset)
}
func (MouseScrolledEvent) payload() {}

type MouseButtonPressedEvent struct{ Button MouseButton }

func (MouseButtonPressedEvent) Type() EventType { return EventMouseButtonPressed }
func (e MouseButtonPressedEvent) String() string {
	return "MouseButtonPressedEvent: " + e.Button.String()
}
func (MouseButtonPressedEvent) payload() {}

type MouseButtonReleasedEvent struct{ Button MouseButton }

func (MouseButtonReleasedEvent) Type() EventType { return EventMouseButtonReleased }
func (e MouseButtonReleasedEvent) String() string {
	return "MouseButtonReleasedEvent: " + e.Button.String()
}
func (MouseButtonReleasedEvent) payload() {}
