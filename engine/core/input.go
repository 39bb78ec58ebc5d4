package core

import "github.com/kamstrup/intmap"

// Input tracks polled keyboard and mouse state. The Application feeds every
// event through Handle before dispatching it, so the state is current even
// when a layer swallows the event.
type Input struct {
	keys           *intmap.Map[Key, bool]
	buttons        *intmap.Map[MouseButton, bool]
	mouseX, mouseY float32
}

func NewInput() *Input {
	return &Input{
		keys:    intmap.New[Key, bool](64),
		buttons: intmap.New[MouseButton, bool](8),
	}
}

func (in *Input) Handle(ev *Event) {
	switch e := ev.Payload().(type) {
	case KeyPressedEvent:
		in.keys.Put(e.Key, true)
	case KeyReleasedEvent:
		in.keys.Del(e.Key)
	case MouseButtonPressedEvent:
		in.buttons.Put(e.Button, true)
	case MouseButtonReleasedEvent:
		in.buttons.Del(e.Button)
	case MouseMovedEvent:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyPressed(k Key) bool {
	down, _ := in.keys.Get(k)
	return down
}

func (in *Input) IsMouseButtonPressed(b MouseButton) bool {
	down, _ := in.buttons.Get(b)
	return down
}

func (in *Input) MousePosition() (float32, float32) { return in.mouseX, in.mouseY }

// Reset forgets all held keys and buttons, e.g. after focus loss.
func (in *Input) Reset() {
	in.keys.Clear()
	in.buttons.Clear()
}
