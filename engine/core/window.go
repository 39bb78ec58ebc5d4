package core

// WindowProps describes the window to create.
type WindowProps struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

func DefaultWindowProps() WindowProps {
	return WindowProps{Title: "Mashenka Engine", Width: 1280, Height: 720, VSync: true}
}

// EventCallback receives every event a window produces.
type EventCallback func(ev *Event)

// Window abstracts a native window. It delivers events through the single
// registered callback; setting a new callback replaces the old one.
type Window interface {
	// OnUpdate polls platform events and presents the frame.
	OnUpdate()
	Width() int
	Height() int
	SetEventCallback(cb EventCallback)
	SetVSync(enabled bool)
	IsVSync() bool
	Close()
}

// WindowFactory creates the platform window.
type WindowFactory func(props WindowProps) (Window, error)

// FrameDriver is implemented by windows whose platform owns the main loop.
// Drive calls frame once per tick until it returns false.
type FrameDriver interface {
	Drive(frame func() bool) error
}
