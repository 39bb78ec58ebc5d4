package core

import (
	"log/slog"
	"time"

	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/profiler"
)

// State is the application lifecycle state.
type State int

const (
	StateConstructing State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Renderer is the part of the rendering backend the application drives.
type Renderer interface {
	Init() error
	OnWindowResize(width, height int)
	Shutdown()
}

// ImGuiLayer is an overlay that brackets the per-frame OnImGuiRender pass.
type ImGuiLayer interface {
	Layer
	Begin()
	End()
}

// Application owns the window and the layer stack and runs the main loop.
type Application struct {
	cfg       Config
	window    Window
	renderer  Renderer
	imgui     ImGuiLayer
	layers    LayerStack
	input     *Input
	state     State
	minimized bool
	lastFrame time.Time
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Application)

// WithRenderer lets window resizes update the renderer viewport.
func WithRenderer(r Renderer) Option { return func(a *Application) { a.renderer = r } }

// WithImGui pushes l as an overlay and brackets OnImGuiRender with it.
func WithImGui(l ImGuiLayer) Option { return func(a *Application) { a.imgui = l } }

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option { return func(a *Application) { a.now = now } }

// NewApplication takes ownership of window and routes its events to OnEvent.
func NewApplication(cfg Config, window Window, opts ...Option) *Application {
	a := &Application{
		cfg:    cfg,
		window: window,
		input:  NewInput(),
		now:    time.Now,
		log:    logging.Core(),
	}
	for _, opt := range opts {
		opt(a)
	}
	window.SetEventCallback(a.OnEvent)
	if a.imgui != nil {
		a.layers.PushOverlay(a.imgui)
	}
	return a
}

func (a *Application) Config() Config           { return a.cfg }
func (a *Application) Window() Window           { return a.window }
func (a *Application) Input() *Input            { return a.input }
func (a *Application) State() State             { return a.state }
func (a *Application) Layers() *LayerStack      { return &a.layers }
func (a *Application) ImGuiEnabled() bool       { return a.imgui != nil }
func (a *Application) PushLayer(l Layer)        { a.layers.PushLayer(l) }
func (a *Application) PushOverlay(l Layer)      { a.layers.PushOverlay(l) }
func (a *Application) PopLayer(l Layer) error   { return a.layers.PopLayer(l) }
func (a *Application) PopOverlay(l Layer) error { return a.layers.PopOverlay(l) }

// Close asks the main loop to stop after the current frame.
func (a *Application) Close() {
	if a.state != StateStopped {
		a.log.Info("application stopping")
	}
	a.state = StateStopped
}

// OnEvent handles window events first, then offers ev to the layers from the
// top of the stack down until one of them marks it handled.
func (a *Application) OnEvent(ev *Event) {
	logging.Trace(a.log, "event", "event", ev.String())
	a.input.Handle(ev)

	d := NewEventDispatcher(ev)
	Dispatch(d, a.onWindowClose)
	Dispatch(d, a.onWindowResize)

	for l := range a.layers.Reverse() {
		if ev.Handled() {
			break
		}
		l.OnEvent(ev)
	}
}

func (a *Application) onWindowClose(WindowCloseEvent) bool {
	a.Close()
	return true
}

// Resizes stay unhandled so layers (cameras) can react to them too.
func (a *Application) onWindowResize(e WindowResizeEvent) bool {
	if e.Width <= 0 || e.Height <= 0 {
		a.minimized = true
		return false
	}
	a.minimized = false
	if a.renderer != nil {
		a.renderer.OnWindowResize(e.Width, e.Height)
	}
	return false
}

// Run enters the main loop and returns once the application stops. The layer
// stack is closed before Run returns.
func (a *Application) Run() error {
	if a.state != StateConstructing {
		return ErrNotConstructing
	}
	a.state = StateRunning
	a.lastFrame = a.now()
	a.log.Info("application running", "window", a.cfg.Window.Title, "layers", a.layers.Len())
	defer a.shutdown()

	if d, ok := a.window.(FrameDriver); ok {
		return d.Drive(a.Frame)
	}
	for a.state == StateRunning {
		a.Frame()
		a.window.OnUpdate()
	}
	return nil
}

// Frame runs one loop iteration: layer updates, then the ImGui pass. It
// reports whether the application is still running.
func (a *Application) Frame() bool {
	if a.state != StateRunning {
		return false
	}
	defer profiler.Start("Application.Frame")()

	now := a.now()
	ts := Timestep(now.Sub(a.lastFrame).Seconds())
	a.lastFrame = now

	if !a.minimized {
		end := profiler.Start("LayerStack.OnUpdate")
		for l := range a.layers.Layers() {
			l.OnUpdate(ts)
		}
		end()
	}

	end := profiler.Start("LayerStack.OnImGuiRender")
	if a.imgui != nil {
		a.imgui.Begin()
	}
	for l := range a.layers.Layers() {
		l.OnImGuiRender()
	}
	if a.imgui != nil {
		a.imgui.End()
	}
	end()

	return a.state == StateRunning
}

func (a *Application) shutdown() {
	a.state = StateStopped
	a.layers.Close()
	a.log.Info("Engine exit")
}
