// Package ebitenwin hosts the engine inside an ebiten game loop. ebiten owns
// the main loop, so the window implements core.FrameDriver and runs one
// engine frame per Update tick.
package ebitenwin

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/logging"
)

// Drawer paints onto the screen during ebiten's Draw.
type Drawer func(screen *ebiten.Image)

// LayoutHook observes every Layout call with the outside size.
type LayoutHook func(width, height int)

type Window struct {
	props         core.WindowProps
	width, height int
	vsync         bool
	cb            core.EventCallback

	drawers []Drawer
	layouts []LayoutHook

	input   *inputState
	resized bool
	closed  bool
	frame   func() bool
	log     *slog.Logger
}

var (
	_ core.Window      = (*Window)(nil)
	_ core.FrameDriver = (*Window)(nil)
	_ ebiten.Game      = (*Window)(nil)
)

// NewWindow is a core.WindowFactory.
func NewWindow(props core.WindowProps) (core.Window, error) {
	return New(props), nil
}

func New(props core.WindowProps) *Window {
	w := &Window{
		props:  props,
		width:  props.Width,
		height: props.Height,
		input:  newInputState(),
		log:    logging.Core(),
	}
	w.log.Info("creating window", "title", props.Title, "width", props.Width, "height", props.Height)
	ebiten.SetWindowTitle(props.Title)
	ebiten.SetWindowSize(props.Width, props.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	w.SetVSync(props.VSync)
	return w
}

// AddDrawer registers a painter; drawers run in registration order.
func (w *Window) AddDrawer(d Drawer) { w.drawers = append(w.drawers, d) }

// OnLayout registers a hook that sees every Layout call.
func (w *Window) OnLayout(h LayoutHook) { w.layouts = append(w.layouts, h) }

// OnUpdate is a no-op: ebiten polls input and presents on its own.
func (w *Window) OnUpdate() {}

// Title is the title the window was created with.
func (w *Window) Title() string { return w.props.Title }

func (w *Window) Width() int                             { return w.width }
func (w *Window) Height() int                            { return w.height }
func (w *Window) SetEventCallback(cb core.EventCallback) { w.cb = cb }
func (w *Window) IsVSync() bool                          { return w.vsync }

func (w *Window) SetVSync(enabled bool) {
	ebiten.SetVsyncEnabled(enabled)
	w.vsync = enabled
}

// Close makes the next Update end the game loop.
func (w *Window) Close() { w.closed = true }

// Drive runs ebiten until frame returns false or the window is closed.
func (w *Window) Drive(frame func() bool) error {
	w.frame = frame
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (w *Window) emit(p core.Payload) {
	if w.cb != nil {
		w.cb(core.NewEvent(p))
	}
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.closed {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		w.emit(core.WindowCloseEvent{})
	}
	if w.resized {
		w.resized = false
		w.emit(core.WindowResizeEvent{Width: w.width, Height: w.height})
	}
	w.input.poll(w.emit)

	if w.frame != nil && !w.frame() {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	for _, d := range w.drawers {
		d(screen)
	}
}

// Layout implements ebiten.Game. Size changes are reported as a
// WindowResizeEvent at the start of the next Update.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	for _, h := range w.layouts {
		h(outsideWidth, outsideHeight)
	}
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.resized = true
	}
	return outsideWidth, outsideHeight
}
