// Package gui provides the Dear ImGui overlay for the ebiten host.
package gui

import (
	"errors"
	"fmt"
	"log/slog"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/platform/ebitenwin"
)

var ErrUnsupportedWindow = errors.New("gui: window is not an ebiten host window")

// Layer brackets every frame's OnImGuiRender pass with an ImGui frame and
// paints the result on top of the host window.
type Layer struct {
	core.BaseLayer
	backend *ebitenbackend.EbitenBackend

	// BlockEvents stops input events ImGui wants to capture from reaching
	// the layers below.
	BlockEvents bool
	// ShowDemo opens the ImGui demo window every frame.
	ShowDemo bool

	log *slog.Logger
}

var _ core.ImGuiLayer = (*Layer)(nil)

// NewLayer is a core.Host ImGui factory. It only supports ebiten windows.
func NewLayer(win core.Window) (core.ImGuiLayer, error) {
	ew, ok := win.(*ebitenwin.Window)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedWindow, win)
	}
	return New(ew, ew.Title()), nil
}

// New creates the ImGui context and hooks its drawing into win. Register it
// after the renderer so the overlay paints last.
func New(win *ebitenwin.Window, title string) *Layer {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, win.Width(), win.Height())
	imgui.CurrentIO().SetIniFilename("")

	l := &Layer{
		BaseLayer:   core.NewBaseLayer("ImGuiLayer"),
		backend:     backend,
		BlockEvents: true,
		log:         logging.Core(),
	}
	win.AddDrawer(backend.Draw)
	win.OnLayout(func(w, h int) { backend.Layout(w, h) })
	return l
}

func (l *Layer) OnAttach() {
	imgui.StyleColorsDark()
	l.log.Info("imgui attached")
}

func (l *Layer) OnDetach() {
	l.log.Info("imgui detached")
}

func (l *Layer) OnImGuiRender() {
	if l.ShowDemo {
		imgui.ShowDemoWindow()
	}
}

func (l *Layer) OnEvent(ev *core.Event) {
	if !l.BlockEvents {
		return
	}
	io := imgui.CurrentIO()
	ev.SetHandled(captures(ev, io.WantCaptureMouse(), io.WantCaptureKeyboard()))
}

func (l *Layer) Begin() { l.backend.BeginFrame() }
func (l *Layer) End()   { l.backend.EndFrame() }

// captures reports whether ImGui claims ev given its capture flags.
func captures(ev *core.Event, wantMouse, wantKeyboard bool) bool {
	return (wantMouse && ev.IsInCategory(core.CategoryMouse)) ||
		(wantKeyboard && ev.IsInCategory(core.CategoryKeyboard))
}
