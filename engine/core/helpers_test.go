package core_test

import (
	"github.com/mashenka/mashenka/engine/core"
)

// recorder collects lifecycle calls from several layers in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

type testLayer struct {
	core.BaseLayer
	rec      *recorder
	handle   core.EventType
	updates  int
	lastStep core.Timestep
	onUpdate func()
}

func newTestLayer(name string, rec *recorder) *testLayer {
	return &testLayer{BaseLayer: core.NewBaseLayer(name), rec: rec}
}

func (l *testLayer) OnAttach()      { l.rec.add(l.Name() + ".attach") }
func (l *testLayer) OnDetach()      { l.rec.add(l.Name() + ".detach") }
func (l *testLayer) OnImGuiRender() { l.rec.add(l.Name() + ".imgui") }

func (l *testLayer) OnUpdate(ts core.Timestep) {
	l.updates++
	l.lastStep = ts
	l.rec.add(l.Name() + ".update")
	if l.onUpdate != nil {
		l.onUpdate()
	}
}

func (l *testLayer) OnEvent(ev *core.Event) {
	l.rec.add(l.Name() + ".event")
	if ev.Type() == l.handle {
		ev.MarkHandled()
	}
}

type fakeWindow struct {
	w, h    int
	vsync   bool
	cb      core.EventCallback
	updates int
	closed  bool
	onPoll  func(fw *fakeWindow)
}

func (w *fakeWindow) OnUpdate() {
	w.updates++
	if w.onPoll != nil {
		w.onPoll(w)
	}
}
func (w *fakeWindow) Width() int                             { return w.w }
func (w *fakeWindow) Height() int                            { return w.h }
func (w *fakeWindow) SetEventCallback(cb core.EventCallback) { w.cb = cb }
func (w *fakeWindow) SetVSync(enabled bool)                  { w.vsync = enabled }
func (w *fakeWindow) IsVSync() bool                          { return w.vsync }
func (w *fakeWindow) Close()                                 { w.closed = true }

func (w *fakeWindow) emit(p core.Payload) *core.Event {
	ev := core.NewEvent(p)
	w.cb(ev)
	return ev
}

type fakeRenderer struct {
	inits, shutdowns int
	viewports        [][2]int
}

func (r *fakeRenderer) Init() error { r.inits++; return nil }
func (r *fakeRenderer) OnWindowResize(width, height int) {
	r.viewports = append(r.viewports, [2]int{width, height})
}
func (r *fakeRenderer) Shutdown() { r.shutdowns++ }

type fakeImGui struct {
	*testLayer
}

func (g fakeImGui) Begin() { g.rec.add("imgui.begin") }
func (g fakeImGui) End()   { g.rec.add("imgui.end") }
