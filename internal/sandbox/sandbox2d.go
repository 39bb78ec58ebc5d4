package sandbox

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/profiler"
	"github.com/mashenka/mashenka/engine/scene"
)

// Sandbox2D exercises Renderer2D: flat and rotated quads, a tiled checkerboard
// and a gradient field large enough to span several batches.
type Sandbox2D struct {
	core.BaseLayer
	app        *core.Application
	r2d        *renderer2d.Renderer2D
	checker    gfx.Texture2D
	tile       renderer2d.SubTexture2D
	controller *scene.OrthographicCameraController
	rotation   float32

	SquareColor colors.Color
	// Clear makes the layer clear the screen before drawing.
	Clear bool
}

func NewSandbox2D(app *core.Application, r2d *renderer2d.Renderer2D, checker gfx.Texture2D) *Sandbox2D {
	w := app.Window()
	return &Sandbox2D{
		BaseLayer:   core.NewBaseLayer("Sandbox2D"),
		app:         app,
		r2d:         r2d,
		checker:     checker,
		tile:        renderer2d.FromGrid(checker, 1, 1, 8, 8, 2, 2),
		controller:  scene.NewOrthographicCameraController(float32(w.Width())/float32(w.Height()), true, app.Input()),
		SquareColor: colors.Color{0.2, 0.3, 0.8, 1},
	}
}

func (l *Sandbox2D) Camera() *scene.OrthographicCamera { return l.controller.Camera() }

func (l *Sandbox2D) OnDetach() {
	l.r2d.Shutdown()
	l.checker.Release()
}

func (l *Sandbox2D) OnUpdate(ts core.Timestep) {
	defer profiler.Start("Sandbox2D.OnUpdate")()

	l.controller.OnUpdate(ts)
	l.rotation += ts.Seconds() * 50

	l.r2d.ResetStats()
	if l.Clear {
		dev := l.r2d.Device()
		dev.SetClearColor(l.app.Config().ClearColor)
		dev.Clear()
	}

	if err := l.r2d.BeginScene(l.controller.Camera()); err != nil {
		return
	}
	l.r2d.DrawRotatedQuad(mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0.8, 0.8}, -45, colors.Red)
	l.r2d.DrawQuad(mgl32.Vec3{-1, 0, 0}, mgl32.Vec2{0.8, 0.8}, colors.Red)
	l.r2d.DrawQuad(mgl32.Vec3{0.5, -0.5, 0}, mgl32.Vec2{0.5, 0.75}, l.SquareColor)
	l.r2d.DrawTexturedQuad(mgl32.Vec3{0, 0, -0.1}, mgl32.Vec2{20, 20}, l.checker, 10, colors.White)
	l.r2d.DrawRotatedTexturedQuad(mgl32.Vec3{-2, 0, 0}, mgl32.Vec2{1, 1}, l.rotation, l.checker, 20, colors.White)
	l.r2d.DrawSubTexQuad(mgl32.Vec3{2, 1, 0}, mgl32.Vec2{1, 1}, l.tile, colors.White)
	l.r2d.EndScene()

	if err := l.r2d.BeginScene(l.controller.Camera()); err != nil {
		return
	}
	for y := float32(-5); y < 5; y += 0.5 {
		for x := float32(-5); x < 5; x += 0.5 {
			c := colors.Color{(x + 5) / 10, 0.4, (y + 5) / 10, 0.7}
			l.r2d.DrawQuad(mgl32.Vec3{x, y, 0}, mgl32.Vec2{0.45, 0.45}, c)
		}
	}
	l.r2d.EndScene()
}

func (l *Sandbox2D) OnImGuiRender() {
	if !l.app.ImGuiEnabled() {
		return
	}
	s := l.r2d.Stats()
	imgui.Begin("Renderer2D")
	imgui.Text("Renderer2D Stats:")
	imgui.Text(fmt.Sprintf("Draw Calls: %d", s.DrawCalls))
	imgui.Text(fmt.Sprintf("Quads: %d", s.QuadCount))
	imgui.Text(fmt.Sprintf("Vertices: %d", s.TotalVertexCount()))
	imgui.Text(fmt.Sprintf("Indices: %d", s.TotalIndexCount()))
	imgui.ColorEdit4("Square Color", (*[4]float32)(&l.SquareColor))
	imgui.End()
}

func (l *Sandbox2D) OnEvent(ev *core.Event) { l.controller.OnEvent(ev) }
