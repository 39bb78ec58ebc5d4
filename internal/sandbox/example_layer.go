package sandbox

import (
	"io/fs"
	"log/slog"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/logging"
	"github.com/mashenka/mashenka/engine/scene"
)

const (
	gridSize    = 10
	gridSpacing = 0.11
	gridScale   = 0.1
)

// ExampleLayer drives gfx.Renderer directly: a grid of flat-colored squares
// and a textured square, both from the same unit-square mesh.
type ExampleLayer struct {
	core.BaseLayer
	app        *core.Application
	renderer   *gfx.Renderer
	shaders    *gfx.ShaderLibrary
	square     gfx.VertexArray
	checker    gfx.Texture2D
	controller *scene.OrthographicCameraController

	SquareColor colors.Color
	log         *slog.Logger
}

func NewExampleLayer(app *core.Application, r *gfx.Renderer, fsys fs.FS, checker gfx.Texture2D) (*ExampleLayer, error) {
	dev := r.Device()
	square, err := gfx.NewMesh(dev, []float32{
		-0.5, -0.5, 0, 0, 0,
		0.5, -0.5, 0, 1, 0,
		0.5, 0.5, 0, 1, 1,
		-0.5, 0.5, 0, 0, 1,
	}, gfx.NewBufferLayout(
		gfx.BufferElement{Name: "a_Position", Type: gfx.Float3},
		gfx.BufferElement{Name: "a_TexCoord", Type: gfx.Float2},
	), []uint32{0, 1, 2, 2, 3, 0})
	if err != nil {
		return nil, err
	}

	lib := gfx.NewShaderLibrary(dev)
	for _, p := range []string{"shaders/FlatColor.glsl", "shaders/Texture.glsl"} {
		if _, err := lib.Load(fsys, p); err != nil {
			lib.Release()
			square.Release()
			return nil, err
		}
	}
	tex, _ := lib.Get("Texture")
	tex.Bind()
	tex.UploadUniformInt("u_Texture", 0)

	w := app.Window()
	return &ExampleLayer{
		BaseLayer:   core.NewBaseLayer("Example"),
		app:         app,
		renderer:    r,
		shaders:     lib,
		square:      square,
		checker:     checker,
		controller:  scene.NewOrthographicCameraController(float32(w.Width())/float32(w.Height()), true, app.Input()),
		SquareColor: colors.Color{0.2, 0.3, 0.8, 1},
		log:         logging.Client(),
	}, nil
}

func (l *ExampleLayer) Camera() *scene.OrthographicCamera { return l.controller.Camera() }

func (l *ExampleLayer) OnDetach() {
	l.shaders.Release()
	l.square.Release()
}

func (l *ExampleLayer) OnUpdate(ts core.Timestep) {
	l.controller.OnUpdate(ts)

	dev := l.renderer.Device()
	dev.SetClearColor(l.app.Config().ClearColor)
	dev.Clear()

	if err := l.drawScene(); err != nil {
		l.log.Warn("example scene", "error", err)
	}
}

// drawScene submits the grid and the textured square, stopping at the first
// failed submit.
func (l *ExampleLayer) drawScene() (err error) {
	if err := l.renderer.BeginScene(l.controller.Camera()); err != nil {
		return err
	}
	defer func() {
		if endErr := l.renderer.EndScene(); err == nil {
			err = endErr
		}
	}()

	flat, _ := l.shaders.Get("FlatColor")
	flat.Bind()
	flat.UploadUniformFloat4("u_Color", l.SquareColor.Vec4())
	scale := mgl32.Scale3D(gridScale, gridScale, gridScale)
	for y := range gridSize {
		for x := range gridSize {
			t := mgl32.Translate3D(float32(x)*gridSpacing, float32(y)*gridSpacing, 0)
			if err := l.renderer.Submit(flat, l.square, t.Mul4(scale)); err != nil {
				return err
			}
		}
	}

	tex, _ := l.shaders.Get("Texture")
	tex.Bind()
	tex.UploadUniformFloat4("u_Color", colors.White.Vec4())
	l.checker.Bind(0)
	return l.renderer.Submit(tex, l.square, mgl32.Translate3D(-1, 0, 0).Mul4(mgl32.Scale3D(1.5, 1.5, 1)))
}

func (l *ExampleLayer) OnImGuiRender() {
	if !l.app.ImGuiEnabled() {
		return
	}
	imgui.Begin("Settings")
	imgui.ColorEdit4("Square Color", (*[4]float32)(&l.SquareColor))
	imgui.End()
}

func (l *ExampleLayer) OnEvent(ev *core.Event) {
	l.controller.OnEvent(ev)
	core.Dispatch(core.NewEventDispatcher(ev), func(e core.KeyPressedEvent) bool {
		if e.Key == core.KeyTab {
			logging.Trace(l.log, "tab pressed")
		}
		return false
	})
}
