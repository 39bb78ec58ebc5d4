package sandbox

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/gfxtest"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct{ w, h int }

func (fakeWindow) OnUpdate()                           {}
func (f fakeWindow) Width() int                        { return f.w }
func (f fakeWindow) Height() int                       { return f.h }
func (fakeWindow) SetEventCallback(core.EventCallback) {}
func (fakeWindow) SetVSync(bool)                       {}
func (fakeWindow) IsVSync() bool                       { return true }
func (fakeWindow) Close()                              {}

type fixture struct {
	dev *gfxtest.Device
	r   *gfx.Renderer
	app *core.Application
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dev := gfxtest.NewDevice()
	r := gfx.NewRenderer(dev)
	require.NoError(t, r.Init())
	app := core.NewApplication(core.DefaultConfig(), fakeWindow{1280, 720})
	return fixture{dev: dev, r: r, app: app}
}

func (f fixture) checker(t *testing.T) gfx.Texture2D {
	t.Helper()
	tex, err := f.dev.CreateTexture2D(gfx.TextureSpec{Width: 64, Height: 64, Pixels: make([]byte, 64*64*4)})
	require.NoError(t, err)
	return tex
}

func (f fixture) renderer2D(t *testing.T) *renderer2d.Renderer2D {
	t.Helper()
	r2d, err := renderer2d.New(f.dev, gfx.ShaderSource{Vertex: "v", Fragment: "f"}, 1000)
	require.NoError(t, err)
	return r2d
}

func TestSetupPushesLayers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, Setup(f.app, f.r, Options{Example: true, Stats: true}))
	assert.Equal(t, 3, f.app.Layers().Len())

	var names []string
	for l := range f.app.Layers().Layers() {
		names = append(names, l.Name())
	}
	assert.Equal(t, []string{"Example", "Sandbox2D", "Stats"}, names)

	f.app.Layers().Close()
	for _, tex := range f.dev.Textures {
		assert.True(t, tex.Released, "texture %d", tex.ID())
	}
	for _, sh := range f.dev.Shaders {
		assert.True(t, sh.Released, "shader %s", sh.Name())
	}
	assert.Zero(t, f.dev.Live())
}

func TestEmbeddedAssetsParse(t *testing.T) {
	f := newFixture(t)
	lib := gfx.NewShaderLibrary(f.dev)
	t.Cleanup(lib.Release)

	for _, p := range []string{"shaders/FlatColor.glsl", "shaders/Texture.glsl", "shaders/Renderer2D.glsl"} {
		sh, err := lib.Load(Assets(), p)
		require.NoError(t, err, p)
		src := sh.(*gfxtest.Shader).Source
		assert.Contains(t, src.Vertex, "u_ViewProjection", p)
		assert.NotEmpty(t, src.Fragment, p)
	}
	flat, err := lib.Get("FlatColor")
	require.NoError(t, err)
	assert.Contains(t, flat.(*gfxtest.Shader).Source.Kage, "package main")
}

func TestExampleLayerSubmitsGridAndTexture(t *testing.T) {
	f := newFixture(t)
	checker := f.checker(t)
	l, err := NewExampleLayer(f.app, f.r, Assets(), checker)
	require.NoError(t, err)
	t.Cleanup(l.OnDetach)

	l.OnUpdate(0.016)

	assert.False(t, f.r.SceneActive())
	require.Len(t, f.dev.Draws, gridSize*gridSize+1)
	first := f.dev.Draws[0]
	assert.Equal(t, "FlatColor", first.Shader.Name())
	assert.Equal(t, l.SquareColor.Vec4(), first.Uniforms["u_Color"])
	assert.Equal(t, mgl32.Scale3D(gridScale, gridScale, gridScale), first.Uniforms["u_Transform"])

	last := f.dev.Draws[len(f.dev.Draws)-1]
	assert.Equal(t, "Texture", last.Shader.Name())
	assert.Equal(t, int32(0), last.Uniforms["u_Texture"])
	assert.Same(t, checker, gfx.Texture2D(last.Textures[0]))
	assert.Equal(t, f.app.Config().ClearColor, f.dev.ClearColor)
}

func TestExampleLayerReportsSceneErrors(t *testing.T) {
	f := newFixture(t)
	l, err := NewExampleLayer(f.app, f.r, Assets(), f.checker(t))
	require.NoError(t, err)
	t.Cleanup(l.OnDetach)

	// A scene left open elsewhere makes BeginScene fail; nothing is drawn
	// and the foreign scene stays open.
	require.NoError(t, f.r.BeginScene(l.Camera()))
	assert.ErrorIs(t, l.drawScene(), gfx.ErrSceneActive)
	assert.Empty(t, f.dev.Draws)
	assert.True(t, f.r.SceneActive())
	require.NoError(t, f.r.EndScene())

	require.NoError(t, l.drawScene())
	assert.Len(t, f.dev.Draws, gridSize*gridSize+1)
	assert.False(t, f.r.SceneActive())
}

func TestSandbox2DBatchesQuads(t *testing.T) {
	f := newFixture(t)
	l := NewSandbox2D(f.app, f.renderer2D(t), f.checker(t))
	l.Clear = true

	l.OnUpdate(0.016)
	s := l.r2d.Stats()
	assert.Equal(t, 6+20*20, s.QuadCount)
	assert.Equal(t, 2, s.DrawCalls)
	assert.Contains(t, f.dev.Ops(), "Clear")

	// Stats are per frame.
	l.OnUpdate(0.016)
	assert.Equal(t, 6+20*20, l.r2d.Stats().QuadCount)
	assert.InDelta(t, 1.6, l.rotation, 1e-4)

	l.OnDetach()
	assert.True(t, l.checker.(*gfxtest.Texture).Released)
}

func TestStatsOverlay(t *testing.T) {
	f := newFixture(t)
	r2d := f.renderer2D(t)
	t.Cleanup(r2d.Shutdown)
	font, err := text.LoadDefault(f.dev, 32)
	require.NoError(t, err)
	l := NewStatsOverlay(f.app, f.dev, r2d, font)
	t.Cleanup(l.OnDetach)

	l.OnUpdate(0.016)
	drawn := r2d.Stats().QuadCount
	assert.Greater(t, drawn, 1)
	assert.Equal(t, 1, l.frame)

	ev := core.NewEvent(core.KeyPressedEvent{Key: core.KeyF3})
	l.OnEvent(ev)
	assert.True(t, ev.Handled())
	assert.False(t, l.Visible)

	r2d.ResetStats()
	l.OnUpdate(0.016)
	assert.Zero(t, r2d.Stats().QuadCount)
	assert.Equal(t, 2, l.frame)

	resize := core.NewEvent(core.WindowResizeEvent{Width: 800, Height: 600})
	l.OnEvent(resize)
	assert.False(t, resize.Handled())
	assert.Equal(t, float32(800), l.width)
	assert.Equal(t, mgl32.Ortho(0, 800, 0, 600, -1, 1), l.camera.ProjectionMatrix())
}
