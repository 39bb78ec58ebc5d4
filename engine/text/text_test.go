package text_test

import (
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/gfxtest"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

type identityCamera struct{}

func (identityCamera) ViewProjectionMatrix() mgl32.Mat4 { return mgl32.Ident4() }

func loadDefault(t *testing.T, d *gfxtest.Device) *text.Font {
	t.Helper()
	f, err := text.LoadDefault(d, 16)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestLoadDefaultBuildsAtlas(t *testing.T) {
	d := gfxtest.NewDevice()
	f := loadDefault(t, d)

	require.Len(t, d.Textures, 1)
	spec := d.Textures[0].Spec
	assert.Equal(t, f.AtlasSize, spec.Width)
	assert.Len(t, spec.Pixels, f.AtlasSize*f.AtlasSize*4)
	assert.Equal(t, gfx.FilterNearest, spec.Filter)

	assert.Greater(t, f.Ascent, float32(0))
	assert.Less(t, f.Descent, float32(0))
	assert.Greater(t, f.LineHeight(), f.Ascent)

	a, ok := f.Glyphs['A']
	require.True(t, ok)
	assert.Positive(t, a.W)
	assert.Positive(t, a.H)
	assert.Positive(t, a.Advance)
	assert.Same(t, f.Texture, a.Sub.Texture)
	for _, uv := range []mgl32.Vec2{a.Sub.Min, a.Sub.Max} {
		assert.GreaterOrEqual(t, uv[0], float32(0))
		assert.LessOrEqual(t, uv[0], float32(1))
		assert.GreaterOrEqual(t, uv[1], float32(0))
		assert.LessOrEqual(t, uv[1], float32(1))
	}
	assert.Less(t, a.Sub.Min[1], a.Sub.Max[1])

	space, ok := f.Glyphs[' ']
	require.True(t, ok)
	assert.Zero(t, space.W)
	assert.Positive(t, space.Advance)
}

func TestLoadTTF(t *testing.T) {
	d := gfxtest.NewDevice()
	fsys := fstest.MapFS{"fonts/Go-Regular.ttf": {Data: goregular.TTF}}

	f, err := text.LoadTTF(d, fsys, "fonts/Go-Regular.ttf", 12)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, float32(12), f.SizePx)

	_, err = text.LoadTTF(d, fsys, "fonts/missing.ttf", 12)
	assert.ErrorContains(t, err, "read font")

	_, err = text.LoadFont(d, []byte("garbage"), 12)
	assert.ErrorContains(t, err, "parse font")
}

func TestMeasureText(t *testing.T) {
	f := loadDefault(t, gfxtest.NewDevice())

	w1, h1 := text.MeasureText(f, "A", 16)
	w2, h2 := text.MeasureText(f, "AA", 16)
	assert.Greater(t, w2, w1)
	assert.Equal(t, h1, h2)
	assert.Equal(t, f.LineHeight(), h1)

	_, h3 := text.MeasureText(f, "A\nA", 16)
	assert.Equal(t, 2*f.LineHeight(), h3)

	w4, h4 := text.MeasureText(f, "AA", 32)
	assert.InDelta(t, 2*w2, w4, 1e-4)
	assert.InDelta(t, 2*h2, h4, 1e-4)
}

func TestDrawTextEmitsOneQuadPerVisibleGlyph(t *testing.T) {
	d := gfxtest.NewDevice()
	f := loadDefault(t, d)
	r2d, err := renderer2d.New(d, gfx.ShaderSource{Vertex: "v", Fragment: "f"}, 100)
	require.NoError(t, err)

	require.NoError(t, r2d.BeginScene(identityCamera{}))
	text.DrawText(r2d, f, mgl32.Vec3{0, 0, 0}, 16, "Hi there\nok", colors.White)
	require.NoError(t, r2d.EndScene())

	assert.Equal(t, 9, r2d.Stats().QuadCount)
	require.Len(t, d.Draws, 1)
	assert.Same(t, f.Texture, d.Draws[0].Textures[1])

	// Every glyph sits below the top-left origin.
	verts := d.Draws[0].Vertices
	for i := 0; i < len(verts); i += 10 {
		assert.LessOrEqual(t, verts[i+1], float32(0.5))
		assert.GreaterOrEqual(t, verts[i], float32(-1))
	}
}
