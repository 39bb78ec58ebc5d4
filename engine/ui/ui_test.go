package ui

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/gfxtest"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(w, h float32) *View { return NewView().WidthFixed(w).HeightFixed(h) }

func pos(e Element) [2]float32 {
	x, y := e.Node().Pos()
	return [2]float32{x, y}
}

func size(e Element) [2]float32 {
	w, h := e.Node().Size()
	return [2]float32{w, h}
}

func TestVerticalViewStacksChildren(t *testing.T) {
	a, b := box(40, 20), box(60, 30)
	v := NewView(a, b).FlowDirection(LayoutVertical).Padding(5).Gap(10)

	res := v.Layout(&Context{}, Constraints{Max: [2]float32{800, 600}})

	assert.Equal(t, [2]float32{70, 70}, res.Size)
	assert.Equal(t, [2]float32{5, 5}, pos(a))
	assert.Equal(t, [2]float32{5, 35}, pos(b))
	assert.Same(t, Element(v), a.Node().Parent())
}

func TestHorizontalExpandTakesFreeSpace(t *testing.T) {
	a := box(50, 10)
	fill := NewView().WidthExpand().HeightFixed(10)
	v := NewView(a, fill).Gap(0).WidthFixed(200)

	v.Layout(&Context{}, Constraints{Max: [2]float32{800, 600}})

	assert.Equal(t, [2]float32{200, 10}, size(v))
	assert.Equal(t, [2]float32{50, 0}, pos(fill))
	assert.Equal(t, [2]float32{150, 10}, size(fill))
}

func TestCrossAlignment(t *testing.T) {
	tests := []struct {
		align Align
		x, w  float32
	}{
		{AlignStart, 0, 40},
		{AlignCenter, 30, 40},
		{AlignEnd, 60, 40},
		{AlignStretch, 0, 100},
	}
	for _, tt := range tests {
		child := box(40, 10)
		v := NewView(child).FlowDirection(LayoutVertical).WidthFixed(100).AlignCross(tt.align)
		v.Layout(&Context{}, Constraints{})
		assert.Equal(t, tt.x, pos(child)[0], "align %d", tt.align)
		assert.Equal(t, tt.w, size(child)[0], "align %d", tt.align)
	}
}

func TestMainAlignment(t *testing.T) {
	child := box(20, 10)
	v := NewView(child).WidthFixed(100).AlignMain(AlignEnd)
	v.Layout(&Context{}, Constraints{})
	assert.Equal(t, float32(80), pos(child)[0])
}

func TestNestedViewsAreOffsetByViewport(t *testing.T) {
	leaf := box(10, 10)
	inner := NewView(leaf).Padding(5)
	root := NewView(inner).Padding(10)

	// Nothing is colored, so no renderer is needed.
	ctx := &Context{Viewport: [4]float32{100, 50, 800, 600}}
	root.Draw(ctx)
	assert.Equal(t, [2]float32{110, 60}, pos(inner))
	assert.Equal(t, [2]float32{115, 65}, pos(leaf))

	// Layout is idempotent across frames.
	root.Draw(ctx)
	assert.Equal(t, [2]float32{115, 65}, pos(leaf))
}

func TestWorldRectFlipsY(t *testing.T) {
	ctx := &Context{Viewport: [4]float32{0, 0, 800, 600}, Depth: 0.5}
	p, s := ctx.worldRect([2]float32{10, 20}, [2]float32{100, 50})
	assert.Equal(t, mgl32.Vec3{60, 555, 0.5}, p)
	assert.Equal(t, mgl32.Vec2{100, 50}, s)
	assert.Equal(t, mgl32.Vec3{10, 580, 0.5}, ctx.worldPoint(10, 20))
}

func TestWrapText(t *testing.T) {
	measure := func(s string) float32 { return float32(len(s)) }
	tests := []struct {
		in    string
		limit float32
		want  string
	}{
		{"aa bb cc", 5, "aa bb\ncc"},
		{"abcdefgh x", 3, "abcdefgh\nx"},
		{"a\n\nb", 10, "a\n\nb"},
		{"short", 100, "short"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrapText(tt.in, tt.limit, measure), tt.in)
	}
}

type identityCamera struct{}

func (identityCamera) ViewProjectionMatrix() mgl32.Mat4 { return mgl32.Ident4() }

func TestLabelDrawsGlyphsOverBackground(t *testing.T) {
	d := gfxtest.NewDevice()
	r2d, err := renderer2d.New(d, gfx.ShaderSource{Vertex: "v", Fragment: "f"}, 100)
	require.NoError(t, err)
	t.Cleanup(r2d.Shutdown)
	font, err := text.LoadDefault(d, 16)
	require.NoError(t, err)
	t.Cleanup(font.Close)

	label := NewLabel("Hi").Padding(4)
	root := NewView(label).BgColor(colors.Black.WithAlpha(0.5))
	ctx := &Context{Viewport: [4]float32{0, 0, 800, 600}, DefaultFont: font, Renderer: r2d}

	require.NoError(t, r2d.BeginScene(identityCamera{}))
	root.Draw(ctx)
	require.NoError(t, r2d.EndScene())

	assert.Equal(t, 3, r2d.Stats().QuadCount)
	w, h := text.MeasureText(font, "Hi", 16)
	assert.Equal(t, [2]float32{w + 8, h + 8}, size(label))
}

func TestLabelWrapsAtMaxWidth(t *testing.T) {
	d := gfxtest.NewDevice()
	font, err := text.LoadDefault(d, 16)
	require.NoError(t, err)
	t.Cleanup(font.Close)

	word, _ := text.MeasureText(font, "word", 16)
	label := NewLabel("word word word").Font(font).MaxWidth(word * 1.5)
	label.Layout(&Context{}, Constraints{})
	assert.Equal(t, 2, strings.Count(label.lines, "\n"))
}
