package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/gfx"
)

// SubTexture2D describes a UV sub-rect of a full texture. UVs follow the GL
// convention with v=0 on the bottom row.
type SubTexture2D struct {
	Texture gfx.Texture2D
	Min     mgl32.Vec2 // bottom-left
	Max     mgl32.Vec2 // top-right
}

// FromPixels builds a subtexture from a pixel rect measured from the
// bottom-left corner of tex.
func FromPixels(tex gfx.Texture2D, x, y, w, h int) SubTexture2D {
	tw, th := float32(tex.Width()), float32(tex.Height())
	return SubTexture2D{
		Texture: tex,
		Min:     mgl32.Vec2{float32(x) / tw, float32(y) / th},
		Max:     mgl32.Vec2{float32(x+w) / tw, float32(y+h) / th},
	}
}

// FromGrid builds a subtexture from cell (cx,cy) of a cellW x cellH grid.
// spanX/spanY select multi-cell sprites; zero means one cell.
func FromGrid(tex gfx.Texture2D, cx, cy, cellW, cellH, spanX, spanY int) SubTexture2D {
	spanX, spanY = max(spanX, 1), max(spanY, 1)
	return FromPixels(tex, cx*cellW, cy*cellH, spanX*cellW, spanY*cellH)
}

// UVs returns the corner coordinates in quad vertex order.
func (s SubTexture2D) UVs() [vertsPerQuad]mgl32.Vec2 {
	return [vertsPerQuad]mgl32.Vec2{
		{s.Min[0], s.Min[1]},
		{s.Max[0], s.Min[1]},
		{s.Max[0], s.Max[1]},
		{s.Min[0], s.Max[1]},
	}
}
