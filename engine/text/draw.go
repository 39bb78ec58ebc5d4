package text

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at pos in a Y-up space. size is
// the text height in world units per em; lines advance downwards.
func DrawText(r2d *renderer2d.Renderer2D, f *Font, pos mgl32.Vec3, size float32, s string, color colors.Color) {
	scale := size / f.SizePx
	penX := pos[0]
	baseY := pos[1] - f.Ascent*scale
	prev := rune(-1)

	for _, r := range s {
		if r == '\n' {
			penX = pos[0]
			baseY -= f.LineHeight() * scale
			prev = -1
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok := f.Glyphs[' ']; ok {
				penX += sp.Advance * scale
			}
			prev = r
			continue
		}
		penX += f.Kern(prev, r) * scale

		if g.W > 0 && g.H > 0 {
			w, h := float32(g.W)*scale, float32(g.H)*scale
			left := penX + g.BearingX*scale
			top := baseY + g.BearingY*scale
			r2d.DrawSubTexQuad(mgl32.Vec3{left + w*0.5, top - h*0.5, pos[2]}, mgl32.Vec2{w, h}, g.Sub, color)
		}
		penX += g.Advance * scale
		prev = r
	}
}

// MeasureText returns the extent DrawText would cover at size.
func MeasureText(f *Font, s string, size float32) (width, height float32) {
	var lineW float32
	prev := rune(-1)
	height = f.LineHeight()

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += f.LineHeight()
			prev = -1
			continue
		}
		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok := f.Glyphs[' ']; ok {
				lineW += sp.Advance
			}
			prev = r
			continue
		}
		lineW += f.Kern(prev, r) + g.Advance
		prev = r
	}
	width = max(width, lineW)
	scale := size / f.SizePx
	return width * scale, height * scale
}
