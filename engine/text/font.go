// Package text builds glyph atlases from TrueType fonts and draws strings
// through the 2D renderer.
package text

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/assets"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	atlasPadding = 2
	maxAtlasSize = 4096
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int
	Sub      renderer2d.SubTexture2D
}

type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  gfx.Texture2D
	AtlasSize                int
	face                     font.Face
}

// Close releases the face and the atlas texture.
func (f *Font) Close() {
	if f == nil {
		return
	}
	if f.face != nil {
		_ = f.face.Close()
		f.face = nil
	}
	if f.Texture != nil {
		f.Texture.Release()
		f.Texture = nil
	}
}

// LineHeight is the baseline-to-baseline distance in atlas pixels.
func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

// Kern returns the pair adjustment in pixels.
func (f *Font) Kern(a, b rune) float32 {
	if f.face == nil || a < 0 {
		return 0
	}
	return float32(f.face.Kern(a, b)) / 64.0
}

// LoadDefault builds an atlas from the embedded Go Regular font.
func LoadDefault(d gfx.Device, sizePx float32) (*Font, error) {
	return LoadFont(d, goregular.TTF, sizePx)
}

// LoadTTF reads a font file from fsys.
func LoadTTF(d gfx.Device, fsys fs.FS, path string, sizePx float32) (*Font, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return LoadFont(d, data, sizePx)
}

// atlasRunes is printable ASCII plus Latin-1.
func atlasRunes() []rune {
	var runes []rune
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}
	for r := rune(160); r <= 255; r++ {
		runes = append(runes, r)
	}
	return runes
}

type measured struct {
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// LoadFont builds a white glyph atlas (alpha coverage) and uploads it as an
// RGBA texture with bottom-left origin.
func LoadFont(d gfx.Device, ttf []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	var glyphs []measured
	for _, r := range atlasRunes() {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, measured{
			r:   r,
			w:   (br.Max.X - br.Min.X).Round(),
			h:   (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()),
		})
	}

	size, pos, err := packShelves(glyphs, 256)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	out := make(map[rune]Glyph, len(glyphs))
	for _, g := range glyphs {
		glyph := Glyph{Rune: g.r, Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			glyph.Sub.Min, glyph.Sub.Max = atlasUVs(p, g.w, g.h, size)
		}
		out[g.r] = glyph
	}

	img := assets.FromImage(dst)
	assets.FlipRows(img.Pixels, img.Width, img.Height)
	tex, err := d.CreateTexture2D(gfx.TextureSpec{
		Width: size, Height: size,
		Pixels: img.Pixels,
		Filter: gfx.FilterNearest,
		Wrap:   gfx.WrapClamp,
	})
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	for r, g := range out {
		g.Sub.Texture = tex
		out[r] = g
	}

	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs:    out,
		Texture:   tex,
		AtlasSize: size,
		face:      face,
	}, nil
}

// atlasUVs converts a top-left pixel rect of the atlas image into bottom-left
// UVs, matching the flipped upload.
func atlasUVs(p image.Point, w, h, size int) (mgl32.Vec2, mgl32.Vec2) {
	s := float32(size)
	return mgl32.Vec2{float32(p.X) / s, 1 - float32(p.Y+h)/s},
		mgl32.Vec2{float32(p.X+w) / s, 1 - float32(p.Y)/s}
}

// packShelves places glyphs row by row, doubling the square atlas until
// everything fits. Empty glyphs (space) get no cell.
func packShelves(glyphs []measured, start int) (int, map[rune]image.Point, error) {
	for size := start; size <= maxAtlasSize; size *= 2 {
		pos := make(map[rune]image.Point, len(glyphs))
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		for _, g := range glyphs {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+2*atlasPadding > size || g.h+2*atlasPadding > size {
				fits = false
				break
			}
			if x+g.w+atlasPadding > size {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if y+g.h+atlasPadding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			rowH = max(rowH, g.h)
		}
		if fits {
			return size, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas too large (>%d)", maxAtlasSize)
}
