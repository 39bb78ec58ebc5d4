// Package assets loads textures and shader sources from an fs.FS.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"

	"github.com/mashenka/mashenka/engine/gfx"
)

// Image is tightly packed RGBA8 (stride == 4*Width), top-left origin.
type Image struct {
	Width, Height int
	Pixels        []byte
}

// LoadPNG decodes a PNG into tight RGBA8 rows.
func LoadPNG(fsys fs.FS, path string) (Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode png %q: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image to tight RGBA8.
func FromImage(img image.Image) Image {
	rgba := imageToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
	}
	return Image{Width: w, Height: h, Pixels: out}
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// FlipRows reverses row order in place, converting between top-left and the
// GPU's bottom-left origin.
func FlipRows(pix []byte, width, height int) {
	stride := width * 4
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// LoadTexture2D loads a PNG, flips it to bottom-left origin and uploads it.
func LoadTexture2D(d gfx.Device, fsys fs.FS, path string, filter gfx.TextureFilter) (gfx.Texture2D, error) {
	img, err := LoadPNG(fsys, path)
	if err != nil {
		return nil, err
	}
	FlipRows(img.Pixels, img.Width, img.Height)
	tex, err := d.CreateTexture2D(gfx.TextureSpec{
		Width:  img.Width,
		Height: img.Height,
		Pixels: img.Pixels,
		Filter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", path, err)
	}
	return tex, nil
}
