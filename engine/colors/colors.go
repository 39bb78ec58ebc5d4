// Package colors holds RGBA colors in linear [0..1] floats.
package colors

import "github.com/go-gl/mathgl/mgl32"

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.1, 0.1, 0.1, 1}
	Transparent = Color{}
)

func RGB(r, g, b float32) Color { return Color{r, g, b, 1} }

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

func (c Color) Vec4() mgl32.Vec4 { return mgl32.Vec4(c) }
func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3{c[0], c[1], c[2]} }

// Premultiplied scales the color channels by alpha.
func (c Color) Premultiplied() Color {
	return Color{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}
