package ebitengfx

import (
	"image/color"
	"iter"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx"
)

// ndcToPixel maps a clip-space position to canvas pixels with y pointing down.
func ndcToPixel(clip mgl32.Vec4, width, height int) (float32, float32) {
	w := clip[3]
	if w == 0 {
		w = 1
	}
	nx, ny := clip[0]/w, clip[1]/w
	return (nx + 1) * 0.5 * float32(width), (1 - ny) * 0.5 * float32(height)
}

// premultiply converts straight-alpha RGBA8 pixels to premultiplied alpha.
func premultiply(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint16(pix[i+3])
		out[i] = byte(uint16(pix[i]) * a / 255)
		out[i+1] = byte(uint16(pix[i+1]) * a / 255)
		out[i+2] = byte(uint16(pix[i+2]) * a / 255)
		out[i+3] = pix[i+3]
	}
	return out
}

func toNRGBA(c colors.Color) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

// kageUniformName maps "u_Color" to the exported Kage variable "Color".
func kageUniformName(name string) string {
	return strings.TrimPrefix(name, "u_")
}

// kageValues yields the uniforms a Kage program can take. Matrices are
// consumed by the CPU transform and skipped.
func kageValues(uniforms map[string]any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for name, v := range uniforms {
			var out any
			switch v := v.(type) {
			case float32:
				out = v
			case int32:
				out = int(v)
			case []int32:
				ints := make([]int, len(v))
				for i, x := range v {
					ints[i] = int(x)
				}
				out = ints
			case mgl32.Vec2:
				out = v[:]
			case mgl32.Vec3:
				out = v[:]
			case mgl32.Vec4:
				out = v[:]
			default:
				continue
			}
			if !yield(kageUniformName(name), out) {
				return
			}
		}
	}
}

// vertexReader reads named attributes out of interleaved float data.
// Offsets are in floats; -1 marks a missing attribute.
type vertexReader struct {
	stride        int
	pos, posN     int
	color, colorN int
	uv, texIndex  int
}

func newVertexReader(l gfx.BufferLayout) vertexReader {
	r := vertexReader{stride: l.Stride() / 4, posOff: -1, colorOff: -1, uvOff: -1, texIndexOff: -1}
	if e, ok := l.Element("a_Position"); ok {
		r.posOff, r.posN = e.Offset/4, e.Type.ComponentCount()
	}
	if e, ok := l.Element("a_Color"); ok {
		r.colorOff, r.colorN = e.Offset/4, e.Type.ComponentCount()
	}
	if e, ok := l.Element("a_TexCoord"); ok {
		r.uvOff = e.Offset / 4
	}
	if e, ok := l.Element("a_TexIndex"); ok {
		r.texIndexOff = e.Offset / 4
	}
	if r.stride == 0 {
		r.stride = 1
	}
	return r
}

func (r vertexReader) hasPosition() bool { return r.posOff >= 0 }
func (r vertexReader) hasTexIndex() bool { return r.texIndexOff >= 0 }

func (r vertexReader) position(data []float32, v int) mgl32.Vec4 {
	base := v*r.stride + r.posOff
	p := mgl32.Vec4{0, 0, 0, 1}
	for i := 0; i < r.posN && i < 4; i++ {
		p[i] = data[base+i]
	}
	return p
}

func (r vertexReader) color(data []float32, v int) mgl32.Vec4 {
	c := mgl32.Vec4{1, 1, 1, 1}
	if r.colorOff < 0 {
		return c
	}
	base := v*r.stride + r.colorOff
	for i := 0; i < r.colorN && i < 4; i++ {
		c[i] = data[base+i]
	}
	return c
}

func (r vertexReader) texCoord(data []float32, v int) mgl32.Vec2 {
	if r.uvOff < 0 {
		return mgl32.Vec2{}
	}
	base := v*r.stride + r.uvOff
	return mgl32.Vec2{data[base], data[base+1]}
}

func (r vertexReader) texIndex(data []float32, v int) int {
	return int(data[v*r.stride+r.texIndexOff] + 0.5)
}
