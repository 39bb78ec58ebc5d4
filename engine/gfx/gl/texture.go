package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/mashenka/mashenka/engine/gfx"
)

type Texture struct {
	id            uint32
	width, height int
}

func newTexture(spec gfx.TextureSpec) (*Texture, error) {
	if spec.Pixels != nil && len(spec.Pixels) != spec.Width*spec.Height*4 {
		return nil, gfx.ErrTextureData
	}
	t := &Texture{width: spec.Width, height: spec.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	filter := int32(gl.LINEAR)
	if spec.Filter == gfx.FilterNearest {
		filter = gl.NEAREST
	}
	wrap := int32(gl.REPEAT)
	if spec.Wrap == gfx.WrapClamp {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	var pix unsafe.Pointer
	if len(spec.Pixels) > 0 {
		pix = gl.Ptr(spec.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.width), int32(t.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func (t *Texture) ID() uint32  { return t.id }
func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

func (t *Texture) Bind(slot int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) SetData(pixels []byte) error {
	if len(pixels) != t.width*t.height*4 {
		return gfx.ErrTextureData
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return nil
}

func (t *Texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
