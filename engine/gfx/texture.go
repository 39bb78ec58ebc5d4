package gfx

// TextureFilter selects min/mag sampling.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// TextureWrap selects UV addressing outside [0,1].
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClamp
)

// TextureSpec describes an RGBA8 texture. Pixels may be nil to allocate an
// empty texture, otherwise it must hold Width*Height*4 bytes.
type TextureSpec struct {
	Width, Height int
	Pixels        []byte
	Filter        TextureFilter
	Wrap          TextureWrap
}

// Texture2D is a 2D RGBA8 texture.
type Texture2D interface {
	// ID is unique per live texture within a device.
	ID() uint32
	Width() int
	Height() int
	Bind(slot int)
	// SetData replaces the whole image; len(pixels) must be Width*Height*4.
	SetData(pixels []byte) error
	Release()
}

// WhitePixel is the 1x1 RGBA8 texture used for flat colors.
var WhitePixel = []byte{0xff, 0xff, 0xff, 0xff}
