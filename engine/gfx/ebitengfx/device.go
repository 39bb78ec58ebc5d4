// Package ebitengfx implements gfx.Device on top of ebiten. Geometry is
// transformed on the CPU with the bound shader's matrices and drawn into an
// offscreen canvas with DrawTriangles or, when the shader carries a Kage
// program, DrawTrianglesShader. Present copies the canvas to the screen.
package ebitengfx

import (
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/logging"
)

const (
	maxSlots = 8
	// maxRunVertices keeps local indices inside uint16.
	maxRunVertices = (1<<16 - 1) / 3 * 3
)

type Device struct {
	canvas        *ebiten.Image
	width, height int
	clear         colors.Color

	bound *Shader
	slots [maxSlots]*Texture

	white    *ebiten.Image
	whiteSub *ebiten.Image
	nextID   uint32

	runTex *Texture
	verts  []ebiten.Vertex
	idx    []uint16

	log *slog.Logger
}

var _ gfx.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{log: logging.Core(), clear: colors.Black}
}

func (d *Device) Init() error {
	d.white = ebiten.NewImage(3, 3)
	d.white.Fill(toNRGBA(colors.White))
	d.whiteSub = d.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return nil
}

// Canvas is the offscreen target all draws land in.
func (d *Device) Canvas() *ebiten.Image { return d.canvas }

// Present draws the canvas onto the screen image.
func (d *Device) Present(screen *ebiten.Image) {
	if d.canvas == nil {
		return
	}
	screen.DrawImage(d.canvas, nil)
}

// SetViewport resizes the canvas. Offsets are ignored; ebiten always draws
// the full canvas.
func (d *Device) SetViewport(_, _, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if d.canvas != nil && d.width == width && d.height == height {
		return
	}
	if d.canvas != nil {
		d.canvas.Deallocate()
	}
	d.width, d.height = width, height
	d.canvas = ebiten.NewImage(width, height)
}

func (d *Device) SetClearColor(c colors.Color) { d.clear = c }

func (d *Device) Clear() {
	if d.canvas != nil {
		d.canvas.Fill(toNRGBA(d.clear))
	}
}

func (d *Device) MaxTextureSlots() int { return maxSlots }

func (d *Device) Info() gfx.DeviceInfo {
	return gfx.DeviceInfo{Vendor: "Ebitengine", Renderer: "ebiten/v2", Version: "2"}
}

func (d *Device) Shutdown() {
	if d.canvas != nil {
		d.canvas.Deallocate()
		d.canvas = nil
	}
	if d.white != nil {
		d.white.Deallocate()
		d.white = nil
	}
}

func (d *Device) bindTexture(slot int, t *Texture) {
	if slot >= 0 && slot < maxSlots {
		d.slots[slot] = t
	}
}

func (d *Device) textureAt(slot int) *Texture {
	if slot < 0 || slot >= maxSlots {
		return nil
	}
	return d.slots[slot]
}

// DrawIndexed transforms indexCount indices of va on the CPU. Vertices are
// read by attribute name: a_Position, a_Color, a_TexCoord and a_TexIndex.
// Missing attributes fall back to u_Color and the u_Texture slot.
func (d *Device) DrawIndexed(va gfx.VertexArray, indexCount int) {
	if d.canvas == nil || d.bound == nil {
		d.log.Warn("DrawIndexed without canvas or shader")
		return
	}
	ib, ok := va.IndexBuffer().(*IndexBuffer)
	if !ok || len(va.VertexBuffers()) == 0 {
		d.log.Warn("DrawIndexed on incomplete vertex array")
		return
	}
	vb := va.VertexBuffers()[0].(*VertexBuffer)
	if indexCount == 0 || indexCount > len(ib.indices) {
		indexCount = len(ib.indices)
	}

	rd := newVertexReader(vb.layout)
	if !rd.hasPosition() {
		d.log.Warn("vertex layout has no a_Position")
		return
	}
	mvp := d.bound.mat4("u_ViewProjection").Mul4(d.bound.mat4("u_Transform"))
	tint := d.bound.vec4("u_Color", mgl32.Vec4{1, 1, 1, 1})
	defaultSlot := int(d.bound.intValue("u_Texture", 0))

	indices := ib.indices[:indexCount]
	for i := 0; i+2 < len(indices); i += 3 {
		slot := defaultSlot
		if rd.hasTexIndex() {
			slot = rd.texIndex(vb.data, int(indices[i]))
		}
		tex := d.textureAt(slot)
		if tex != d.runTex || len(d.verts)+3 > maxRunVertices {
			d.flushRun()
			d.runTex = tex
		}
		for k := range 3 {
			d.appendVertex(rd, vb.data, int(indices[i+k]), mvp, tint, tex)
		}
	}
	d.flushRun()
}

func (d *Device) appendVertex(rd vertexReader, data []float32, v int, mvp mgl32.Mat4, tint mgl32.Vec4, tex *Texture) {
	if (v+1)*rd.stride > len(data) {
		return
	}
	clip := mvp.Mul4x1(rd.position(data, v))
	x, y := ndcToPixel(clip, d.width, d.height)

	c := rd.color(data, v)
	c = mgl32.Vec4{c[0] * tint[0], c[1] * tint[1], c[2] * tint[2], c[3] * tint[3]}

	var sx, sy float32
	if tex != nil {
		uv := rd.texCoord(data, v)
		sx, sy = uv[0]*float32(tex.width), uv[1]*float32(tex.height)
	} else {
		sx, sy = 1.5, 1.5
	}

	d.idx = append(d.idx, uint16(len(d.verts)))
	d.verts = append(d.verts, ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: sx, SrcY: sy,
		ColorR: c[0] * c[3], ColorG: c[1] * c[3], ColorB: c[2] * c[3], ColorA: c[3],
	})
}

func (d *Device) flushRun() {
	if len(d.idx) == 0 {
		d.runTex = nil
		return
	}
	img, filter, address := d.whiteSub, ebiten.FilterNearest, ebiten.AddressUnsafe
	if d.runTex != nil {
		img, filter, address = d.runTex.img, d.runTex.filter, d.runTex.address
	}

	if d.bound.kage != nil {
		op := &ebiten.DrawTrianglesShaderOptions{Uniforms: d.bound.kageUniforms()}
		op.Images[0] = img
		d.canvas.DrawTrianglesShader(d.verts, d.idx, d.bound.kage, op)
	} else {
		op := &ebiten.DrawTrianglesOptions{
			Filter:         filter,
			Address:        address,
			ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		}
		d.canvas.DrawTriangles(d.verts, d.idx, img, op)
	}
	d.verts = d.verts[:0]
	d.idx = d.idx[:0]
	d.runTex = nil
}

func (d *Device) CreateShader(name string, src gfx.ShaderSource) (gfx.Shader, error) {
	s := &Shader{dev: d, name: name, uniforms: make(map[string]any)}
	if src.Kage != "" {
		k, err := ebiten.NewShader([]byte(src.Kage))
		if err != nil {
			return nil, &gfx.ShaderError{Name: name, Stage: "kage", Log: err.Error()}
		}
		s.kage = k
	} else {
		d.log.Debug("shader has no kage stage, using fixed pipeline", "shader", name)
	}
	return s, nil
}

func (d *Device) CreateVertexBuffer(vertices []float32) (gfx.VertexBuffer, error) {
	return &VertexBuffer{data: append([]float32(nil), vertices...)}, nil
}

func (d *Device) CreateDynamicVertexBuffer(size int) (gfx.VertexBuffer, error) {
	return &VertexBuffer{data: make([]float32, 0, size)}, nil
}

func (d *Device) CreateIndexBuffer(indices []uint32) (gfx.IndexBuffer, error) {
	return &IndexBuffer{indices: append([]uint32(nil), indices...)}, nil
}

func (d *Device) CreateVertexArray() (gfx.VertexArray, error) {
	return &VertexArray{}, nil
}

func (d *Device) CreateTexture2D(spec gfx.TextureSpec) (gfx.Texture2D, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, gfx.ErrTextureData
	}
	if spec.Pixels != nil && len(spec.Pixels) != spec.Width*spec.Height*4 {
		return nil, gfx.ErrTextureData
	}
	d.nextID++
	t := &Texture{
		dev:     d,
		id:      d.nextID,
		width:   spec.Width,
		height:  spec.Height,
		img:     ebiten.NewImage(spec.Width, spec.Height),
		filter:  ebiten.FilterLinear,
		address: ebiten.AddressRepeat,
	}
	if spec.Filter == gfx.FilterNearest {
		t.filter = ebiten.FilterNearest
	}
	if spec.Wrap == gfx.WrapClamp {
		t.address = ebiten.AddressClampToZero
	}
	if spec.Pixels != nil {
		t.img.WritePixels(premultiply(spec.Pixels))
	}
	return t, nil
}
