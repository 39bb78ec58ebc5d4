// Package gfxtest provides a recording gfx.Device for tests. It keeps every
// command and uniform upload in memory and never touches a GPU.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx"
)

// Call is one recorded command, e.g. "Clear" or "DrawIndexed".
type Call struct {
	Op   string
	Args []any
}

// Draw is a recorded DrawIndexed with a snapshot of the state it used.
type Draw struct {
	VertexArray *VertexArray
	Count       int
	Shader      *Shader
	Uniforms    map[string]any
	Vertices    []float32
	Textures    map[int]*Texture
}

// Device records everything. The zero value is not usable; call NewDevice.
type Device struct {
	Calls      []Call
	Draws      []Draw
	Viewport   [4]int
	ClearColor colors.Color
	Slots      int

	// FailShaders makes CreateShader return a *gfx.ShaderError.
	FailShaders bool
	// FailTextures makes CreateTexture2D return an error.
	FailTextures bool
	// FailVertexArrays makes AddVertexBuffer return an error.
	FailVertexArrays bool

	Shaders       []*Shader
	Textures      []*Texture
	VertexBuffers []*VertexBuffer
	IndexBuffers  []*IndexBuffer
	VertexArrays  []*VertexArray

	bound    *Shader
	bindings map[int]*Texture
	nextID   uint32
	inited   bool
	shutdown bool
}

var _ gfx.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{Slots: 16, bindings: make(map[int]*Texture)}
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

// Ops lists recorded op names in order.
func (d *Device) Ops() []string {
	out := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		out[i] = c.Op
	}
	return out
}

// Live counts created resources that were never released.
func (d *Device) Live() int {
	n := 0
	for _, s := range d.Shaders {
		n += unreleased(s.Released)
	}
	for _, t := range d.Textures {
		n += unreleased(t.Released)
	}
	for _, b := range d.VertexBuffers {
		n += unreleased(b.Released)
	}
	for _, b := range d.IndexBuffers {
		n += unreleased(b.Released)
	}
	for _, a := range d.VertexArrays {
		n += unreleased(a.Released)
	}
	return n
}

func unreleased(released bool) int {
	if released {
		return 0
	}
	return 1
}

func (d *Device) Inited() bool     { return d.inited }
func (d *Device) IsShutdown() bool { return d.shutdown }

func (d *Device) Init() error {
	d.inited = true
	d.record("Init")
	return nil
}

func (d *Device) SetViewport(x, y, w, h int) {
	d.Viewport = [4]int{x, y, w, h}
	d.record("SetViewport", x, y, w, h)
}

func (d *Device) SetClearColor(c colors.Color) {
	d.ClearColor = c
	d.record("SetClearColor", c)
}

func (d *Device) Clear() { d.record("Clear") }

func (d *Device) DrawIndexed(va gfx.VertexArray, count int) {
	v := va.(*VertexArray)
	if count == 0 && v.ib != nil {
		count = v.ib.Count()
	}
	draw := Draw{VertexArray: v, Count: count, Shader: d.bound, Textures: make(map[int]*Texture, len(d.bindings))}
	if d.bound != nil {
		draw.Uniforms = make(map[string]any, len(d.bound.Uniforms))
		for k, u := range d.bound.Uniforms {
			draw.Uniforms[k] = u
		}
	}
	if len(v.vbs) > 0 {
		draw.Vertices = slices.Clone(v.vbs[0].(*VertexBuffer).Data)
	}
	for slot, t := range d.bindings {
		draw.Textures[slot] = t
	}
	d.Draws = append(d.Draws, draw)
	d.record("DrawIndexed", count)
}

func (d *Device) MaxTextureSlots() int { return d.Slots }

func (d *Device) CreateShader(name string, src gfx.ShaderSource) (gfx.Shader, error) {
	if d.FailShaders {
		return nil, &gfx.ShaderError{Name: name, Stage: "vertex", Log: "forced failure"}
	}
	s := &Shader{dev: d, name: name, Source: src, Uniforms: make(map[string]any)}
	d.Shaders = append(d.Shaders, s)
	d.record("CreateShader", name)
	return s, nil
}

func (d *Device) CreateVertexBuffer(vertices []float32) (gfx.VertexBuffer, error) {
	vb := &VertexBuffer{Data: slices.Clone(vertices)}
	d.VertexBuffers = append(d.VertexBuffers, vb)
	return vb, nil
}

func (d *Device) CreateDynamicVertexBuffer(size int) (gfx.VertexBuffer, error) {
	vb := &VertexBuffer{Data: make([]float32, 0, size)}
	d.VertexBuffers = append(d.VertexBuffers, vb)
	return vb, nil
}

func (d *Device) CreateIndexBuffer(indices []uint32) (gfx.IndexBuffer, error) {
	ib := &IndexBuffer{Indices: slices.Clone(indices)}
	d.IndexBuffers = append(d.IndexBuffers, ib)
	return ib, nil
}

func (d *Device) CreateVertexArray() (gfx.VertexArray, error) {
	va := &VertexArray{fail: d.FailVertexArrays}
	d.VertexArrays = append(d.VertexArrays, va)
	return va, nil
}

func (d *Device) CreateTexture2D(spec gfx.TextureSpec) (gfx.Texture2D, error) {
	if d.FailTextures {
		return nil, fmt.Errorf("gfxtest: forced texture failure")
	}
	if spec.Pixels != nil && len(spec.Pixels) != spec.Width*spec.Height*4 {
		return nil, gfx.ErrTextureData
	}
	d.nextID++
	t := &Texture{dev: d, id: d.nextID, Spec: spec}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) Info() gfx.DeviceInfo {
	return gfx.DeviceInfo{Vendor: "gfxtest", Renderer: "recorder", Version: "1"}
}

func (d *Device) Shutdown() {
	d.shutdown = true
	d.record("Shutdown")
}

// Shader records uniform uploads; Uniforms keeps the latest value per name.
type Shader struct {
	dev      *Device
	name     string
	Source   gfx.ShaderSource
	Uniforms map[string]any
	Released bool
}

func (s *Shader) Name() string { return s.name }
func (s *Shader) Bind() {
	s.dev.bound = s
	s.dev.record("BindShader", s.name)
}
func (s *Shader) Unbind() {
	if s.dev.bound == s {
		s.dev.bound = nil
	}
}
func (s *Shader) set(name string, v any) {
	s.Uniforms[name] = v
	s.dev.record("Uniform", name)
}
func (s *Shader) UploadUniformInt(name string, v int32) { s.set(name, v) }
func (s *Shader) UploadUniformIntArray(name string, v []int32) {
	s.set(name, slices.Clone(v))
}
func (s *Shader) UploadUniformFloat(name string, v float32)     { s.set(name, v) }
func (s *Shader) UploadUniformFloat2(name string, v mgl32.Vec2) { s.set(name, v) }
func (s *Shader) UploadUniformFloat3(name string, v mgl32.Vec3) { s.set(name, v) }
func (s *Shader) UploadUniformFloat4(name string, v mgl32.Vec4) { s.set(name, v) }
func (s *Shader) UploadUniformMat3(name string, v mgl32.Mat3)   { s.set(name, v) }
func (s *Shader) UploadUniformMat4(name string, v mgl32.Mat4)   { s.set(name, v) }
func (s *Shader) Release()                                      { s.Released = true }

type VertexBuffer struct {
	Data     []float32
	layout   gfx.BufferLayout
	Released bool
}

func (b *VertexBuffer) Bind()   {}
func (b *VertexBuffer) Unbind() {}
func (b *VertexBuffer) SetData(vertices []float32) {
	b.Data = append(b.Data[:0], vertices...)
}
func (b *VertexBuffer) Layout() gfx.BufferLayout          { return b.layout }
func (b *VertexBuffer) SetLayout(layout gfx.BufferLayout) { b.layout = layout }
func (b *VertexBuffer) Release()                          { b.Released = true }

type IndexBuffer struct {
	Indices  []uint32
	Released bool
}

func (b *IndexBuffer) Bind()      {}
func (b *IndexBuffer) Unbind()    {}
func (b *IndexBuffer) Count() int { return len(b.Indices) }
func (b *IndexBuffer) Release()   { b.Released = true }

// VertexArray owns its attached buffers and releases them with itself.
type VertexArray struct {
	vbs      []gfx.VertexBuffer
	ib       gfx.IndexBuffer
	fail     bool
	Released bool
}

func (a *VertexArray) Bind()   {}
func (a *VertexArray) Unbind() {}
func (a *VertexArray) AddVertexBuffer(vb gfx.VertexBuffer) error {
	if a.fail {
		return fmt.Errorf("gfxtest: forced vertex array failure")
	}
	if vb.Layout().Len() == 0 {
		return gfx.ErrEmptyLayout
	}
	a.vbs = append(a.vbs, vb)
	return nil
}
func (a *VertexArray) SetIndexBuffer(ib gfx.IndexBuffer) { a.ib = ib }
func (a *VertexArray) VertexBuffers() []gfx.VertexBuffer { return a.vbs }
func (a *VertexArray) IndexBuffer() gfx.IndexBuffer      { return a.ib }
func (a *VertexArray) Release() {
	for _, vb := range a.vbs {
		vb.Release()
	}
	if a.ib != nil {
		a.ib.Release()
	}
	a.Released = true
}

type Texture struct {
	dev      *Device
	id       uint32
	Spec     gfx.TextureSpec
	Released bool
}

func (t *Texture) ID() uint32  { return t.id }
func (t *Texture) Width() int  { return t.Spec.Width }
func (t *Texture) Height() int { return t.Spec.Height }
func (t *Texture) Bind(slot int) {
	t.dev.bindings[slot] = t
	t.dev.record("BindTexture", slot, t.id)
}
func (t *Texture) SetData(pixels []byte) error {
	if len(pixels) != t.Spec.Width*t.Spec.Height*4 {
		return gfx.ErrTextureData
	}
	t.Spec.Pixels = slices.Clone(pixels)
	return nil
}
func (t *Texture) Release() { t.Released = true }
