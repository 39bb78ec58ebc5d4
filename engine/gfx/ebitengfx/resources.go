package ebitengfx

import (
	"maps"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mashenka/mashenka/engine/gfx"
)

// Shader stores uniforms host-side. Matrices drive the CPU transform; the
// rest is forwarded to the Kage program without the "u_" prefix.
type Shader struct {
	dev      *Device
	name     string
	kage     *ebiten.Shader
	uniforms map[string]any
	kageBuf  map[string]any
}

func (s *Shader) Name() string { return s.name }
func (s *Shader) Bind()        { s.dev.bound = s }
func (s *Shader) Unbind() {
	if s.dev.bound == s {
		s.dev.bound = nil
	}
}

func (s *Shader) Release() {
	if s.kage != nil {
		s.kage.Deallocate()
		s.kage = nil
	}
}

func (s *Shader) UploadUniformInt(name string, v int32) { s.uniforms[name] = v }
func (s *Shader) UploadUniformIntArray(name string, v []int32) {
	s.uniforms[name] = append([]int32(nil), v...)
}
func (s *Shader) UploadUniformFloat(name string, v float32)     { s.uniforms[name] = v }
func (s *Shader) UploadUniformFloat2(name string, v mgl32.Vec2) { s.uniforms[name] = v }
func (s *Shader) UploadUniformFloat3(name string, v mgl32.Vec3) { s.uniforms[name] = v }
func (s *Shader) UploadUniformFloat4(name string, v mgl32.Vec4) { s.uniforms[name] = v }
func (s *Shader) UploadUniformMat3(name string, v mgl32.Mat3)   { s.uniforms[name] = v }
func (s *Shader) UploadUniformMat4(name string, v mgl32.Mat4)   { s.uniforms[name] = v }

func (s *Shader) mat4(name string) mgl32.Mat4 {
	if m, ok := s.uniforms[name].(mgl32.Mat4); ok {
		return m
	}
	return mgl32.Ident4()
}

func (s *Shader) vec4(name string, def mgl32.Vec4) mgl32.Vec4 {
	if v, ok := s.uniforms[name].(mgl32.Vec4); ok {
		return v
	}
	return def
}

func (s *Shader) intValue(name string, def int32) int32 {
	if v, ok := s.uniforms[name].(int32); ok {
		return v
	}
	return def
}

func (s *Shader) kageUniforms() map[string]any {
	if s.kageBuf == nil {
		s.kageBuf = make(map[string]any, len(s.uniforms))
	}
	clear(s.kageBuf)
	maps.Insert(s.kageBuf, kageValues(s.uniforms))
	return s.kageBuf
}

type VertexBuffer struct {
	data   []float32
	layout gfx.BufferLayout
}

func (b *VertexBuffer) Bind()   {}
func (b *VertexBuffer) Unbind() {}
func (b *VertexBuffer) SetData(vertices []float32) {
	b.data = append(b.data[:0], vertices...)
}
func (b *VertexBuffer) Layout() gfx.BufferLayout          { return b.layout }
func (b *VertexBuffer) SetLayout(layout gfx.BufferLayout) { b.layout = layout }
func (b *VertexBuffer) Release()                          { b.data = nil }

type IndexBuffer struct {
	indices []uint32
}

func (b *IndexBuffer) Bind()      {}
func (b *IndexBuffer) Unbind()    {}
func (b *IndexBuffer) Count() int { return len(b.indices) }
func (b *IndexBuffer) Release()   { b.indices = nil }

type VertexArray struct {
	vbs []gfx.VertexBuffer
	ib  gfx.IndexBuffer
}

func (a *VertexArray) Bind()   {}
func (a *VertexArray) Unbind() {}
func (a *VertexArray) AddVertexBuffer(vb gfx.VertexBuffer) error {
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
}

type Texture struct {
	dev           *Device
	id            uint32
	width, height int
	img           *ebiten.Image
	filter        ebiten.Filter
	address       ebiten.Address
}

func (t *Texture) ID() uint32           { return t.id }
func (t *Texture) Width() int           { return t.width }
func (t *Texture) Height() int          { return t.height }
func (t *Texture) Image() *ebiten.Image { return t.img }
func (t *Texture) Bind(slot int)        { t.dev.bindTexture(slot, t) }

func (t *Texture) SetData(pixels []byte) error {
	if len(pixels) != t.width*t.height*4 {
		return gfx.ErrTextureData
	}
	t.img.WritePixels(premultiply(pixels))
	return nil
}

func (t *Texture) Release() {
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}
