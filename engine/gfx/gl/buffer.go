package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/logging"
)

type VertexBuffer struct {
	id       uint32
	capacity int // floats
	layout   gfx.BufferLayout
}

func newVertexBuffer(vertices []float32, capacity int, usage uint32) *VertexBuffer {
	vb := &VertexBuffer{capacity: capacity}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, capacity*4, nil, usage)
	}
	return vb
}

func (b *VertexBuffer) Bind()   { gl.BindBuffer(gl.ARRAY_BUFFER, b.id) }
func (b *VertexBuffer) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

// SetData uploads into the existing storage, growing it when needed.
func (b *VertexBuffer) SetData(vertices []float32) {
	if len(vertices) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	if len(vertices) > b.capacity {
		b.capacity = len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
}

func (b *VertexBuffer) Layout() gfx.BufferLayout          { return b.layout }
func (b *VertexBuffer) SetLayout(layout gfx.BufferLayout) { b.layout = layout }

func (b *VertexBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

type IndexBuffer struct {
	id    uint32
	count int
}

func newIndexBuffer(indices []uint32) *IndexBuffer {
	ib := &IndexBuffer{count: len(indices)}
	gl.GenBuffers(1, &ib.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	return ib
}

func (b *IndexBuffer) Bind()      { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id) }
func (b *IndexBuffer) Unbind()    { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }
func (b *IndexBuffer) Count() int { return b.count }

func (b *IndexBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

type VertexArray struct {
	id        uint32
	nextIndex uint32
	vbs       []gfx.VertexBuffer
	ib        gfx.IndexBuffer
}

func (a *VertexArray) Bind()   { gl.BindVertexArray(a.id) }
func (a *VertexArray) Unbind() { gl.BindVertexArray(0) }

func glType(t gfx.ShaderDataType) uint32 {
	switch t {
	case gfx.Int, gfx.Int2, gfx.Int3, gfx.Int4:
		return gl.INT
	case gfx.Bool:
		return gl.BOOL
	}
	return gl.FLOAT
}

// AddVertexBuffer binds one attribute per layout element. Matrix elements
// take one attribute slot per column.
func (a *VertexArray) AddVertexBuffer(vb gfx.VertexBuffer) error {
	layout := vb.Layout()
	if layout.Len() == 0 {
		return gfx.ErrEmptyLayout
	}
	gl.BindVertexArray(a.id)
	vb.Bind()

	stride := int32(layout.Stride())
	for _, e := range layout.Elements() {
		switch e.Type {
		case gfx.Float, gfx.Float2, gfx.Float3, gfx.Float4:
			gl.EnableVertexAttribArray(a.nextIndex)
			gl.VertexAttribPointer(a.nextIndex, int32(e.Type.ComponentCount()), gl.FLOAT, e.Normalized, stride, gl.PtrOffset(e.Offset))
			a.nextIndex++
		case gfx.Int, gfx.Int2, gfx.Int3, gfx.Int4, gfx.Bool:
			gl.EnableVertexAttribArray(a.nextIndex)
			gl.VertexAttribIPointer(a.nextIndex, int32(e.Type.ComponentCount()), glType(e.Type), stride, gl.PtrOffset(e.Offset))
			a.nextIndex++
		case gfx.Mat3, gfx.Mat4:
			n := e.Type.ComponentCount()
			for col := range n {
				gl.EnableVertexAttribArray(a.nextIndex)
				gl.VertexAttribPointer(a.nextIndex, int32(n), gl.FLOAT, e.Normalized, stride, gl.PtrOffset(e.Offset+4*n*col))
				a.nextIndex++
			}
		default:
			logging.Core().Warn("unknown shader data type", "element", e.Name)
		}
	}
	a.vbs = append(a.vbs, vb)
	return nil
}

func (a *VertexArray) SetIndexBuffer(ib gfx.IndexBuffer) {
	gl.BindVertexArray(a.id)
	ib.Bind()
	a.ib = ib
}

func (a *VertexArray) VertexBuffers() []gfx.VertexBuffer { return a.vbs }
func (a *VertexArray) IndexBuffer() gfx.IndexBuffer      { return a.ib }

// Release frees the array together with its buffers.
func (a *VertexArray) Release() {
	for _, vb := range a.vbs {
		vb.Release()
	}
	if a.ib != nil {
		a.ib.Release()
	}
	if a.id != 0 {
		gl.DeleteVertexArrays(1, &a.id)
		a.id = 0
	}
}
