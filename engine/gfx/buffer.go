package gfx

import "fmt"

// ShaderDataType is the element type of a vertex attribute or uniform.
type ShaderDataType int

const (
	ShaderDataNone ShaderDataType = iota
	Float
	Float2
	Float3
	Float4
	Mat3
	Mat4
	Int
	Int2
	Int3
	Int4
	Bool
)

// Size is the byte size of one element of t.
func (t ShaderDataType) Size() int {
	switch t {
	case Float, Int:
		return 4
	case Float2, Int2:
		return 4 * 2
	case Float3, Int3:
		return 4 * 3
	case Float4, Int4:
		return 4 * 4
	case Mat3:
		return 4 * 3 * 3
	case Mat4:
		return 4 * 4 * 4
	case Bool:
		return 1
	}
	return 0
}

// ComponentCount is the number of scalars in t (columns for matrices are
// counted by the backend).
func (t ShaderDataType) ComponentCount() int {
	switch t {
	case Float, Int, Bool:
		return 1
	case Float2, Int2:
		return 2
	case Float3, Int3, Mat3:
		return 3
	case Float4, Int4, Mat4:
		return 4
	}
	return 0
}

// IsInteger reports whether t is fed to the shader as integers.
func (t ShaderDataType) IsInteger() bool {
	switch t {
	case Int, Int2, Int3, Int4, Bool:
		return true
	}
	return false
}

func (t ShaderDataType) String() string {
	switch t {
	case Float:
		return "Float"
	case Float2:
		return "Float2"
	case Float3:
		return "Float3"
	case Float4:
		return "Float4"
	case Mat3:
		return "Mat3"
	case Mat4:
		return "Mat4"
	case Int:
		return "Int"
	case Int2:
		return "Int2"
	case Int3:
		return "Int3"
	case Int4:
		return "Int4"
	case Bool:
		return "Bool"
	}
	return "None"
}

// BufferElement is one named vertex attribute.
type BufferElement struct {
	Name       string
	Type       ShaderDataType
	Normalized bool
	Size       int
	Offset     int
}

// BufferLayout describes interleaved vertex attributes. Offsets and stride are
// computed from the element order.
type BufferLayout struct {
	elements []BufferElement
	stride   int
}

// NewBufferLayout lays elements out back to back.
//
//	gfx.NewBufferLayout(
//		gfx.BufferElement{Name: "a_Position", Type: gfx.Float3},
//		gfx.BufferElement{Name: "a_Color", Type: gfx.Float4},
//	)
func NewBufferLayout(elements ...BufferElement) BufferLayout {
	l := BufferLayout{elements: make([]BufferElement, len(elements))}
	offset := 0
	for i, e := range elements {
		e.Size = e.Type.Size()
		e.Offset = offset
		offset += e.Size
		l.elements[i] = e
	}
	l.stride = offset
	return l
}

func (l BufferLayout) Elements() []BufferElement { return l.elements }
func (l BufferLayout) Stride() int               { return l.stride }
func (l BufferLayout) Len() int                  { return len(l.elements) }

// Element finds an attribute by name.
func (l BufferLayout) Element(name string) (BufferElement, bool) {
	for _, e := range l.elements {
		if e.Name == name {
			return e, true
		}
	}
	return BufferElement{}, false
}

func (l BufferLayout) String() string {
	return fmt.Sprintf("BufferLayout{%d elements, stride %d}", len(l.elements), l.stride)
}

// VertexBuffer holds interleaved float vertex data.
type VertexBuffer interface {
	Bind()
	Unbind()
	SetData(vertices []float32)
	Layout() BufferLayout
	SetLayout(layout BufferLayout)
	Release()
}

// IndexBuffer holds triangle indices.
type IndexBuffer interface {
	Bind()
	Unbind()
	Count() int
	Release()
}

// VertexArray composes vertex buffers and one index buffer.
type VertexArray interface {
	Bind()
	Unbind()
	// AddVertexBuffer fails with ErrEmptyLayout when vb has no layout.
	AddVertexBuffer(vb VertexBuffer) error
	SetIndexBuffer(ib IndexBuffer)
	VertexBuffers() []VertexBuffer
	IndexBuffer() IndexBuffer
	Release()
}

// NewMesh creates a vertex array with one vertex buffer and one index buffer.
func NewMesh(d Device, vertices []float32, layout BufferLayout, indices []uint32) (VertexArray, error) {
	va, err := d.CreateVertexArray()
	if err != nil {
		return nil, err
	}
	vb, err := d.CreateVertexBuffer(vertices)
	if err != nil {
		va.Release()
		return nil, err
	}
	vb.SetLayout(layout)
	if err := va.AddVertexBuffer(vb); err != nil {
		vb.Release()
		va.Release()
		return nil, err
	}
	ib, err := d.CreateIndexBuffer(indices)
	if err != nil {
		va.Release()
		return nil, err
	}
	va.SetIndexBuffer(ib)
	return va, nil
}
