package gfx_test

import (
	"testing"

	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderDataTypeSizes(t *testing.T) {
	tests := []struct {
		typ        gfx.ShaderDataType
		size, comp int
	}{
		{gfx.Float, 4, 1},
		{gfx.Float2, 8, 2},
		{gfx.Float3, 12, 3},
		{gfx.Float4, 16, 4},
		{gfx.Mat3, 36, 3},
		{gfx.Mat4, 64, 4},
		{gfx.Int, 4, 1},
		{gfx.Int4, 16, 4},
		{gfx.Bool, 1, 1},
		{gfx.ShaderDataNone, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.typ.Size())
			assert.Equal(t, tt.comp, tt.typ.ComponentCount())
		})
	}
}

func TestBufferLayoutOffsets(t *testing.T) {
	l := gfx.NewBufferLayout(
		gfx.BufferElement{Name: "a_Position", Type: gfx.Float3},
		gfx.BufferElement{Name: "a_Color", Type: gfx.Float4},
		gfx.BufferElement{Name: "a_TexCoord", Type: gfx.Float2},
		gfx.BufferElement{Name: "a_TexIndex", Type: gfx.Float},
	)
	assert.Equal(t, 40, l.Stride())
	assert.Equal(t, 4, l.Len())

	offsets := []int{0, 12, 28, 36}
	for i, e := range l.Elements() {
		assert.Equal(t, offsets[i], e.Offset, e.Name)
		assert.Equal(t, e.Type.Size(), e.Size, e.Name)
	}

	e, ok := l.Element("a_TexCoord")
	require.True(t, ok)
	assert.Equal(t, 28, e.Offset)
	_, ok = l.Element("a_Normal")
	assert.False(t, ok)
}

func TestEmptyLayout(t *testing.T) {
	l := gfx.NewBufferLayout()
	assert.Zero(t, l.Stride())
	assert.Zero(t, l.Len())
}

func TestNewMesh(t *testing.T) {
	d := gfxtest.NewDevice()
	layout := gfx.NewBufferLayout(gfx.BufferElement{Name: "a_Position", Type: gfx.Float3})

	va, err := gfx.NewMesh(d, []float32{-0.5, -0.5, 0, 0.5, -0.5, 0, 0, 0.5, 0}, layout, []uint32{0, 1, 2})
	require.NoError(t, err)
	require.Len(t, va.VertexBuffers(), 1)
	assert.Equal(t, 12, va.VertexBuffers()[0].Layout().Stride())
	assert.Equal(t, 3, va.IndexBuffer().Count())
}

func TestNewMeshRejectsEmptyLayout(t *testing.T) {
	d := gfxtest.NewDevice()
	_, err := gfx.NewMesh(d, []float32{0, 0, 0}, gfx.BufferLayout{}, []uint32{0})
	assert.ErrorIs(t, err, gfx.ErrEmptyLayout)
}
