package gfx_test

import (
	"testing"
	"testing/fstest"

	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flatColorSrc = `// flat color
#type vertex
#version 330 core
void main() {}
#type fragment
#version 330 core
void main() {}
#type kage
//kage:unit pixels
package main
`

func TestParseShaderSource(t *testing.T) {
	src, err := gfx.ParseShaderSource("FlatColor", flatColorSrc)
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\nvoid main() {}\n", src.Vertex)
	assert.Equal(t, "#version 330 core\nvoid main() {}\n", src.Fragment)
	assert.Equal(t, "//kage:unit pixels\npackage main\n", src.Kage)
}

func TestParseShaderSourcePixelAlias(t *testing.T) {
	src, err := gfx.ParseShaderSource("p", "#type pixel\nvoid main() {}")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src.Fragment)
	assert.Empty(t, src.Vertex)
}

func TestParseShaderSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown stage", "#type geometry\nvoid main() {}\n"},
		{"no sections", "void main() {}\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gfx.ParseShaderSource("bad", tt.src)
			var se *gfx.ShaderError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "parse", se.Stage)
			assert.Equal(t, "bad", se.Name)
		})
	}
}

func TestShaderLibrary(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/FlatColor.glsl": {Data: []byte(flatColorSrc)},
	}
	d := gfxtest.NewDevice()
	lib := gfx.NewShaderLibrary(d)

	s, err := lib.Load(fsys, "shaders/FlatColor.glsl")
	require.NoError(t, err)
	assert.Equal(t, "FlatColor", s.Name())
	assert.True(t, lib.Exists("FlatColor"))

	got, err := lib.Get("FlatColor")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = lib.Load(fsys, "shaders/FlatColor.glsl")
	assert.ErrorIs(t, err, gfx.ErrShaderExists)
	assert.ErrorIs(t, lib.Add(s), gfx.ErrShaderExists)

	_, err = lib.Get("Texture")
	assert.ErrorIs(t, err, gfx.ErrShaderNotFound)

	alias, err := lib.LoadNamed("Flat2", fsys, "shaders/FlatColor.glsl")
	require.NoError(t, err)
	assert.Equal(t, "Flat2", alias.Name())

	lib.Release()
	assert.False(t, lib.Exists("FlatColor"))
	assert.True(t, s.(*gfxtest.Shader).Released)
}

func TestShaderLibraryLoadErrors(t *testing.T) {
	d := gfxtest.NewDevice()
	lib := gfx.NewShaderLibrary(d)

	_, err := lib.Load(fstest.MapFS{}, "missing.glsl")
	assert.Error(t, err)
	assert.False(t, lib.Exists("missing"))

	d.FailShaders = true
	fsys := fstest.MapFS{"Broken.glsl": {Data: []byte(flatColorSrc)}}
	_, err = lib.Load(fsys, "Broken.glsl")
	var se *gfx.ShaderError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Broken", se.Name)
	assert.False(t, lib.Exists("Broken"))
}
