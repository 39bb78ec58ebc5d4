package gfx

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/mashenka/mashenka/engine/logging"
)

// ShaderLibrary owns shaders by name.
type ShaderLibrary struct {
	device  Device
	shaders map[string]Shader
}

func NewShaderLibrary(d Device) *ShaderLibrary {
	return &ShaderLibrary{device: d, shaders: make(map[string]Shader)}
}

// Add registers s under its own name.
func (l *ShaderLibrary) Add(s Shader) error {
	return l.AddNamed(s.Name(), s)
}

func (l *ShaderLibrary) AddNamed(name string, s Shader) error {
	if l.Exists(name) {
		return fmt.Errorf("%w: %s", ErrShaderExists, name)
	}
	l.shaders[name] = s
	return nil
}

// Load compiles the combined shader file at p and adds it under the file's
// base name without extension ("shaders/Texture.glsl" -> "Texture").
func (l *ShaderLibrary) Load(fsys fs.FS, p string) (Shader, error) {
	base := path.Base(p)
	return l.LoadNamed(strings.TrimSuffix(base, path.Ext(base)), fsys, p)
}

func (l *ShaderLibrary) LoadNamed(name string, fsys fs.FS, p string) (Shader, error) {
	if l.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrShaderExists, name)
	}
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("load shader %s: %w", p, err)
	}
	src, err := ParseShaderSource(name, string(data))
	if err != nil {
		return nil, err
	}
	s, err := l.device.CreateShader(name, src)
	if err != nil {
		return nil, err
	}
	l.shaders[name] = s
	logging.Core().Debug("shader loaded", "name", name, "path", p)
	return s, nil
}

func (l *ShaderLibrary) Get(name string) (Shader, error) {
	s, ok := l.shaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShaderNotFound, name)
	}
	return s, nil
}

func (l *ShaderLibrary) Exists(name string) bool {
	_, ok := l.shaders[name]
	return ok
}

// Release frees every shader and empties the library.
func (l *ShaderLibrary) Release() {
	for name, s := range l.shaders {
		s.Release()
		delete(l.shaders, name)
	}
}
