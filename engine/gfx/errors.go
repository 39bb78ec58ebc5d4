package gfx

import (
	"errors"
	"fmt"
)

var (
	// ErrSceneActive is returned by BeginScene while a scene is already open.
	ErrSceneActive = errors.New("gfx: scene already active")
	// ErrNoActiveScene is returned by Submit/EndScene outside a scene.
	ErrNoActiveScene = errors.New("gfx: no active scene")
	// ErrEmptyLayout is returned when a vertex buffer without layout is added.
	ErrEmptyLayout = errors.New("gfx: vertex buffer has no layout")
	// ErrShaderExists is returned when a library name is taken.
	ErrShaderExists = errors.New("gfx: shader already exists")
	// ErrShaderNotFound is returned for unknown library names.
	ErrShaderNotFound = errors.New("gfx: shader not found")
	// ErrTextureData is returned when pixel data does not match the texture size.
	ErrTextureData = errors.New("gfx: texture data size mismatch")
)

// ShaderError reports a failed compile or link.
type ShaderError struct {
	Name  string
	Stage string // "vertex", "fragment", "link", "parse"
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("shader %q: %s error: %s", e.Name, e.Stage, e.Log)
}
