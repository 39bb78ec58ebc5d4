// Package gfx defines the rendering contracts the engine core draws through
// and the Renderer that submits geometry against a camera.
//
// Backends (gfx/gl, gfx/ebitengfx) implement Device; gfx/gfxtest records
// calls for tests.
package gfx

import "github.com/mashenka/mashenka/engine/colors"

// RenderCommand is the minimal set of GPU commands the renderers issue.
type RenderCommand interface {
	Init() error
	SetViewport(x, y, width, height int)
	SetClearColor(c colors.Color)
	Clear()
	// DrawIndexed draws indexCount indices of va; 0 draws the whole index buffer.
	DrawIndexed(va VertexArray, indexCount int)
	// MaxTextureSlots is the number of texture units a draw can sample.
	MaxTextureSlots() int
}

// Device is a backend: it executes commands and creates GPU resources.
// Every Create* failure is returned to the caller; nothing is dropped silently.
type Device interface {
	RenderCommand
	CreateShader(name string, src ShaderSource) (Shader, error)
	CreateVertexBuffer(vertices []float32) (VertexBuffer, error)
	// CreateDynamicVertexBuffer allocates room for size floats to be filled by SetData.
	CreateDynamicVertexBuffer(size int) (VertexBuffer, error)
	CreateIndexBuffer(indices []uint32) (IndexBuffer, error)
	CreateVertexArray() (VertexArray, error)
	CreateTexture2D(spec TextureSpec) (Texture2D, error)
	Info() DeviceInfo
	Shutdown()
}

// DeviceInfo describes the active GPU backend.
type DeviceInfo struct {
	Vendor   string
	Renderer string
	Version  string
}
