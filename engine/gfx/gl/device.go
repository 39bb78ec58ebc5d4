// Package glbackend implements gfx.Device on OpenGL 3.3 core.
//
// All calls must happen on the thread that owns the GL context.
package glbackend

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx"
	"github.com/mashenka/mashenka/engine/logging"
)

type Device struct {
	info  gfx.DeviceInfo
	slots int
	log   *slog.Logger
}

var _ gfx.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{log: logging.Core()}
}

// Init loads GL function pointers; the context must be current.
func (d *Device) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	d.info = gfx.DeviceInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)
	d.slots = int(units)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	return nil
}

func (d *Device) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) SetClearColor(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) DrawIndexed(va gfx.VertexArray, indexCount int) {
	ib := va.IndexBuffer()
	if ib == nil {
		d.log.Warn("DrawIndexed without index buffer")
		return
	}
	if indexCount == 0 {
		indexCount = ib.Count()
	}
	va.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, unsafe.Pointer(nil))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// MaxTextureSlots is capped at 16, the fragment unit count GL 3.3 guarantees
// and the u_Textures array size of the bundled shaders.
func (d *Device) MaxTextureSlots() int {
	if d.slots <= 0 {
		return 16
	}
	return min(d.slots, 16)
}

func (d *Device) Info() gfx.DeviceInfo { return d.info }

func (d *Device) Shutdown() {
	gl.UseProgram(0)
	gl.BindVertexArray(0)
}

func (d *Device) CreateShader(name string, src gfx.ShaderSource) (gfx.Shader, error) {
	if src.Vertex == "" || src.Fragment == "" {
		return nil, &gfx.ShaderError{Name: name, Stage: "parse", Log: "vertex and fragment stages are required"}
	}
	prog, err := makeProgram(name, src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return &Shader{name: name, program: prog, locations: make(map[string]int32)}, nil
}

func (d *Device) CreateVertexBuffer(vertices []float32) (gfx.VertexBuffer, error) {
	return newVertexBuffer(vertices, len(vertices), gl.STATIC_DRAW), nil
}

func (d *Device) CreateDynamicVertexBuffer(size int) (gfx.VertexBuffer, error) {
	return newVertexBuffer(nil, size, gl.DYNAMIC_DRAW), nil
}

func (d *Device) CreateIndexBuffer(indices []uint32) (gfx.IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("gl: empty index buffer")
	}
	return newIndexBuffer(indices), nil
}

func (d *Device) CreateVertexArray() (gfx.VertexArray, error) {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va, nil
}

func (d *Device) CreateTexture2D(spec gfx.TextureSpec) (gfx.Texture2D, error) {
	return newTexture(spec)
}
