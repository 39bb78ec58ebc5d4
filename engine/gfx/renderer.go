package gfx

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/logging"
)

// ViewProjector supplies the camera matrix for a scene.
type ViewProjector interface {
	ViewProjectionMatrix() mgl32.Mat4
}

type sceneData struct {
	viewProjection mgl32.Mat4
	active         bool
}

// Renderer submits meshes with a shader against the current scene camera.
// It implements core.Renderer so the Application can drive init, resize and
// shutdown.
type Renderer struct {
	device Device
	scene  sceneData
	log    *slog.Logger
}

func NewRenderer(d Device) *Renderer {
	return &Renderer{device: d, log: logging.Core()}
}

func (r *Renderer) Init() error {
	if err := r.device.Init(); err != nil {
		return err
	}
	info := r.device.Info()
	r.log.Info("renderer initialized", "vendor", info.Vendor, "renderer", info.Renderer, "version", info.Version)
	return nil
}

func (r *Renderer) OnWindowResize(width, height int) {
	r.device.SetViewport(0, 0, width, height)
}

func (r *Renderer) Shutdown() { r.device.Shutdown() }

func (r *Renderer) Device() Device { return r.device }

func (r *Renderer) SceneActive() bool { return r.scene.active }

// BeginScene captures the camera's view-projection for following submits.
func (r *Renderer) BeginScene(camera ViewProjector) error {
	if !core.Assert(!r.scene.active, "BeginScene called twice without EndScene") {
		return ErrSceneActive
	}
	r.scene.viewProjection = camera.ViewProjectionMatrix()
	r.scene.active = true
	return nil
}

// Submit draws va with shader using the scene camera and a model transform.
func (r *Renderer) Submit(shader Shader, va VertexArray, transform mgl32.Mat4) error {
	if !core.Assert(r.scene.active, "Submit called outside BeginScene/EndScene") {
		return ErrNoActiveScene
	}
	shader.Bind()
	shader.UploadUniformMat4("u_ViewProjection", r.scene.viewProjection)
	shader.UploadUniformMat4("u_Transform", transform)

	va.Bind()
	r.device.DrawIndexed(va, 0)
	return nil
}

func (r *Renderer) EndScene() error {
	if !core.Assert(r.scene.active, "EndScene called without BeginScene") {
		return ErrNoActiveScene
	}
	r.scene.active = false
	return nil
}
