package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minZoom  = 0.25
	zoomStep = 0.25
)

// OrthographicCameraController moves an OrthographicCamera with WASD, rotates
// it with Q/E when rotation is enabled and zooms on mouse scroll. The view
// spans [-aspect*zoom, aspect*zoom] x [-zoom, zoom].
type OrthographicCameraController struct {
	// RotationSpeed is in degrees per second.
	RotationSpeed float32
	// ZoomDuration is the scroll zoom tween length in seconds; 0 snaps.
	ZoomDuration float32

	aspect   float32
	zoom     float32
	target   float32
	rotation bool

	position      mgl32.Vec3
	rotationAngle float32

	input  *core.Input
	camera *OrthographicCamera
	tween  *gween.Tween
}

func NewOrthographicCameraController(aspect float32, rotation bool, input *core.Input) *OrthographicCameraController {
	cc := &OrthographicCameraController{
		RotationSpeed: 180,
		ZoomDuration:  0.15,
		aspect:        aspect,
		zoom:          1,
		target:        1,
		rotation:      rotation,
		input:         input,
	}
	cc.camera = NewOrthographicCamera(-aspect*cc.zoom, aspect*cc.zoom, -cc.zoom, cc.zoom)
	return cc
}

func (cc *OrthographicCameraController) Camera() *OrthographicCamera { return cc.camera }
func (cc *OrthographicCameraController) AspectRatio() float32        { return cc.aspect }
func (cc *OrthographicCameraController) ZoomLevel() float32          { return cc.zoom }

// TranslationSpeed grows with the zoom so panning feels constant on screen.
func (cc *OrthographicCameraController) TranslationSpeed() float32 { return cc.zoom }

// SetZoomLevel snaps the zoom, cancelling any running tween.
func (cc *OrthographicCameraController) SetZoomLevel(z float32) {
	z = max(z, minZoom)
	cc.zoom, cc.target, cc.tween = z, z, nil
	cc.updateProjection()
}

func (cc *OrthographicCameraController) OnUpdate(ts core.Timestep) {
	dt := ts.Seconds()

	if cc.tween != nil {
		z, done := cc.tween.Update(dt)
		cc.zoom = z
		if done {
			cc.zoom, cc.tween = cc.target, nil
		}
		cc.updateProjection()
	}

	if cc.input != nil {
		speed := cc.TranslationSpeed() * dt
		rad := float64(mgl32.DegToRad(cc.rotationAngle))
		cos, sin := float32(math.Cos(rad)), float32(math.Sin(rad))

		if cc.input.IsKeyPressed(core.KeyA) {
			cc.position = cc.position.Sub(mgl32.Vec3{cos * speed, sin * speed, 0})
		} else if cc.input.IsKeyPressed(core.KeyD) {
			cc.position = cc.position.Add(mgl32.Vec3{cos * speed, sin * speed, 0})
		}
		if cc.input.IsKeyPressed(core.KeyW) {
			cc.position = cc.position.Add(mgl32.Vec3{-sin * speed, cos * speed, 0})
		} else if cc.input.IsKeyPressed(core.KeyS) {
			cc.position = cc.position.Sub(mgl32.Vec3{-sin * speed, cos * speed, 0})
		}

		if cc.rotation {
			if cc.input.IsKeyPressed(core.KeyQ) {
				cc.rotationAngle += cc.RotationSpeed * dt
			}
			if cc.input.IsKeyPressed(core.KeyE) {
				cc.rotationAngle -= cc.RotationSpeed * dt
			}
			cc.rotationAngle = wrapDegrees(cc.rotationAngle)
			cc.camera.SetRotation(cc.rotationAngle)
		}
	}
	cc.camera.SetPosition(cc.position)
}

// OnEvent reacts to scroll and resize without consuming them.
func (cc *OrthographicCameraController) OnEvent(ev *core.Event) {
	d := core.NewEventDispatcher(ev)
	core.Dispatch(d, cc.onMouseScrolled)
	core.Dispatch(d, cc.onWindowResized)
}

// OnResize sets the aspect ratio from a framebuffer size.
func (cc *OrthographicCameraController) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	cc.aspect = float32(width) / float32(height)
	cc.updateProjection()
}

func (cc *OrthographicCameraController) onMouseScrolled(e core.MouseScrolledEvent) bool {
	cc.target = max(cc.target-e.YOffset*zoomStep, minZoom)
	if cc.ZoomDuration <= 0 {
		cc.SetZoomLevel(cc.target)
		return false
	}
	cc.tween = gween.New(cc.zoom, cc.target, cc.ZoomDuration, ease.OutQuad)
	return false
}

func (cc *OrthographicCameraController) onWindowResized(e core.WindowResizeEvent) bool {
	cc.OnResize(e.Width, e.Height)
	return false
}

func (cc *OrthographicCameraController) updateProjection() {
	cc.camera.SetProjection(-cc.aspect*cc.zoom, cc.aspect*cc.zoom, -cc.zoom, cc.zoom)
}

func wrapDegrees(a float32) float32 {
	if a > 180 {
		return a - 360
	}
	if a <= -180 {
		return a + 360
	}
	return a
}
