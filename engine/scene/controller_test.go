package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/core"
	"github.com/mashenka/mashenka/engine/scene"
	"github.com/stretchr/testify/assert"
)

func press(in *core.Input, k core.Key) {
	in.Handle(core.NewEvent(core.KeyPressedEvent{Key: k}))
}

func release(in *core.Input, k core.Key) {
	in.Handle(core.NewEvent(core.KeyReleasedEvent{Key: k}))
}

func TestControllerInitialProjection(t *testing.T) {
	cc := scene.NewOrthographicCameraController(16.0/9.0, false, core.NewInput())
	assert.Equal(t, float32(1), cc.ZoomLevel())
	assert.Equal(t, mgl32.Ortho(-16.0/9.0, 16.0/9.0, -1, 1, -1, 1), cc.Camera().ProjectionMatrix())
}

func TestControllerMovement(t *testing.T) {
	tests := []struct {
		key  core.Key
		want mgl32.Vec3
	}{
		{core.KeyW, mgl32.Vec3{0, 0.5, 0}},
		{core.KeyS, mgl32.Vec3{0, -0.5, 0}},
		{core.KeyA, mgl32.Vec3{-0.5, 0, 0}},
		{core.KeyD, mgl32.Vec3{0.5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			in := core.NewInput()
			cc := scene.NewOrthographicCameraController(1, false, in)
			press(in, tt.key)
			cc.OnUpdate(0.5)
			assert.True(t, tt.want.ApproxEqual(cc.Camera().Position()), "got %v", cc.Camera().Position())

			release(in, tt.key)
			cc.OnUpdate(0.5)
			assert.True(t, tt.want.ApproxEqual(cc.Camera().Position()))
		})
	}
}

func TestControllerSpeedFollowsZoom(t *testing.T) {
	in := core.NewInput()
	cc := scene.NewOrthographicCameraController(1, false, in)
	cc.SetZoomLevel(2)
	press(in, core.KeyD)
	cc.OnUpdate(1)
	assert.InDelta(t, 2, cc.Camera().Position()[0], 1e-6)
}

func TestControllerRotation(t *testing.T) {
	in := core.NewInput()
	press(in, core.KeyQ)

	fixed := scene.NewOrthographicCameraController(1, false, in)
	fixed.OnUpdate(0.5)
	assert.Zero(t, fixed.Camera().Rotation())

	rot := scene.NewOrthographicCameraController(1, true, in)
	rot.OnUpdate(0.5)
	assert.InDelta(t, 90, rot.Camera().Rotation(), 1e-4)

	// Moving forward follows the camera heading.
	release(in, core.KeyQ)
	press(in, core.KeyW)
	rot.OnUpdate(1)
	pos := rot.Camera().Position()
	assert.InDelta(t, -1, pos[0], 1e-5)
	assert.InDelta(t, 0, pos[1], 1e-5)
}

func TestControllerScrollZoomSnaps(t *testing.T) {
	cc := scene.NewOrthographicCameraController(2, false, core.NewInput())
	cc.ZoomDuration = 0

	ev := core.NewEvent(core.MouseScrolledEvent{YOffset: 1})
	cc.OnEvent(ev)
	assert.False(t, ev.Handled(), "scroll stays visible to other layers")
	assert.Equal(t, float32(0.75), cc.ZoomLevel())
	assert.Equal(t, mgl32.Ortho(-1.5, 1.5, -0.75, 0.75, -1, 1), cc.Camera().ProjectionMatrix())

	cc.OnEvent(core.NewEvent(core.MouseScrolledEvent{YOffset: 10}))
	assert.Equal(t, float32(0.25), cc.ZoomLevel(), "zoom is clamped")

	cc.OnEvent(core.NewEvent(core.MouseScrolledEvent{YOffset: -3}))
	assert.Equal(t, float32(1), cc.ZoomLevel())
}

func TestControllerScrollZoomTweens(t *testing.T) {
	cc := scene.NewOrthographicCameraController(1, false, core.NewInput())
	cc.ZoomDuration = 1

	cc.OnEvent(core.NewEvent(core.MouseScrolledEvent{YOffset: 2}))
	assert.Equal(t, float32(1), cc.ZoomLevel(), "tween starts on the next update")

	cc.OnUpdate(0.5)
	mid := cc.ZoomLevel()
	assert.Less(t, mid, float32(1))
	assert.Greater(t, mid, float32(0.5))

	cc.OnUpdate(0.6)
	assert.Equal(t, float32(0.5), cc.ZoomLevel())
	assert.Equal(t, mgl32.Ortho(-0.5, 0.5, -0.5, 0.5, -1, 1), cc.Camera().ProjectionMatrix())
}

func TestControllerResize(t *testing.T) {
	cc := scene.NewOrthographicCameraController(1, false, core.NewInput())

	ev := core.NewEvent(core.WindowResizeEvent{Width: 1600, Height: 800})
	cc.OnEvent(ev)
	assert.False(t, ev.Handled())
	assert.Equal(t, float32(2), cc.AspectRatio())
	assert.Equal(t, mgl32.Ortho(-2, 2, -1, 1, -1, 1), cc.Camera().ProjectionMatrix())

	cc.OnResize(0, 0)
	assert.Equal(t, float32(2), cc.AspectRatio(), "minimized sizes are ignored")
}
