// Package scene holds cameras and the controllers that drive them.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/core"
)

// Camera provides the matrices a renderer scene is drawn with. Rotation is in
// degrees around Z.
type Camera interface {
	SetProjection(left, right, bottom, top float32)
	OnEvent(ev *core.Event)
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	Rotation() float32
	SetRotation(degrees float32)
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	ViewProjectionMatrix() mgl32.Mat4
}

// OrthographicCamera projects the box [left,right]x[bottom,top]x[-1,1].
type OrthographicCamera struct {
	projection mgl32.Mat4
	view       mgl32.Mat4
	vp         mgl32.Mat4
	position   mgl32.Vec3
	rotation   float32
	dirty      bool
}

var _ Camera = (*OrthographicCamera)(nil)

func NewOrthographicCamera(left, right, bottom, top float32) *OrthographicCamera {
	c := &OrthographicCamera{
		projection: mgl32.Ortho(left, right, bottom, top, -1, 1),
		view:       mgl32.Ident4(),
	}
	c.recalculate()
	return c
}

func (c *OrthographicCamera) SetProjection(left, right, bottom, top float32) {
	c.projection = mgl32.Ortho(left, right, bottom, top, -1, 1)
	c.dirty = true
}

// OnEvent is a hook for camera types that react to events; the plain
// orthographic camera does not.
func (c *OrthographicCamera) OnEvent(*core.Event) {}

func (c *OrthographicCamera) Position() mgl32.Vec3 { return c.position }
func (c *OrthographicCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.dirty = true
}

func (c *OrthographicCamera) Rotation() float32 { return c.rotation }
func (c *OrthographicCamera) SetRotation(degrees float32) {
	c.rotation = degrees
	c.dirty = true
}

func (c *OrthographicCamera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

func (c *OrthographicCamera) ViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.recalculate()
	}
	return c.view
}

func (c *OrthographicCamera) ViewProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.recalculate()
	}
	return c.vp
}

func (c *OrthographicCamera) recalculate() {
	transform := mgl32.Translate3D(c.position[0], c.position[1], c.position[2]).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.rotation)))
	c.view = transform.Inv()
	c.vp = c.projection.Mul4(c.view)
	c.dirty = false
}
