// Package ui lays out retained widget trees in pixel space and draws them
// through Renderer2D. Layout runs top-left origin, Y down; drawing maps it
// into the Y-up world of an overlay camera spanning the viewport.
package ui

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/gfx/renderer2d"
	"github.com/mashenka/mashenka/engine/text"
)

type SizeMode int

const (
	SizeFit SizeMode = iota
	SizeFixed
	SizeExpand
)

const (
	axisX = 0
	axisY = 1
)

// Constraints bound a layout per axis. A zero Max is unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type LayoutResult struct {
	Size [2]float32
}

// Context carries what a draw pass needs. Viewport is x, y, width, height in
// pixels; world y = Viewport[1]+Viewport[3] at its top edge.
type Context struct {
	Viewport    [4]float32
	DefaultFont *text.Font
	Renderer    *renderer2d.Renderer2D
	Depth       float32
}

// worldRect converts a pixel rect to the center/size form of Renderer2D.
func (c *Context) worldRect(pos, size [2]float32) (mgl32.Vec3, mgl32.Vec2) {
	top := c.Viewport[1] + c.Viewport[3]
	return mgl32.Vec3{pos[0] + size[0]/2, top - pos[1] - size[1]/2, c.Depth}, mgl32.Vec2{size[0], size[1]}
}

func (c *Context) worldPoint(x, y float32) mgl32.Vec3 {
	return mgl32.Vec3{x, c.Viewport[1] + c.Viewport[3] - y, c.Depth}
}

type Element interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) LayoutResult
	Draw(ctx *Context)
}

// Base is the node state shared by every element.
type Base struct {
	parent   Element
	children []Element
	pos      [2]float32
	size     [2]float32
	color    colors.Color
	mode     [2]SizeMode
	fixed    [2]float32
	padding  [4]float32 // left, top, right, bottom
}

func (b *Base) Parent() Element         { return b.parent }
func (b *Base) Children() []Element     { return b.children }
func (b *Base) Pos() (x, y float32)     { return b.pos[0], b.pos[1] }
func (b *Base) Size() (w, h float32)    { return b.size[0], b.size[1] }
func (b *Base) Padding() [4]float32     { return b.padding }
func (b *Base) SetColor(c colors.Color) { b.color = c }

// translate moves b and its whole subtree.
func (b *Base) translate(dx, dy float32) {
	b.pos[0] += dx
	b.pos[1] += dy
	for _, c := range b.children {
		c.Node().translate(dx, dy)
	}
}

func (b *Base) paddingAxis(axis int) float32 { return b.padding[axis] + b.padding[axis+2] }

func (b *Base) resolveAxis(axis int, content, lo, hi float32) float32 {
	hi = unbounded(hi)
	switch b.mode[axis] {
	case SizeFixed:
		if b.fixed[axis] > 0 {
			return clamp(b.fixed[axis], lo, hi)
		}
	case SizeExpand:
		if hi < math.MaxFloat32 {
			return hi
		}
	}
	return clamp(content, lo, hi)
}

func (b *Base) adopt(kids []Element, owner Element) {
	for _, k := range kids {
		k.Node().parent = owner
	}
	b.children = append(b.children, kids...)
}

func unbounded(limit float32) float32 {
	if limit == 0 {
		return math.MaxFloat32
	}
	return limit
}

func clamp(v, lo, hi float32) float32 { return min(max(v, lo), hi) }

// Common implements the fluent setters for an element type T.
type Common[T any] struct {
	owner T
	base  Base
}

func newCommon[T any](owner T) Common[T] { return Common[T]{owner: owner} }

func (c *Common[T]) Node() *Base              { return &c.base }
func (c *Common[T]) Color(col colors.Color) T { c.base.color = col; return c.owner }

func (c *Common[T]) WidthFit() T    { c.base.mode[axisX] = SizeFit; return c.owner }
func (c *Common[T]) WidthExpand() T { c.base.mode[axisX] = SizeExpand; return c.owner }
func (c *Common[T]) WidthFixed(w float32) T {
	c.base.mode[axisX], c.base.fixed[axisX] = SizeFixed, w
	return c.owner
}

func (c *Common[T]) HeightFit() T    { c.base.mode[axisY] = SizeFit; return c.owner }
func (c *Common[T]) HeightExpand() T { c.base.mode[axisY] = SizeExpand; return c.owner }
func (c *Common[T]) HeightFixed(h float32) T {
	c.base.mode[axisY], c.base.fixed[axisY] = SizeFixed, h
	return c.owner
}

func (c *Common[T]) Padding(all float32) T { return c.Padding4(all, all, all, all) }
func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	return c.Padding4(horizontal, vertical, horizontal, vertical)
}
func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.padding = [4]float32{left, top, right, bottom}
	return c.owner
}

func (c *Common[T]) Children(kids ...Element) T {
	c.base.adopt(kids, any(c.owner).(Element))
	return c.owner
}
