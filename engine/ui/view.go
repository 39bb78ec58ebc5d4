package ui

import "github.com/mashenka/mashenka/engine/colors"

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// View is a flex-like container stacking its children along one axis.
type View struct {
	Common[*View]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection
}

func NewView(children ...Element) *View {
	v := &View{gap: 10}
	v.Common = newCommon(v)
	v.base.adopt(children, v)
	return v
}

func (v *View) BgColor(c colors.Color) *View          { v.base.color = c; return v }
func (v *View) FlowDirection(d LayoutDirection) *View { v.flow = d; return v }
func (v *View) Gap(g float32) *View                   { v.gap = g; return v }
func (v *View) AlignMain(a Align) *View               { v.mainAlign = a; return v }
func (v *View) AlignCross(a Align) *View              { v.crossAlign = a; return v }

func (v *View) axes() (main, cross int) {
	if v.flow == LayoutVertical {
		return axisY, axisX
	}
	return axisX, axisY
}

// Layout sizes v and places its children relative to v's position.
func (v *View) Layout(ctx *Context, c Constraints) LayoutResult {
	b := &v.base
	main, cross := v.axes()
	pad := [2]float32{b.paddingAxis(axisX), b.paddingAxis(axisY)}

	var inner Constraints
	for a := range 2 {
		if c.Max[a] > 0 {
			inner.Max[a] = max(0, c.Max[a]-pad[a])
		}
	}

	sizes := make([][2]float32, len(b.children))
	var mainSum, crossMax float32
	expanders := 0
	for i, child := range b.children {
		child.Node().pos = [2]float32{}
		sizes[i] = child.Layout(ctx, inner).Size
		if child.Node().mode[main] == SizeExpand {
			// Expanders only take their share of the free space.
			sizes[i][main] = 0
			expanders++
		}
		mainSum += sizes[i][main]
		crossMax = max(crossMax, sizes[i][cross])
	}
	var gaps float32
	if n := len(b.children); n > 1 {
		gaps = v.gap * float32(n-1)
	}

	var content [2]float32
	content[main] = mainSum + gaps + pad[main]
	content[cross] = crossMax + pad[cross]
	for a := range 2 {
		b.size[a] = b.resolveAxis(a, content[a], c.Min[a], c.Max[a])
	}
	innerSize := [2]float32{max(0, b.size[0]-pad[0]), max(0, b.size[1]-pad[1])}

	free := max(0, innerSize[main]-mainSum-gaps)
	if expanders > 0 {
		share := free / float32(expanders)
		for i, child := range b.children {
			if child.Node().mode[main] == SizeExpand {
				sizes[i][main] += share
			}
		}
		free = 0
	}

	origin := [2]float32{b.pos[0] + b.padding[0], b.pos[1] + b.padding[1]}
	cursor := alignOffset(v.mainAlign, free)
	for i, child := range b.children {
		nb := child.Node()
		size := sizes[i]
		if v.crossAlign == AlignStretch || nb.mode[cross] == SizeExpand {
			size[cross] = innerSize[cross]
		}
		size[cross] = clamp(size[cross], 0, innerSize[cross])

		var at [2]float32
		at[main] = origin[main] + cursor
		at[cross] = origin[cross] + alignOffset(v.crossAlign, innerSize[cross]-size[cross])
		nb.translate(at[0], at[1])
		nb.size = size
		cursor += size[main] + v.gap
	}
	return LayoutResult{Size: b.size}
}

func alignOffset(a Align, free float32) float32 {
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	}
	return 0
}

// Draw lays out a root view against the viewport first, then paints the
// background and the children.
func (v *View) Draw(ctx *Context) {
	b := &v.base
	if b.parent == nil {
		b.pos = [2]float32{}
		v.Layout(ctx, Constraints{Max: [2]float32{ctx.Viewport[2], ctx.Viewport[3]}})
		b.translate(ctx.Viewport[0], ctx.Viewport[1])
	}
	if b.color[3] > 0 {
		pos, size := ctx.worldRect(b.pos, b.size)
		ctx.Renderer.DrawQuad(pos, size, b.color)
	}
	for _, c := range b.children {
		c.Draw(ctx)
	}
}
