package ui

import (
	"strings"

	"github.com/mashenka/mashenka/engine/colors"
	"github.com/mashenka/mashenka/engine/text"
)

type Label struct {
	Common[*Label]
	text     string
	fontSize float32
	font     *text.Font
	maxWidth float32
	lines    string
}

func NewLabel(s string) *Label {
	l := &Label{text: s, fontSize: 16}
	l.Common = newCommon(l)
	l.base.color = colors.White
	return l
}

func (l *Label) FontSize(size float32) *Label { l.fontSize = size; return l }
func (l *Label) Font(f *text.Font) *Label     { l.font = f; return l }

// MaxWidth wraps the text at word boundaries to fit width pixels.
func (l *Label) MaxWidth(width float32) *Label { l.maxWidth = width; return l }

func (l *Label) Layout(ctx *Context, c Constraints) LayoutResult {
	if l.font == nil {
		l.font = ctx.DefaultFont
	}
	if l.font == nil {
		l.base.size = [2]float32{}
		return LayoutResult{}
	}
	b := &l.base

	l.lines = l.text
	if limit := l.maxWidth; limit > 0 {
		if c.Max[axisX] > 0 {
			limit = min(limit, c.Max[axisX])
		}
		measure := func(s string) float32 {
			w, _ := text.MeasureText(l.font, s, l.fontSize)
			return w
		}
		l.lines = wrapText(l.text, max(0, limit-b.paddingAxis(axisX)), measure)
	}

	w, h := text.MeasureText(l.font, l.lines, l.fontSize)
	b.size[axisX] = b.resolveAxis(axisX, w+b.paddingAxis(axisX), c.Min[axisX], c.Max[axisX])
	b.size[axisY] = b.resolveAxis(axisY, h+b.paddingAxis(axisY), c.Min[axisY], c.Max[axisY])
	return LayoutResult{Size: b.size}
}

func (l *Label) Draw(ctx *Context) {
	b := &l.base
	if l.font == nil || l.lines == "" || b.color[3] <= 0 {
		return
	}
	at := ctx.worldPoint(b.pos[0]+b.padding[0], b.pos[1]+b.padding[1])
	text.DrawText(ctx.Renderer, l.font, at, l.fontSize, l.lines, b.color)
}

// wrapText breaks s at spaces so no line measures wider than limit. Words
// longer than limit get a line of their own.
func wrapText(s string, limit float32, measure func(string) float32) string {
	var out []string
	space := measure(" ")
	for raw := range strings.SplitSeq(s, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line, width := words[0], measure(words[0])
		for _, w := range words[1:] {
			ww := measure(w)
			if width+space+ww > limit {
				out = append(out, line)
				line, width = w, ww
				continue
			}
			line += " " + w
			width += space + ww
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
