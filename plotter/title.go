package plotter

import (
	"fmt"
	"math"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// Title draws a single text line spanning its panel. Titles keep whole
// panels, so they are not splittable.
type Title struct {
	text  string
	color gg.RGBA
	align layout.Align
	pad   float64
}

// TitleOption configures a Title.
type TitleOption func(*Title)

// TitleColor sets the text color.
func TitleColor(c gg.RGBA) TitleOption {
	return func(t *Title) { t.color = c }
}

// TitleAlign positions the text along the panel. The default is
// centered.
func TitleAlign(a layout.Align) TitleOption {
	return func(t *Title) { t.align = a }
}

// NewTitle creates a title line.
func NewTitle(text string, opts ...TitleOption) *Title {
	t := &Title{text: text, color: gg.RGB(0, 0, 0), align: layout.AlignCenter, pad: 0.05}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Title) Kind() string     { return "title" }
func (t *Title) Splittable() bool { return false }
func (t *Title) Legends() []Legend { return nil }

// SizeHint reserves one text line plus padding.
func (t *Title) SizeHint(rc RenderContext) float64 {
	if rc.Face == nil {
		return 0
	}
	return rc.Face.Metrics().LineHeight()/rc.PxPerInch() + 2*t.pad
}

func (t *Title) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	if rc.Face == nil {
		return fmt.Errorf("%w: title", ErrNoFont)
	}
	if len(rects) != 1 {
		return fmt.Errorf("%w: title wants one rect, got %d", ErrDataLength, len(rects))
	}
	rect := rects[0]
	dc.SetFont(rc.Face)
	dc.SetColor(t.color.Color())

	ax := 0.5
	switch t.align {
	case layout.AlignStart:
		ax = 0
	case layout.AlignEnd:
		ax = 1
	}

	cx := rect.X + rect.W/2
	cy := rect.Y + rect.H/2
	switch rc.Side {
	case layout.SideLeft, layout.SideRight:
		// Rotated text reads bottom to top; the anchor tracks the
		// alignment along the vertical axis.
		y := rect.Y + (1-ax)*rect.H
		if t.align == layout.AlignCenter {
			y = cy
		}
		dc.Push()
		dc.RotateAbout(-math.Pi/2, cx, y)
		dc.DrawStringAnchored(t.text, cx, y, ax, 0.5)
		dc.Pop()
	default:
		x := rect.X + ax*rect.W
		dc.DrawStringAnchored(t.text, x, cy, ax, 0.5)
	}
	return nil
}
