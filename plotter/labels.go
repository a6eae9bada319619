package plotter

import (
	"errors"
	"fmt"
	"math"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// ErrNoFont reports a text plotter rendered without a font face in
// the context.
var ErrNoFont = errors.New("plotter: no font face")

// Labels draws one text label per data index. Labels on the left and
// right run horizontally toward the main canvas; labels above and
// below are rotated to read along the axis.
type Labels struct {
	texts []string
	color gg.RGBA
	pad   float64 // inches between text and the canvas edge

	chunks [][]int
}

// LabelsOption configures a Labels plotter.
type LabelsOption func(*Labels)

// LabelsColor sets the text color.
func LabelsColor(c gg.RGBA) LabelsOption {
	return func(l *Labels) { l.color = c }
}

// LabelsPad sets the gap between the text and the canvas edge, in
// inches.
func LabelsPad(pad float64) LabelsOption {
	return func(l *Labels) { l.pad = pad }
}

// NewLabels creates a label track, one string per index of the
// attached axis.
func NewLabels(texts []string, opts ...LabelsOption) *Labels {
	l := &Labels{texts: texts, color: gg.RGB(0.15, 0.15, 0.15), pad: 0.05}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Labels) Kind() string     { return "labels" }
func (l *Labels) Splittable() bool { return true }
func (l *Labels) Legends() []Legend { return nil }

// SetSplit implements Splitter.
func (l *Labels) SetSplit(rows, cols [][]int) { l.chunks = rows }

// SizeHint measures the longest label and returns its extent plus
// padding, in inches.
func (l *Labels) SizeHint(rc RenderContext) float64 {
	if rc.Face == nil {
		return 0
	}
	w := 0.0
	for _, s := range l.texts {
		w = max(w, rc.Face.Advance(s))
	}
	return w/rc.PxPerInch() + 2*l.pad
}

func (l *Labels) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	if rc.Face == nil {
		return fmt.Errorf("%w: labels", ErrNoFont)
	}
	chunks := l.chunks
	if chunks == nil {
		chunks = identityChunks(len(l.texts))
	}
	if len(rects) != len(chunks) {
		return fmt.Errorf("%w: %d rects for %d segments", ErrDataLength, len(rects), len(chunks))
	}
	if chunkTotal(chunks) != len(l.texts) {
		return fmt.Errorf("%w: split covers %d, have %d labels", ErrDataLength, chunkTotal(chunks), len(l.texts))
	}

	dc.SetFont(rc.Face)
	dc.SetColor(l.color.Color())
	padPx := l.pad * rc.PxPerInch()
	for ci, idx := range chunks {
		rect := rects[ci]
		for i, ti := range idx {
			l.drawLabel(dc, rect, rc.Side, i, len(idx), l.texts[ti], padPx)
		}
	}
	return nil
}

func (l *Labels) drawLabel(dc *gg.Context, rect layout.Rect, side layout.Side, slot, slots int, s string, padPx float64) {
	switch side {
	case layout.SideLeft:
		cy := rect.Y + (float64(slot)+0.5)*rect.H/float64(slots)
		dc.DrawStringAnchored(s, rect.Right()-padPx, cy, 1, 0.5)
	case layout.SideRight:
		cy := rect.Y + (float64(slot)+0.5)*rect.H/float64(slots)
		dc.DrawStringAnchored(s, rect.X+padPx, cy, 0, 0.5)
	case layout.SideTop:
		cx := rect.X + (float64(slot)+0.5)*rect.W/float64(slots)
		dc.Push()
		dc.RotateAbout(-math.Pi/2, cx, rect.Bottom()-padPx)
		dc.DrawStringAnchored(s, cx, rect.Bottom()-padPx, 0, 0.5)
		dc.Pop()
	default: // SideBottom and layers
		cx := rect.X + (float64(slot)+0.5)*rect.W/float64(slots)
		dc.Push()
		dc.RotateAbout(-math.Pi/2, cx, rect.Y+padPx)
		dc.DrawStringAnchored(s, cx, rect.Y+padPx, 1, 0.5)
		dc.Pop()
	}
}
