package plotter

import (
	"fmt"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// Bars draws one bar per data index, growing away from the main
// canvas. Negative values extend past the baseline.
type Bars struct {
	values []float64
	color  gg.RGBA
	frac   float64 // bar width as a share of its slot
	title  string

	chunks [][]int
}

// BarsOption configures a Bars plotter.
type BarsOption func(*Bars)

// BarsColor sets the fill color.
func BarsColor(c gg.RGBA) BarsOption {
	return func(b *Bars) { b.color = c }
}

// BarsWidth sets the bar width as a fraction of the per-index slot,
// in (0, 1].
func BarsWidth(frac float64) BarsOption {
	return func(b *Bars) {
		if frac > 0 && frac <= 1 {
			b.frac = frac
		}
	}
}

// BarsLegend titles a swatch legend for the track.
func BarsLegend(title string) BarsOption {
	return func(b *Bars) { b.title = title }
}

// NewBars creates a bar track over values, one per index of the
// attached axis.
func NewBars(values []float64, opts ...BarsOption) *Bars {
	b := &Bars{values: values, color: CategoricalPalette[0], frac: 0.8}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bars) Kind() string                      { return "bars" }
func (b *Bars) SizeHint(rc RenderContext) float64 { return 0 }
func (b *Bars) Splittable() bool                  { return true }

// SetSplit implements Splitter; side tracks use the row argument.
func (b *Bars) SetSplit(rows, cols [][]int) { b.chunks = rows }

func (b *Bars) Legends() []Legend {
	if b.title == "" {
		return nil
	}
	return []Legend{{Title: b.title, Kind: LegendSwatches, Entries: []LegendEntry{{Label: b.title, Color: b.color}}}}
}

func (b *Bars) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	chunks := b.chunks
	if chunks == nil {
		chunks = identityChunks(len(b.values))
	}
	if len(rects) != len(chunks) {
		return fmt.Errorf("%w: %d rects for %d segments", ErrDataLength, len(rects), len(chunks))
	}
	if chunkTotal(chunks) != len(b.values) {
		return fmt.Errorf("%w: split covers %d, have %d values", ErrDataLength, chunkTotal(chunks), len(b.values))
	}

	lo, hi := 0.0, 0.0
	for _, v := range b.values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	dc.SetColor(b.color.Color())
	for ci, idx := range chunks {
		rect := rects[ci]
		for i, vi := range idx {
			b.drawBar(dc, rect, rc.Side, i, len(idx), b.values[vi], lo, span)
		}
	}
	return nil
}

// drawBar places one bar in its slot. The baseline (value zero) sits
// at offset -lo/span from the main-canvas edge of the panel.
func (b *Bars) drawBar(dc *gg.Context, rect layout.Rect, side layout.Side, slot, slots int, v, lo, span float64) {
	f0 := (0 - lo) / span
	f1 := (v - lo) / span
	if f1 < f0 {
		f0, f1 = f1, f0
	}

	if side == layout.SideLeft || side == layout.SideRight {
		sh := rect.H / float64(slots)
		bh := sh * b.frac
		y := rect.Y + float64(slot)*sh + (sh-bh)/2
		var x0, x1 float64
		if side == layout.SideLeft {
			// Grows leftward from the right edge.
			x0 = rect.Right() - f1*rect.W
			x1 = rect.Right() - f0*rect.W
		} else {
			x0 = rect.X + f0*rect.W
			x1 = rect.X + f1*rect.W
		}
		dc.DrawRectangle(x0, y, x1-x0, bh)
	} else {
		sw := rect.W / float64(slots)
		bw := sw * b.frac
		x := rect.X + float64(slot)*sw + (sw-bw)/2
		var y0, y1 float64
		if side == layout.SideBottom {
			y0 = rect.Y + f0*rect.H
			y1 = rect.Y + f1*rect.H
		} else {
			// Top panels (and layers) grow upward from the bottom edge.
			y0 = rect.Bottom() - f1*rect.H
			y1 = rect.Bottom() - f0*rect.H
		}
		dc.DrawRectangle(x, y0, bw, y1-y0)
	}
	dc.Fill()
}
