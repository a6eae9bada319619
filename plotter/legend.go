package plotter

import (
	"fmt"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// LegendKind distinguishes the two legend renderings.
type LegendKind int

const (
	// LegendSwatches lists labeled color squares for categorical data.
	LegendSwatches LegendKind = iota
	// LegendColorbar draws a continuous ramp with its value range.
	LegendColorbar
)

// LegendEntry is one labeled color in a swatch legend.
type LegendEntry struct {
	Label string
	Color gg.RGBA
}

// Legend is the declarative record a plotter contributes. The legend
// panel turns records into drawn blocks.
type Legend struct {
	Title   string
	Kind    LegendKind
	Entries []LegendEntry
	Cmap    *Colormap
	Norm    Normalize
}

// LegendPanel renders collected legends stacked vertically in a side
// panel. The board installs the records after gathering them from the
// other plotters.
type LegendPanel struct {
	legends []Legend
	pad     float64 // inches around and between blocks
	swatch  float64 // inches per swatch square
	barLen  float64 // inches along a colorbar
}

// NewLegendPanel creates an empty legend panel.
func NewLegendPanel() *LegendPanel {
	return &LegendPanel{pad: 0.08, swatch: 0.14, barLen: 1.2}
}

// SetLegends installs the records to draw, replacing any previous
// set.
func (p *LegendPanel) SetLegends(legends []Legend) {
	p.legends = legends
}

func (p *LegendPanel) Kind() string     { return "legends" }
func (p *LegendPanel) Splittable() bool { return false }
func (p *LegendPanel) Legends() []Legend { return nil }

// SizeHint measures the widest block: a colorbar, or a swatch with
// its longest label.
func (p *LegendPanel) SizeHint(rc RenderContext) float64 {
	if rc.Face == nil {
		return 0
	}
	px := rc.PxPerInch()
	w := 0.0
	for _, lg := range p.legends {
		tw := rc.Face.Advance(lg.Title) / px
		switch lg.Kind {
		case LegendColorbar:
			w = max(w, tw, p.barLen)
		default:
			for _, e := range lg.Entries {
				w = max(w, tw, p.swatch+p.pad+rc.Face.Advance(e.Label)/px)
			}
		}
	}
	if w == 0 {
		return 0
	}
	return w + 2*p.pad
}

func (p *LegendPanel) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	if rc.Face == nil {
		return fmt.Errorf("%w: legends", ErrNoFont)
	}
	if len(rects) != 1 {
		return fmt.Errorf("%w: legend panel wants one rect, got %d", ErrDataLength, len(rects))
	}
	rect := rects[0]
	px := rc.PxPerInch()
	pad := p.pad * px
	sw := p.swatch * px
	line := rc.Face.Metrics().LineHeight()

	dc.SetFont(rc.Face)
	y := rect.Y + pad
	for _, lg := range p.legends {
		if lg.Title != "" {
			dc.SetColor(gg.RGB(0, 0, 0).Color())
			dc.DrawStringAnchored(lg.Title, rect.X+pad, y+line/2, 0, 0.5)
			y += line + pad/2
		}
		switch lg.Kind {
		case LegendColorbar:
			y = p.drawColorbar(dc, lg, rect.X+pad, y, px)
		default:
			for _, e := range lg.Entries {
				h := max(sw, line)
				dc.SetColor(e.Color.Color())
				dc.DrawRectangle(rect.X+pad, y+(h-sw)/2, sw, sw)
				dc.Fill()
				dc.SetColor(gg.RGB(0.15, 0.15, 0.15).Color())
				dc.DrawStringAnchored(e.Label, rect.X+pad+sw+pad, y+h/2, 0, 0.5)
				y += h + pad/4
			}
		}
		y += pad
	}
	return nil
}

// drawColorbar paints a horizontal ramp with its range below, and
// returns the next free y.
func (p *LegendPanel) drawColorbar(dc *gg.Context, lg Legend, x, y, px float64) float64 {
	w := p.barLen * px
	h := p.swatch * px
	grad := gg.NewLinearGradientBrush(x, y, x+w, y)
	for _, stop := range lg.Cmap.Stops {
		grad.AddColorStop(stop.Offset, stop.Color)
	}
	dc.SetFillBrush(grad)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	line := 0.0
	if f := dc.Font(); f != nil {
		line = f.Metrics().LineHeight()
	}
	dc.SetColor(gg.RGB(0.15, 0.15, 0.15).Color())
	dc.DrawStringAnchored(fmt.Sprintf("%.3g", lg.Norm.Vmin), x, y+h+line/2, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.3g", lg.Norm.Vmax), x+w, y+h+line/2, 1, 0.5)
	return y + h + line
}
