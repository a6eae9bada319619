// Package dendrogram clusters matrix rows hierarchically and renders
// the resulting trees next to a heatmap. The leaf order feeds the
// layout reordering; Draw paints the tree into a panel rectangle with
// the leaves against the main canvas edge.
package dendrogram

import (
	"fmt"
	"image/color"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// Option configures clustering.
type Option func(*config)

type config struct {
	method Method
	metric Metric
}

// WithMethod selects the linkage criterion. The default is Ward.
func WithMethod(m Method) Option {
	return func(c *config) { c.method = m }
}

// WithMetric selects the pairwise distance. The default is Euclidean;
// Ward linkage always uses Euclidean regardless.
func WithMetric(m Metric) Option {
	return func(c *config) { c.metric = m }
}

// link is one U-shaped connector in normalized coordinates: x in
// [0, 1] across the leaves, h in [0, 1] from leaf edge to root.
type link struct {
	xa, ha float64
	xb, hb float64
	h      float64
}

// Dendrogram is the clustering result for one matrix: the merge steps,
// the left-to-right leaf order, and normalized link coordinates for
// drawing.
type Dendrogram struct {
	n      int
	merges []Merge
	order  []int
	links  []link
	maxH   float64
	rootX  float64
}

// New clusters the rows of data. A single row yields a trivial tree
// with no links.
func New(data [][]float64, opts ...Option) (*Dendrogram, error) {
	cfg := config{method: Ward, metric: Euclidean}
	for _, opt := range opts {
		opt(&cfg)
	}
	merges, err := Linkage(data, cfg.method, cfg.metric)
	if err != nil {
		return nil, err
	}
	d := &Dendrogram{n: len(data), merges: merges}
	d.computeOrder()
	d.computeLinks()
	return d, nil
}

// computeOrder walks the tree from the root, visiting each merge's
// first cluster before its second, and collects leaves left to right.
func (d *Dendrogram) computeOrder() {
	if d.n == 1 {
		d.order = []int{0}
		return
	}
	d.order = make([]int, 0, d.n)
	var walk func(id int)
	walk = func(id int) {
		if id < d.n {
			d.order = append(d.order, id)
			return
		}
		m := d.merges[id-d.n]
		walk(m.A)
		walk(m.B)
	}
	walk(d.n + len(d.merges) - 1)
}

// computeLinks assigns each cluster a normalized x position (leaves at
// (i+0.5)/n in display order, parents at the midpoint of their
// children) and a height scaled into [0, 1].
func (d *Dendrogram) computeLinks() {
	d.rootX = 0.5
	if len(d.merges) == 0 {
		return
	}
	for _, m := range d.merges {
		d.maxH = max(d.maxH, m.Dist)
	}
	scale := d.maxH
	if scale == 0 {
		scale = 1
	}

	xs := make([]float64, d.n+len(d.merges))
	hs := make([]float64, d.n+len(d.merges))
	for i, leaf := range d.order {
		xs[leaf] = (float64(i) + 0.5) / float64(d.n)
	}
	d.links = make([]link, len(d.merges))
	for i, m := range d.merges {
		id := d.n + i
		xs[id] = (xs[m.A] + xs[m.B]) / 2
		hs[id] = m.Dist / scale
		d.links[i] = link{
			xa: xs[m.A], ha: hs[m.A],
			xb: xs[m.B], hb: hs[m.B],
			h: hs[id],
		}
	}
	d.rootX = xs[d.n+len(d.merges)-1]
}

// RootPos returns the normalized position of the root along the leaf
// axis, in [0, 1].
func (d *Dendrogram) RootPos() float64 { return d.rootX }

// Order returns the leaf indices left to right (or top to bottom for a
// side tree).
func (d *Dendrogram) Order() []int {
	out := make([]int, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of leaves.
func (d *Dendrogram) Len() int { return d.n }

// RootHeight returns the largest merge distance.
func (d *Dendrogram) RootHeight() float64 { return d.maxH }

// DefaultLineColor is the stroke used when DrawStyled is not called.
var DefaultLineColor = color.RGBA{R: 0x26, G: 0x26, B: 0x26, A: 0xff}

// Draw renders the tree into rect (pixels) with default styling. side
// tells which side of the main canvas the panel sits on, so the leaves
// face the canvas: a top tree grows upward, a left tree leftward.
func (d *Dendrogram) Draw(dc *gg.Context, rect layout.Rect, side layout.Side) error {
	return d.DrawStyled(dc, rect, side, DefaultLineColor, 1)
}

// DrawStyled renders the tree with an explicit stroke color and width.
func (d *Dendrogram) DrawStyled(dc *gg.Context, rect layout.Rect, side layout.Side, c color.Color, lineWidth float64) error {
	at, err := anchorFunc(rect, side)
	if err != nil {
		return err
	}
	dc.Push()
	dc.SetColor(c)
	dc.SetLineWidth(lineWidth)
	for _, ln := range d.links {
		x0, y0 := at(ln.xa, ln.ha)
		x1, y1 := at(ln.xa, ln.h)
		x2, y2 := at(ln.xb, ln.h)
		x3, y3 := at(ln.xb, ln.hb)
		dc.MoveTo(x0, y0)
		dc.LineTo(x1, y1)
		dc.LineTo(x2, y2)
		dc.LineTo(x3, y3)
	}
	dc.Stroke()
	dc.Pop()
	return nil
}

// anchorFunc maps normalized (x, h) tree coordinates into rect, with
// the leaves (h=0) on the edge facing the main canvas.
func anchorFunc(rect layout.Rect, side layout.Side) (func(x, h float64) (float64, float64), error) {
	switch side {
	case layout.SideTop:
		return func(x, h float64) (float64, float64) {
			return rect.X + x*rect.W, rect.Bottom() - h*rect.H
		}, nil
	case layout.SideBottom:
		return func(x, h float64) (float64, float64) {
			return rect.X + x*rect.W, rect.Y + h*rect.H
		}, nil
	case layout.SideLeft:
		return func(x, h float64) (float64, float64) {
			return rect.Right() - h*rect.W, rect.Y + x*rect.H
		}, nil
	case layout.SideRight:
		return func(x, h float64) (float64, float64) {
			return rect.X + h*rect.W, rect.Y + x*rect.H
		}, nil
	}
	return nil, fmt.Errorf("dendrogram: cannot draw on side %v", side)
}
