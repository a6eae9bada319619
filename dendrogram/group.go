package dendrogram

import (
	"fmt"
	"image/color"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// Group clusters partitioned data at two levels: each chunk's rows are
// clustered on their own, and the chunk mean vectors are clustered
// again to order the chunks themselves.
type Group struct {
	chunks []*Dendrogram
	meta   *Dendrogram
}

// NewGroup builds per-chunk dendrograms and the meta tree over chunk
// means. chunks holds one row matrix per chunk; every chunk must share
// the same column count.
func NewGroup(chunks [][][]float64, opts ...Option) (*Group, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks", ErrData)
	}
	g := &Group{chunks: make([]*Dendrogram, len(chunks))}
	means := make([][]float64, len(chunks))
	for i, data := range chunks {
		d, err := New(data, opts...)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		g.chunks[i] = d
		means[i] = columnMeans(data)
	}
	meta, err := New(means, opts...)
	if err != nil {
		return nil, err
	}
	g.meta = meta
	return g, nil
}

func columnMeans(data [][]float64) []float64 {
	mean := make([]float64, len(data[0]))
	for _, row := range data {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(data))
	}
	return mean
}

// ChunkOrder returns the chunk indices in display order, as decided by
// the meta tree.
func (g *Group) ChunkOrder() []int {
	return g.meta.Order()
}

// Chunk returns the dendrogram of the i-th original chunk.
func (g *Group) Chunk(i int) *Dendrogram {
	return g.chunks[i]
}

// Len returns the number of chunks.
func (g *Group) Len() int { return len(g.chunks) }

// Draw renders the two-level tree with default styling. rects holds
// one panel rectangle per displayed chunk, in display order (matching
// ChunkOrder); the meta tree spans them in the remaining band of the
// panel.
func (g *Group) Draw(dc *gg.Context, rects []layout.Rect, side layout.Side) error {
	return g.DrawStyled(dc, rects, side, DefaultLineColor, 1)
}

// DrawStyled renders the two-level tree with an explicit stroke.
func (g *Group) DrawStyled(dc *gg.Context, rects []layout.Rect, side layout.Side, c color.Color, lineWidth float64) error {
	order := g.ChunkOrder()
	if len(rects) != len(order) {
		return fmt.Errorf("%w: %d rects for %d chunks", ErrData, len(rects), len(order))
	}

	// Share of the panel depth given to the meta tree, by relative
	// root height.
	chunkH := 0.0
	for _, d := range g.chunks {
		chunkH = max(chunkH, d.RootHeight())
	}
	band := 0.0
	if g.meta.RootHeight() > 0 {
		band = g.meta.RootHeight() / (g.meta.RootHeight() + chunkH)
		band = min(max(band, 0.15), 0.6)
	}

	// Per-chunk sub-rects with the meta band carved off the root side,
	// plus the pixel anchor of each chunk root for the meta leaves.
	anchors := make([]float64, len(order))
	for i, ci := range order {
		d := g.chunks[ci]
		sub := carve(rects[i], side, band)
		if err := d.DrawStyled(dc, sub, side, c, lineWidth); err != nil {
			return err
		}
		if side.Horizontal() {
			anchors[i] = sub.Y + d.RootPos()*sub.H
		} else {
			anchors[i] = sub.X + d.RootPos()*sub.W
		}
	}
	if band == 0 || len(order) < 2 {
		return nil
	}

	bounds := rects[0]
	for _, r := range rects[1:] {
		x0 := min(bounds.X, r.X)
		y0 := min(bounds.Y, r.Y)
		x1 := max(bounds.Right(), r.Right())
		y1 := max(bounds.Bottom(), r.Bottom())
		bounds = layout.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	}
	return g.drawMeta(dc, bounds, side, band, anchors, c, lineWidth)
}

// carve removes the meta band from the root-facing edge of a chunk
// rect, leaving the portion where the chunk's own tree is drawn.
func carve(r layout.Rect, side layout.Side, band float64) layout.Rect {
	switch side {
	case layout.SideTop:
		return layout.Rect{X: r.X, Y: r.Y + band*r.H, W: r.W, H: (1 - band) * r.H}
	case layout.SideBottom:
		return layout.Rect{X: r.X, Y: r.Y, W: r.W, H: (1 - band) * r.H}
	case layout.SideLeft:
		return layout.Rect{X: r.X + band*r.W, Y: r.Y, W: (1 - band) * r.W, H: r.H}
	default: // SideRight
		return layout.Rect{X: r.X, Y: r.Y, W: (1 - band) * r.W, H: r.H}
	}
}

// drawMeta paints the chunk-level tree in the carved band. Leaf
// anchors are the chunk roots' pixel positions along the leaf axis.
func (g *Group) drawMeta(dc *gg.Context, bounds layout.Rect, side layout.Side, band float64, anchors []float64, c color.Color, lineWidth float64) error {
	// depth maps a normalized meta height into pixels, measured from
	// the band's leaf edge toward the root.
	var leafEdge, extent float64
	switch side {
	case layout.SideTop:
		leafEdge, extent = bounds.Y+band*bounds.H, -band * bounds.H
	case layout.SideBottom:
		leafEdge, extent = bounds.Bottom()-band*bounds.H, band*bounds.H
	case layout.SideLeft:
		leafEdge, extent = bounds.X+band*bounds.W, -band * bounds.W
	case layout.SideRight:
		leafEdge, extent = bounds.Right()-band*bounds.W, band*bounds.W
	default:
		return fmt.Errorf("dendrogram: cannot draw on side %v", side)
	}

	m := g.meta
	scale := m.RootHeight()
	if scale == 0 {
		scale = 1
	}
	xs := make([]float64, m.n+len(m.merges))
	hs := make([]float64, m.n+len(m.merges))
	for pos, leaf := range m.order {
		xs[leaf] = anchors[pos]
	}
	dc.Push()
	dc.SetColor(c)
	dc.SetLineWidth(lineWidth)
	for i, mg := range m.merges {
		id := m.n + i
		xs[id] = (xs[mg.A] + xs[mg.B]) / 2
		hs[id] = mg.Dist / scale
		pt := func(x, h float64) (float64, float64) {
			if side.Horizontal() {
				return leafEdge + h*extent, x
			}
			return x, leafEdge + h*extent
		}
		x0, y0 := pt(xs[mg.A], hs[mg.A])
		x1, y1 := pt(xs[mg.A], hs[id])
		x2, y2 := pt(xs[mg.B], hs[id])
		x3, y3 := pt(xs[mg.B], hs[mg.B])
		dc.MoveTo(x0, y0)
		dc.LineTo(x1, y1)
		dc.LineTo(x2, y2)
		dc.LineTo(x3, y3)
	}
	dc.Stroke()
	dc.Pop()
	return nil
}
