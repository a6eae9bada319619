package layout

import "fmt"

// splitTrack normalizes split ratios and inter-chunk spacing into
// fractions of a unit extent. It returns the chunk fractions and the
// anchor (leading-edge offset) of each chunk in [0, 1].
//
// spacing values are fractions of the cell extent; nil means no gaps,
// one value applies to every boundary, otherwise one value per boundary
// is required. groupRatios optionally merges consecutive chunks into
// larger ones (used by panels that span whole groups, like group
// dendrogram bases), absorbing interior gaps.
func splitTrack(ratios, spacing, groupRatios []float64) (frs, anchors []float64, err error) {
	n := len(ratios)
	if n == 0 {
		return nil, nil, fmt.Errorf("%w: empty split ratios", ErrPartition)
	}

	switch {
	case len(spacing) == 0:
		spacing = make([]float64, n-1)
	case len(spacing) == 1 && n > 1:
		sp := make([]float64, n-1)
		for i := range sp {
			sp[i] = spacing[0]
		}
		spacing = sp
	case len(spacing) == 1 && n == 1:
		spacing = nil
	case len(spacing) != n-1:
		return nil, nil, fmt.Errorf("%w: got %d, want %d",
			ErrSpacingLength, len(spacing), n-1)
	}

	var ratioSum, spaceSum float64
	for _, r := range ratios {
		ratioSum += r
	}
	if ratioSum <= 0 {
		return nil, nil, fmt.Errorf("%w: split ratios sum to %g", ErrPartition, ratioSum)
	}
	for _, s := range spacing {
		spaceSum += s
	}
	body := 1 - spaceSum
	if body <= 0 {
		return nil, nil, fmt.Errorf("%w: spacing consumes the whole extent", ErrSizeOverflow)
	}

	frs = make([]float64, n)
	for i, r := range ratios {
		frs[i] = r / ratioSum * body
	}

	if groupRatios != nil {
		return regroupTrack(frs, spacing, groupRatios)
	}

	anchors = make([]float64, n)
	pos := 0.0
	for i, f := range frs {
		anchors[i] = pos
		pos += f
		if i < n-1 {
			pos += spacing[i]
		}
	}
	return frs, anchors, nil
}

// regroupTrack merges consecutive chunks into groups sized proportionally
// to groupRatios. Each group absorbs the gaps between its members; the
// gap after a group's last member separates it from the next group.
func regroupTrack(frs, spacing, groupRatios []float64) (outFrs, anchors []float64, err error) {
	n := len(frs)
	var grSum float64
	for _, g := range groupRatios {
		grSum += g
	}
	if grSum <= 0 {
		return nil, nil, fmt.Errorf("%w: group ratios sum to %g", ErrPartition, grSum)
	}

	counts := make([]int, len(groupRatios))
	total := 0
	for i, g := range groupRatios {
		counts[i] = int(g/grSum*float64(n) + 0.5)
		total += counts[i]
	}
	if total != n {
		return nil, nil, fmt.Errorf("%w: cannot regroup %d chunks with ratios %v",
			ErrPartition, n, groupRatios)
	}

	outFrs = make([]float64, len(counts))
	anchors = make([]float64, len(counts))
	pos := 0.0
	start := 0
	for i, cnt := range counts {
		size := 0.0
		for j := start; j < start+cnt; j++ {
			size += frs[j]
			if j > start {
				size += spacing[j-1]
			}
		}
		anchors[i] = pos
		outFrs[i] = size
		pos += size
		if end := start + cnt; end < n {
			pos += spacing[end-1]
		}
		start += cnt
	}
	return outFrs, anchors, nil
}

// axisSplit records a resolved one-dimensional split of a cell as
// normalized fractions and anchors.
type axisSplit struct {
	frs     []float64
	anchors []float64
}

// cell is one drawable unit of a CrossLayout: the main canvas, a side
// panel, or a padding block (canvas == false).
type cell struct {
	name   string
	side   Side
	canvas bool

	// main-cell extent; side cells use size along their track and
	// inherit the cross extent from the attached main cell.
	width, height float64
	size          SizeSpec
	attach        *cell

	// renderSize overrides an auto size once the content hint is known.
	renderSize float64

	vsplit *axisSplit // columns, left to right
	hsplit *axisSplit // rows, top to bottom

	anchor Point // set during Build
}

// trackSize returns the cell's declared extent along its track,
// accounting for render-size overrides. Only meaningful for side cells.
func (c *cell) trackSize() SizeSpec {
	if c.size.Auto && c.renderSize > 0 {
		return Hinted(c.renderSize)
	}
	return c.size
}

// extent returns the cell's width and height given its resolved track
// size.
func (c *cell) extent(resolved float64) (w, h float64) {
	if c.side == SideMain {
		return c.width, c.height
	}
	if c.side.Horizontal() {
		return resolved, c.attach.height
	}
	return c.attach.width, resolved
}

// rects returns the finalized sub-rectangles of the cell in row-major
// order: a single rect for an unsplit cell, one rect per (row segment,
// column segment) pair otherwise. w and h are the resolved cell extent.
func (c *cell) rects(w, h float64) []Rect {
	xs := []float64{0}
	ws := []float64{w}
	if c.vsplit != nil {
		xs = xs[:0]
		ws = ws[:0]
		for i, a := range c.vsplit.anchors {
			xs = append(xs, a*w)
			ws = append(ws, c.vsplit.frs[i]*w)
		}
	}
	ys := []float64{0}
	hs := []float64{h}
	if c.hsplit != nil {
		ys = ys[:0]
		hs = hs[:0]
		for i, a := range c.hsplit.anchors {
			ys = append(ys, a*h)
			hs = append(hs, c.hsplit.frs[i]*h)
		}
	}

	rects := make([]Rect, 0, len(xs)*len(ys))
	for iy, y := range ys {
		for ix, x := range xs {
			rects = append(rects, Rect{
				X: c.anchor.X + x,
				Y: c.anchor.Y + y,
				W: ws[ix],
				H: hs[iy],
			})
		}
	}
	return rects
}

// gridShape returns the number of row and column segments.
func (c *cell) gridShape() (rows, cols int) {
	rows, cols = 1, 1
	if c.hsplit != nil {
		rows = len(c.hsplit.frs)
	}
	if c.vsplit != nil {
		cols = len(c.vsplit.frs)
	}
	return rows, cols
}
