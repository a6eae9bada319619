// Package plotter provides the renderers that fill layout panels:
// color meshes, bar tracks, label tracks, categorical strips, chunk
// tags and titles. A plotter never positions itself; the board hands
// it finalized pixel rectangles and a render context.
package plotter

import (
	"errors"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// ErrDataLength reports plotter data whose length does not match the
// axis it is attached to.
var ErrDataLength = errors.New("plotter: data length mismatch")

// RenderContext carries the per-render state a plotter may need:
// the sized font face, the raster resolution, and which side of the
// main canvas the plotter sits on (SideMain for layers).
type RenderContext struct {
	Face text.Face
	DPI  float64
	Side layout.Side
}

// PxPerInch returns the raster scale, defaulting to 96 when the
// context carries none.
func (rc RenderContext) PxPerInch() float64 {
	if rc.DPI <= 0 {
		return 96
	}
	return rc.DPI
}

// Plotter renders one panel. Draw receives one rectangle per segment
// of the panel, in pixels, row-major for a main-canvas grid.
type Plotter interface {
	// Kind names the plotter type, for logging.
	Kind() string

	// SizeHint returns the preferred extent in inches perpendicular to
	// the attached axis. Zero means no preference.
	SizeHint(rc RenderContext) float64

	// Draw paints into the given rectangles.
	Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error

	// Legends returns the legend records this plotter contributes.
	Legends() []Legend

	// Splittable reports whether the plotter's data follows the main
	// axis and may be partitioned with it.
	Splittable() bool
}

// Splitter is implemented by plotters whose data must be reordered
// and partitioned alongside the main matrix. The board installs the
// index chunks before drawing: main-canvas plotters receive both
// axes, side plotters receive their aligned axis in rows with nil
// cols. Each chunk lists original data indices in display order.
type Splitter interface {
	SetSplit(rows, cols [][]int)
}

// ChunkOrderer is implemented by plotters keyed by segment rather
// than by data index, such as chunk tags. order maps display position
// to original segment index.
type ChunkOrderer interface {
	SetChunkOrder(order []int)
}

// identityChunks covers the unsplit case: one chunk of 0..n-1.
func identityChunks(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return [][]int{idx}
}

// chunkTotal returns the summed length of all chunks.
func chunkTotal(chunks [][]int) int {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	return n
}
