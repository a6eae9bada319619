package plotter

import (
	"fmt"
	"math"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// Chunk tags each partition segment with a text block, one per
// segment in original segment order. The board reorders the tags when
// clustering reorders the segments.
type Chunk struct {
	texts  []string
	fills  []gg.RGBA
	color  gg.RGBA
	pad    float64
	order  []int
}

// ChunkOption configures a Chunk plotter.
type ChunkOption func(*Chunk)

// ChunkFill sets one background color per segment. Missing entries
// stay transparent.
func ChunkFill(fills ...gg.RGBA) ChunkOption {
	return func(c *Chunk) { c.fills = fills }
}

// ChunkTextColor sets the tag text color.
func ChunkTextColor(col gg.RGBA) ChunkOption {
	return func(c *Chunk) { c.color = col }
}

// NewChunk creates segment tags. texts is indexed by original segment
// position.
func NewChunk(texts []string, opts ...ChunkOption) *Chunk {
	c := &Chunk{texts: texts, color: gg.RGB(0.15, 0.15, 0.15), pad: 0.05}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Chunk) Kind() string     { return "chunk" }
func (c *Chunk) Splittable() bool { return true }
func (c *Chunk) Legends() []Legend { return nil }

// SetChunkOrder implements ChunkOrderer.
func (c *Chunk) SetChunkOrder(order []int) { c.order = order }

// SizeHint reserves one line of text plus padding.
func (c *Chunk) SizeHint(rc RenderContext) float64 {
	if rc.Face == nil {
		return 0
	}
	return rc.Face.Metrics().LineHeight()/rc.PxPerInch() + 2*c.pad
}

func (c *Chunk) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	if rc.Face == nil {
		return fmt.Errorf("%w: chunk tags", ErrNoFont)
	}
	order := c.order
	if order == nil {
		order = make([]int, len(c.texts))
		for i := range order {
			order[i] = i
		}
	}
	if len(rects) != len(order) {
		return fmt.Errorf("%w: %d rects for %d segments", ErrDataLength, len(rects), len(order))
	}

	dc.SetFont(rc.Face)
	vertical := rc.Side == layout.SideLeft || rc.Side == layout.SideRight
	for i, seg := range order {
		if seg < 0 || seg >= len(c.texts) {
			return fmt.Errorf("%w: segment %d out of range", ErrDataLength, seg)
		}
		rect := rects[i]
		if seg < len(c.fills) {
			dc.SetColor(c.fills[seg].Color())
			dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
			dc.Fill()
		}
		dc.SetColor(c.color.Color())
		cx := rect.X + rect.W/2
		cy := rect.Y + rect.H/2
		if vertical {
			dc.Push()
			dc.RotateAbout(-math.Pi/2, cx, cy)
			dc.DrawStringAnchored(c.texts[seg], cx, cy, 0.5, 0.5)
			dc.Pop()
		} else {
			dc.DrawStringAnchored(c.texts[seg], cx, cy, 0.5, 0.5)
		}
	}
	return nil
}
