package marsilea

import (
	"fmt"
	"math"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/Marsilea-viz/marsilea/plotter"
	"github.com/gogpu/gg"
)

// Composable is anything concatenation accepts: a Board or a
// ClusterBoard.
type Composable interface {
	base() *Board
}

func (b *Board) base() *Board { return b }

// CompositeBoard merges several boards into one figure. Children
// attach around a primary board; by default a child's cross-axis main
// size is rescaled to the primary's so grids stay aligned.
type CompositeBoard struct {
	comp   *layout.CompositeCrossLayout
	boards []*Board
}

// NewCompositeBoard wraps a primary board for concatenation.
func NewCompositeBoard(primary Composable, opts ...layout.CompositeOption) *CompositeBoard {
	p := primary.base()
	return &CompositeBoard{
		comp:   layout.NewComposite(p.lay, opts...),
		boards: []*Board{p},
	}
}

// Append attaches child to one side of the primary. Panel names must
// be unique across the whole composite.
func (c *CompositeBoard) Append(side Side, child Composable, opts ...layout.AppendOption) error {
	cb := child.base()
	if err := c.comp.Append(side, cb.lay, opts...); err != nil {
		return err
	}
	c.boards = append(c.boards, cb)
	return nil
}

// AddSpacer inserts blank space before the next child on a side, in
// inches.
func (c *CompositeBoard) AddSpacer(side Side, size float64) {
	c.comp.AppendSpacer(side, size)
}

// ConcatHorizontal places b to the right of a. b's main height is
// rescaled to a's unless layout.WithAlign is given.
func ConcatHorizontal(a, b Composable, spacing float64, opts ...layout.AppendOption) (*CompositeBoard, error) {
	c := NewCompositeBoard(a)
	if spacing > 0 {
		c.AddSpacer(Right, spacing)
	}
	if err := c.Append(Right, b, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// ConcatVertical places b below a. b's main width is rescaled to a's
// unless layout.WithAlign is given.
func ConcatVertical(a, b Composable, spacing float64, opts ...layout.AppendOption) (*CompositeBoard, error) {
	c := NewCompositeBoard(a)
	if spacing > 0 {
		c.AddSpacer(Bottom, spacing)
	}
	if err := c.Append(Bottom, b, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// PanelNames returns every panel name across the composite, primary
// first, then appended children in order.
func (c *CompositeBoard) PanelNames() []string {
	return c.comp.PanelNames()
}

// Legends merges the children's legend records in concatenation
// order.
func (c *CompositeBoard) Legends() []plotter.Legend {
	var out []plotter.Legend
	for _, b := range c.boards {
		out = append(out, b.Legends()...)
	}
	return out
}

func (c *CompositeBoard) prepare(dpi float64) error {
	for _, b := range c.boards {
		if err := b.prepare(dpi); err != nil {
			return fmt.Errorf("board %q: %w", b.name, err)
		}
	}
	return nil
}

// FigureSize resolves the merged layout, including content size hints
// at the given dpi, and returns its extent in inches.
func (c *CompositeBoard) FigureSize(dpi float64) (w, h float64, err error) {
	if err := c.prepare(dpi); err != nil {
		return 0, 0, err
	}
	rg, err := c.comp.Build()
	if err != nil {
		return 0, 0, err
	}
	w, h = rg.FigureSize()
	return w, h, nil
}

// Render merges the children into one coordinate space and paints
// them into dc.
func (c *CompositeBoard) Render(dc *gg.Context, dpi float64) error {
	if err := c.prepare(dpi); err != nil {
		return err
	}
	rg, err := c.comp.Build()
	if err != nil {
		return err
	}
	for _, b := range c.boards {
		if err := b.draw(dc, rg, dpi); err != nil {
			return fmt.Errorf("board %q: %w", b.name, err)
		}
	}
	return nil
}

// Regions resolves the merged layout and returns the finalized
// geometry in inches.
func (c *CompositeBoard) Regions(dpi float64) (*layout.Regions, error) {
	if err := c.prepare(dpi); err != nil {
		return nil, err
	}
	return c.comp.Build()
}

// RenderPNG renders the composite to a white-background PNG.
func (c *CompositeBoard) RenderPNG(path string, dpi float64) error {
	if dpi <= 0 {
		dpi = 96
	}
	if err := c.prepare(dpi); err != nil {
		return err
	}
	rg, err := c.comp.Build()
	if err != nil {
		return err
	}
	w, h := rg.FigureSize()
	dc := gg.NewContext(int(math.Ceil(w*dpi)), int(math.Ceil(h*dpi)))
	dc.ClearWithColor(gg.RGB(1, 1, 1))
	for _, b := range c.boards {
		if err := b.draw(dc, rg, dpi); err != nil {
			return fmt.Errorf("board %q: %w", b.name, err)
		}
	}
	Logger().Info("figure saved", "path", path, "width", w, "height", h, "dpi", dpi)
	return dc.SavePNG(path)
}
