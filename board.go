package marsilea

import (
	"fmt"
	"math"
	"sync"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/Marsilea-viz/marsilea/plotter"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Side identifies where a panel attaches relative to the main canvas.
type Side = layout.Side

// Attachment sides, re-exported for callers that never import layout.
const (
	Left   = layout.SideLeft
	Right  = layout.SideRight
	Top    = layout.SideTop
	Bottom = layout.SideBottom
)

// plan is one declared side panel: a named layout cell plus the
// plotter that fills it.
type plan struct {
	name string
	side Side
	plot plotter.Plotter
	size layout.SizeSpec
	pad  float64

	splitApplied bool
}

// Board composes a main canvas and annotation panels declaratively.
// Declarations accumulate; Render resolves them into geometry and
// paints. A Board without a data matrix is a plain whiteboard; use
// NewClusterBoard for split and cluster operations.
type Board struct {
	name   string
	lay    *layout.CrossLayout
	plans  []*plan
	layers []plotter.Plotter

	deform *Deformation
	face   text.Face
	seq    map[string]int

	mainRowSplit, mainColSplit bool
}

// BoardOption configures a Board.
type BoardOption func(*boardConfig)

type boardConfig struct {
	name   string
	margin float64
	maxW   float64
	maxH   float64
	face   text.Face
}

// WithName names the main canvas. The default is "main".
func WithName(name string) BoardOption {
	return func(c *boardConfig) { c.name = name }
}

// WithMargin sets a uniform figure margin in inches.
func WithMargin(m float64) BoardOption {
	return func(c *boardConfig) { c.margin = m }
}

// WithMaxSize bounds the overall figure size in inches; flexible
// panels share the remainder.
func WithMaxSize(w, h float64) BoardOption {
	return func(c *boardConfig) { c.maxW, c.maxH = w, h }
}

// WithFont sets the face used by text panels. The default is Go
// Regular at 11 points.
func WithFont(face text.Face) BoardOption {
	return func(c *boardConfig) { c.face = face }
}

var (
	defaultFontOnce sync.Once
	defaultFontFace text.Face
)

func defaultFace() text.Face {
	defaultFontOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			Logger().Warn("default font unavailable", "err", err)
			return
		}
		defaultFontFace = src.Face(11)
	})
	return defaultFontFace
}

// NewBoard creates a board whose main canvas is width x height inches.
func NewBoard(width, height float64, opts ...BoardOption) *Board {
	cfg := boardConfig{name: "main", margin: 0.2}
	for _, opt := range opts {
		opt(&cfg)
	}
	layOpts := []layout.Option{layout.WithMargin(cfg.margin)}
	if cfg.maxW > 0 || cfg.maxH > 0 {
		layOpts = append(layOpts, layout.WithMaxSize(cfg.maxW, cfg.maxH))
	}
	face := cfg.face
	if face == nil {
		face = defaultFace()
	}
	return &Board{
		name: cfg.name,
		lay:  layout.NewCrossLayout(cfg.name, width, height, layOpts...),
		face: face,
		seq:  make(map[string]int),
	}
}

// Name returns the main canvas name.
func (b *Board) Name() string { return b.name }

// Layout exposes the underlying cross layout, for callers composing
// boards manually.
func (b *Board) Layout() *layout.CrossLayout { return b.lay }

// PlotOption configures one added panel.
type PlotOption func(*plan)

// WithPlotName names the panel. Auto-generated otherwise.
func WithPlotName(name string) PlotOption {
	return func(p *plan) { p.name = name }
}

// WithPlotSize fixes the panel extent in inches instead of using the
// plotter's size hint.
func WithPlotSize(inches float64) PlotOption {
	return func(p *plan) { p.size = layout.Fixed(inches) }
}

// WithPlotPad inserts a gap in inches between the panel and its
// neighbor toward the main canvas.
func WithPlotPad(pad float64) PlotOption {
	return func(p *plan) { p.pad = pad }
}

func (b *Board) autoName(kind string) string {
	b.seq[kind]++
	return fmt.Sprintf("%s-%d", kind, b.seq[kind])
}

func (b *Board) add(side Side, pl plotter.Plotter, opts ...PlotOption) error {
	p := &plan{side: side, plot: pl, size: layout.Flex()}
	for _, opt := range opts {
		opt(p)
	}
	if p.name == "" {
		p.name = b.autoName(pl.Kind())
	}
	if err := b.lay.AddCell(side, p.name, p.size, p.pad); err != nil {
		return err
	}
	b.plans = append(b.plans, p)
	return nil
}

// AddLeft attaches a panel on the left track, outward from the canvas.
func (b *Board) AddLeft(pl plotter.Plotter, opts ...PlotOption) error {
	return b.add(Left, pl, opts...)
}

// AddRight attaches a panel on the right track.
func (b *Board) AddRight(pl plotter.Plotter, opts ...PlotOption) error {
	return b.add(Right, pl, opts...)
}

// AddTop attaches a panel on the top track.
func (b *Board) AddTop(pl plotter.Plotter, opts ...PlotOption) error {
	return b.add(Top, pl, opts...)
}

// AddBottom attaches a panel on the bottom track.
func (b *Board) AddBottom(pl plotter.Plotter, opts ...PlotOption) error {
	return b.add(Bottom, pl, opts...)
}

// AddLayer stacks a plotter on the main canvas. Layers draw in the
// order added.
func (b *Board) AddLayer(pl plotter.Plotter) {
	b.layers = append(b.layers, pl)
}

// AddPad inserts blank space on a track, in inches.
func (b *Board) AddPad(side Side, size float64) {
	b.lay.AddPad(side, size)
}

// AddCanvas reserves a named empty panel the caller draws into after
// Render, via Regions.
func (b *Board) AddCanvas(side Side, name string, size float64) error {
	p := &plan{side: side, name: name, size: layout.Fixed(size)}
	if err := b.lay.AddCell(side, name, p.size, 0); err != nil {
		return err
	}
	b.plans = append(b.plans, p)
	return nil
}

// AddTitle puts a text line on the given side, outermost.
func (b *Board) AddTitle(side Side, title string, opts ...plotter.TitleOption) error {
	return b.add(side, plotter.NewTitle(title, opts...))
}

// AddLegends attaches a panel that renders every legend the other
// plotters contribute, in declaration order.
func (b *Board) AddLegends(side Side, opts ...PlotOption) error {
	return b.add(side, plotter.NewLegendPanel(), opts...)
}

// Legends returns the legend records of all plotters: main layers
// first, then side panels in declaration order.
func (b *Board) Legends() []plotter.Legend {
	var out []plotter.Legend
	for _, pl := range b.layers {
		out = append(out, pl.Legends()...)
	}
	for _, p := range b.plans {
		if p.plot != nil {
			out = append(out, p.plot.Legends()...)
		}
	}
	return out
}

// renderContext builds the context for one plan or layer.
func (b *Board) renderContext(side Side, dpi float64) plotter.RenderContext {
	return plotter.RenderContext{Face: b.face, DPI: dpi, Side: side}
}

// prepare resolves everything that must happen before Build: legend
// installation, size hints, layout splits and plotter index chunks.
func (b *Board) prepare(dpi float64) error {
	for _, p := range b.plans {
		if lp, ok := p.plot.(*plotter.LegendPanel); ok {
			lp.SetLegends(b.Legends())
		}
	}
	for _, p := range b.plans {
		if p.plot == nil || !p.size.Auto {
			continue
		}
		if hint := p.plot.SizeHint(b.renderContext(p.side, dpi)); hint > 0 {
			if err := b.lay.SetRenderSize(p.name, hint); err != nil {
				return err
			}
		}
	}
	if b.deform == nil {
		return nil
	}
	if err := b.applyRowSplit(); err != nil {
		return err
	}
	if err := b.applyColSplit(); err != nil {
		return err
	}
	return b.installChunks()
}

func (b *Board) applyRowSplit() error {
	ratios, err := b.deform.RowRatios()
	if err != nil {
		return err
	}
	if len(ratios) < 2 {
		return nil
	}
	spacing, err := b.deform.RowSpacing()
	if err != nil {
		return err
	}
	if !b.mainRowSplit {
		if err := b.lay.HSplit(b.name, ratios, spacing, nil); err != nil {
			return err
		}
		b.mainRowSplit = true
	}
	for _, p := range b.plans {
		if p.splitApplied || p.plot == nil || !p.plot.Splittable() {
			continue
		}
		if p.side == Left || p.side == Right {
			if err := b.lay.HSplit(p.name, ratios, spacing, nil); err != nil {
				return err
			}
			p.splitApplied = true
		}
	}
	return nil
}

func (b *Board) applyColSplit() error {
	ratios, err := b.deform.ColRatios()
	if err != nil {
		return err
	}
	if len(ratios) < 2 {
		return nil
	}
	spacing, err := b.deform.ColSpacing()
	if err != nil {
		return err
	}
	if !b.mainColSplit {
		if err := b.lay.VSplit(b.name, ratios, spacing, nil); err != nil {
			return err
		}
		b.mainColSplit = true
	}
	for _, p := range b.plans {
		if p.splitApplied || p.plot == nil || !p.plot.Splittable() {
			continue
		}
		if p.side == Top || p.side == Bottom {
			if err := b.lay.VSplit(p.name, ratios, spacing, nil); err != nil {
				return err
			}
			p.splitApplied = true
		}
	}
	return nil
}

// installChunks hands the resolved index chunks to every plotter that
// follows the main axes.
func (b *Board) installChunks() error {
	rowChunks, err := b.deform.RowChunks()
	if err != nil {
		return err
	}
	colChunks, err := b.deform.ColChunks()
	if err != nil {
		return err
	}
	for _, pl := range b.layers {
		if sp, ok := pl.(plotter.Splitter); ok {
			sp.SetSplit(rowChunks, colChunks)
		}
	}
	for _, p := range b.plans {
		if p.plot == nil {
			continue
		}
		aligned := colChunks
		orderFn := b.deform.ColChunkOrder
		if p.side == Left || p.side == Right {
			aligned = rowChunks
			orderFn = b.deform.RowChunkOrder
		}
		if sp, ok := p.plot.(plotter.Splitter); ok {
			sp.SetSplit(aligned, nil)
		}
		if co, ok := p.plot.(plotter.ChunkOrderer); ok {
			order, err := orderFn()
			if err != nil {
				return err
			}
			co.SetChunkOrder(order)
		}
	}
	return nil
}

// FigureSize resolves the layout, including content size hints at the
// given dpi, and returns the figure extent in inches.
func (b *Board) FigureSize(dpi float64) (w, h float64, err error) {
	if err := b.prepare(dpi); err != nil {
		return 0, 0, err
	}
	rg, err := b.lay.Build()
	if err != nil {
		return 0, 0, err
	}
	w, h = rg.FigureSize()
	return w, h, nil
}

// Render resolves the layout and paints every panel into dc at the
// given raster resolution. The caller sizes dc to FigureSize times
// dpi.
func (b *Board) Render(dc *gg.Context, dpi float64) error {
	if err := b.prepare(dpi); err != nil {
		return err
	}
	rg, err := b.lay.Build()
	if err != nil {
		return err
	}
	return b.draw(dc, rg, dpi)
}

// draw paints layers and side panels using already-built regions.
func (b *Board) draw(dc *gg.Context, rg *layout.Regions, dpi float64) error {
	log := Logger()
	mainRects, err := scaledRects(rg, b.name, dpi)
	if err != nil {
		return err
	}
	for _, pl := range b.layers {
		rc := b.renderContext(layout.SideMain, dpi)
		if err := drawClipped(dc, pl, mainRects, rc); err != nil {
			return fmt.Errorf("layer %s: %w", pl.Kind(), err)
		}
		log.Debug("layer drawn", "board", b.name, "kind", pl.Kind())
	}
	for _, p := range b.plans {
		if p.plot == nil {
			continue
		}
		rects, err := scaledRects(rg, p.name, dpi)
		if err != nil {
			return err
		}
		rc := b.renderContext(p.side, dpi)
		if err := drawClipped(dc, p.plot, rects, rc); err != nil {
			return fmt.Errorf("panel %q: %w", p.name, err)
		}
		log.Debug("panel drawn", "board", b.name, "panel", p.name, "kind", p.plot.Kind())
	}
	return nil
}

func scaledRects(rg *layout.Regions, name string, dpi float64) ([]layout.Rect, error) {
	rects, err := rg.Rects(name)
	if err != nil {
		return nil, err
	}
	for i := range rects {
		rects[i] = rects[i].Scale(dpi)
	}
	return rects, nil
}

// drawClipped confines a plotter to its panel's bounding box.
func drawClipped(dc *gg.Context, pl plotter.Plotter, rects []layout.Rect, rc plotter.RenderContext) error {
	if len(rects) == 0 {
		return nil
	}
	b := rects[0]
	for _, r := range rects[1:] {
		x0 := min(b.X, r.X)
		y0 := min(b.Y, r.Y)
		x1 := max(b.Right(), r.Right())
		y1 := max(b.Bottom(), r.Bottom())
		b = layout.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	}
	dc.Push()
	dc.ClipRect(b.X, b.Y, b.W, b.H)
	err := pl.Draw(dc, rects, rc)
	dc.Pop()
	return err
}

// RenderPNG renders to a white-background PNG at the given dpi.
func (b *Board) RenderPNG(path string, dpi float64) error {
	if dpi <= 0 {
		dpi = 96
	}
	if err := b.prepare(dpi); err != nil {
		return err
	}
	rg, err := b.lay.Build()
	if err != nil {
		return err
	}
	w, h := rg.FigureSize()
	dc := gg.NewContext(int(math.Ceil(w*dpi)), int(math.Ceil(h*dpi)))
	dc.ClearWithColor(gg.RGB(1, 1, 1))
	if err := b.draw(dc, rg, dpi); err != nil {
		return err
	}
	Logger().Info("figure saved", "path", path, "width", w, "height", h, "dpi", dpi)
	return dc.SavePNG(path)
}

// Regions resolves the layout and returns the finalized geometry in
// inches, for callers drawing into AddCanvas panels.
func (b *Board) Regions(dpi float64) (*layout.Regions, error) {
	if err := b.prepare(dpi); err != nil {
		return nil, err
	}
	return b.lay.Build()
}
