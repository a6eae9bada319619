package layout

import (
	"fmt"
	"slices"
)

// CrossLayout arranges one main canvas and four tracks of side panels
// into a single coordinate space. Panels are declared incrementally in
// inches; Build resolves the declarations into concrete Regions.
//
// Within a track, panels are laid out nearest-to-main first: the first
// panel added to the left track sits directly against the main canvas,
// the next one further out, and so on.
//
// The layout itself never draws. The caller passes the finalized Regions
// to a renderer.
type CrossLayout struct {
	mainCell *cell
	sides    map[Side][]*cell
	cells    map[string]*cell
	pads     map[string]*cell // pad inserted by AddCell, keyed by panel name
	order    []string

	margin     Margin
	maxW, maxH float64

	// composite layouts suppress margins and take their anchor from the
	// parent during Build.
	composite bool

	padSeq int
}

// Option configures a CrossLayout.
type Option func(*CrossLayout)

// WithMargin reserves a uniform border on all sides, in inches.
func WithMargin(m float64) Option {
	return func(l *CrossLayout) { l.margin = UniformMargin(m) }
}

// WithMargins sets each border individually.
func WithMargins(m Margin) Option {
	return func(l *CrossLayout) { l.margin = m }
}

// WithMaxSize bounds the overall figure size, in inches. Zero means
// unbounded along that axis. When bounded, auto-sized panels share the
// remaining extent and over-declared fixed sizes surface ErrSizeOverflow
// at Build time.
func WithMaxSize(w, h float64) Option {
	return func(l *CrossLayout) { l.maxW, l.maxH = w, h }
}

// NewCrossLayout creates a layout whose main canvas is width x height
// inches. The name identifies the main canvas in the built Regions.
func NewCrossLayout(name string, width, height float64, opts ...Option) *CrossLayout {
	main := &cell{
		name:   name,
		side:   SideMain,
		canvas: true,
		width:  width,
		height: height,
	}
	l := &CrossLayout{
		mainCell: main,
		sides: map[Side][]*cell{
			SideLeft: nil, SideRight: nil, SideTop: nil, SideBottom: nil,
		},
		cells:  map[string]*cell{name: main},
		pads:   make(map[string]*cell),
		order:  []string{name},
		margin: UniformMargin(0.2),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the main canvas name.
func (l *CrossLayout) Name() string {
	return l.mainCell.name
}

// MainWidth returns the declared main canvas width.
func (l *CrossLayout) MainWidth() float64 {
	return l.mainCell.width
}

// MainHeight returns the declared main canvas height.
func (l *CrossLayout) MainHeight() float64 {
	return l.mainCell.height
}

// SetMainSize redeclares the main canvas extent. Used by composites to
// reconcile cross-axis sizes.
func (l *CrossLayout) SetMainSize(width, height float64) {
	l.mainCell.width = width
	l.mainCell.height = height
}

// AddCell declares a side panel. size may be fixed or flexible; pad
// inserts a blank gap between this panel and the previous one (or the
// main canvas) on the same track.
func (l *CrossLayout) AddCell(side Side, name string, size SizeSpec, pad float64) error {
	if !side.Valid() {
		return fmt.Errorf("layout: invalid side %v", side)
	}
	if _, ok := l.cells[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if pad > 0 {
		l.AddPad(side, pad)
		track := l.sides[side]
		l.pads[name] = track[len(track)-1]
	}
	c := &cell{
		name:   name,
		side:   side,
		canvas: true,
		size:   size,
		attach: l.mainCell,
	}
	l.sides[side] = append(l.sides[side], c)
	l.cells[name] = c
	l.order = append(l.order, name)
	return nil
}

// AddPad inserts a blank spacing block on a track. Pads occupy extent
// but produce no named region.
func (l *CrossLayout) AddPad(side Side, size float64) {
	if !side.Valid() || size <= 0 {
		return
	}
	l.padSeq++
	l.sides[side] = append(l.sides[side], &cell{
		name:   fmt.Sprintf("pad-%s-%d", side, l.padSeq),
		side:   side,
		size:   Fixed(size),
		attach: l.mainCell,
	})
}

// RemoveCell removes a previously declared side panel. Removing an
// unknown name is a no-op.
func (l *CrossLayout) RemoveCell(name string) {
	c, ok := l.cells[name]
	if !ok || c.side == SideMain {
		return
	}
	delete(l.cells, name)
	pad := l.pads[name]
	delete(l.pads, name)
	l.sides[c.side] = slices.DeleteFunc(l.sides[c.side], func(x *cell) bool {
		return x == c || (pad != nil && x == pad)
	})
	if i := slices.Index(l.order, name); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
}

// SetRenderSize supplies the content-derived size for a flexible panel,
// e.g. a measured text extent. It has no effect on fixed panels.
func (l *CrossLayout) SetRenderSize(name string, size float64) error {
	c, ok := l.cells[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	c.renderSize = size
	return nil
}

// VSplit divides a cell into columns with the given ratios, left to
// right. spacing is a fraction of the cell width: empty for none, one
// value for every gap, or one value per gap. groupRatios merges
// consecutive columns for panels that span whole groups.
func (l *CrossLayout) VSplit(name string, ratios, spacing, groupRatios []float64) error {
	c, ok := l.cells[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if c.vsplit != nil {
		return fmt.Errorf("%w: columns of %q", ErrSplitTwice, name)
	}
	frs, anchors, err := splitTrack(ratios, spacing, groupRatios)
	if err != nil {
		return fmt.Errorf("vsplit %q: %w", name, err)
	}
	c.vsplit = &axisSplit{frs: frs, anchors: anchors}
	return nil
}

// HSplit divides a cell into rows with the given ratios, top to bottom.
// See VSplit for the spacing and groupRatios conventions.
func (l *CrossLayout) HSplit(name string, ratios, spacing, groupRatios []float64) error {
	c, ok := l.cells[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if c.hsplit != nil {
		return fmt.Errorf("%w: rows of %q", ErrSplitTwice, name)
	}
	frs, anchors, err := splitTrack(ratios, spacing, groupRatios)
	if err != nil {
		return fmt.Errorf("hsplit %q: %w", name, err)
	}
	c.hsplit = &axisSplit{frs: frs, anchors: anchors}
	return nil
}

// IsSplit reports whether the named cell has been split on either axis.
func (l *CrossLayout) IsSplit(name string) bool {
	c, ok := l.cells[name]
	return ok && (c.vsplit != nil || c.hsplit != nil)
}

// Has reports whether a panel with the given name is declared.
func (l *CrossLayout) Has(name string) bool {
	_, ok := l.cells[name]
	return ok
}

// resolveSizes turns every side cell's declared size into inches,
// sharing any bounded extent among flexible cells per axis.
func (l *CrossLayout) resolveSizes() (map[*cell]float64, error) {
	out := make(map[*cell]float64)

	resolve := func(cells []*cell, budget float64, axis string) error {
		specs := make([]SizeSpec, len(cells))
		for i, c := range cells {
			specs[i] = c.trackSize()
		}
		sizes, err := ResolveSizes(specs, budget)
		if err != nil {
			return fmt.Errorf("%s tracks: %w", axis, err)
		}
		for i, c := range cells {
			out[c] = sizes[i]
		}
		return nil
	}

	hCells := append(slices.Clone(l.sides[SideLeft]), l.sides[SideRight]...)
	hBudget := 0.0
	if l.maxW > 0 {
		hBudget = l.maxW - l.margin.Width() - l.mainCell.width
	}
	if err := resolve(hCells, hBudget, "horizontal"); err != nil {
		return nil, err
	}

	vCells := append(slices.Clone(l.sides[SideTop]), l.sides[SideBottom]...)
	vBudget := 0.0
	if l.maxH > 0 {
		vBudget = l.maxH - l.margin.Height() - l.mainCell.height
	}
	if err := resolve(vCells, vBudget, "vertical"); err != nil {
		return nil, err
	}
	return out, nil
}

func trackExtent(cells []*cell, resolved map[*cell]float64) float64 {
	total := 0.0
	for _, c := range cells {
		total += resolved[c]
	}
	return total
}

// SideSize returns the total extent of one track, including pads.
func (l *CrossLayout) SideSize(side Side) (float64, error) {
	resolved, err := l.resolveSizes()
	if err != nil {
		return 0, err
	}
	return trackExtent(l.sides[side], resolved), nil
}

// BBoxSize returns the bounding box of the layout without margins.
func (l *CrossLayout) BBoxSize() (w, h float64, err error) {
	resolved, err := l.resolveSizes()
	if err != nil {
		return 0, 0, err
	}
	w = l.mainCell.width +
		trackExtent(l.sides[SideLeft], resolved) +
		trackExtent(l.sides[SideRight], resolved)
	h = l.mainCell.height +
		trackExtent(l.sides[SideTop], resolved) +
		trackExtent(l.sides[SideBottom], resolved)
	return w, h, nil
}

// BoundingSize implements Element. Composite members report their bbox
// without margins; standalone layouts include them.
func (l *CrossLayout) BoundingSize() (w, h float64) {
	w, h, err := l.BBoxSize()
	if err != nil {
		return 0, 0
	}
	if !l.composite {
		w += l.margin.Width()
		h += l.margin.Height()
	}
	return w, h
}

// Build resolves all declarations into a Regions result. Build is a pure
// function of the declared state: it performs no I/O, mutates nothing,
// and returns identical coordinates when invoked repeatedly. On error no
// partial result is returned.
func (l *CrossLayout) Build() (*Regions, error) {
	resolved, err := l.resolveSizes()
	if err != nil {
		return nil, err
	}
	origin := Pt(l.margin.Left, l.margin.Top)
	if l.composite {
		origin = Pt(0, 0)
	}
	w, h, _ := l.BBoxSize()
	figW, figH := w, h
	if !l.composite {
		figW += l.margin.Width()
		figH += l.margin.Height()
	}
	rg := newRegions(figW, figH)
	if err := l.buildAt(origin, resolved, rg); err != nil {
		return nil, err
	}
	return rg, nil
}

// buildAt computes cell anchors relative to origin (the top-left of the
// layout's bounding box) and records every canvas region into rg.
func (l *CrossLayout) buildAt(origin Point, resolved map[*cell]float64, rg *Regions) error {
	mainX := origin.X + trackExtent(l.sides[SideLeft], resolved)
	mainY := origin.Y + trackExtent(l.sides[SideTop], resolved)
	l.mainCell.anchor = Pt(mainX, mainY)

	mainW := l.mainCell.width
	mainH := l.mainCell.height

	y := mainY
	for _, c := range l.sides[SideTop] {
		y -= resolved[c]
		c.anchor = Pt(mainX, y)
	}
	y = mainY + mainH
	for _, c := range l.sides[SideBottom] {
		c.anchor = Pt(mainX, y)
		y += resolved[c]
	}
	x := mainX
	for _, c := range l.sides[SideLeft] {
		x -= resolved[c]
		c.anchor = Pt(x, mainY)
	}
	x = mainX + mainW
	for _, c := range l.sides[SideRight] {
		c.anchor = Pt(x, mainY)
		x += resolved[c]
	}

	for _, name := range l.order {
		c := l.cells[name]
		if !c.canvas {
			continue
		}
		cw, ch := c.extent(resolved[c])
		if err := rg.add(c, cw, ch); err != nil {
			return err
		}
	}
	return nil
}

// Region is one finalized rectangle assigned to a panel or a grid cell.
// Row and Col index the segment for split cells and are zero otherwise.
type Region struct {
	Name     string
	Side     Side
	Row, Col int
	Rect     Rect
}

// Regions is the output of Build: a lookup from panel names to concrete
// rectangles in inches, plus the overall figure size. Regions are
// immutable; recomputation goes through the declaring layout.
type Regions struct {
	byName map[string][]Region
	names  []string
	tracks map[Side][]string

	figW, figH float64
}

func newRegions(figW, figH float64) *Regions {
	return &Regions{
		byName: make(map[string][]Region),
		tracks: make(map[Side][]string),
		figW:   figW,
		figH:   figH,
	}
}

func (rg *Regions) add(c *cell, w, h float64) error {
	if _, ok := rg.byName[c.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.name)
	}
	_, cols := c.gridShape()
	rects := c.rects(w, h)
	regions := make([]Region, len(rects))
	for i, r := range rects {
		regions[i] = Region{
			Name: c.name,
			Side: c.side,
			Row:  i / cols,
			Col:  i % cols,
			Rect: r,
		}
	}
	rg.byName[c.name] = regions
	rg.names = append(rg.names, c.name)
	rg.tracks[c.side] = append(rg.tracks[c.side], c.name)
	return nil
}

// Get returns the regions assigned to the named panel, one per segment
// in row-major order. Unknown names return ErrNotFound.
func (rg *Regions) Get(name string) ([]Region, error) {
	regions, ok := rg.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return regions, nil
}

// Rects returns just the rectangles of the named panel.
func (rg *Regions) Rects(name string) ([]Rect, error) {
	regions, err := rg.Get(name)
	if err != nil {
		return nil, err
	}
	rects := make([]Rect, len(regions))
	for i, r := range regions {
		rects[i] = r.Rect
	}
	return rects, nil
}

// Bounds returns the bounding rectangle of the named panel across all
// of its segments.
func (rg *Regions) Bounds(name string) (Rect, error) {
	regions, err := rg.Get(name)
	if err != nil {
		return Rect{}, err
	}
	b := regions[0].Rect
	for _, r := range regions[1:] {
		x0 := min(b.X, r.Rect.X)
		y0 := min(b.Y, r.Rect.Y)
		x1 := max(b.Right(), r.Rect.Right())
		y1 := max(b.Bottom(), r.Rect.Bottom())
		b = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	}
	return b, nil
}

// Track returns the panel names on one track in layout order. A track
// with no panels returns an empty slice, not an error.
func (rg *Regions) Track(side Side) []string {
	return slices.Clone(rg.tracks[side])
}

// Names returns every panel name in declaration order: the main canvas
// first, then side panels as added. For merged composites, children
// appear in concatenation order.
func (rg *Regions) Names() []string {
	return slices.Clone(rg.names)
}

// FigureSize returns the overall figure extent in inches.
func (rg *Regions) FigureSize() (w, h float64) {
	return rg.figW, rg.figH
}

func (rg *Regions) merge(other *Regions, dx, dy float64) error {
	for _, name := range other.names {
		if _, ok := rg.byName[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		regions := make([]Region, len(other.byName[name]))
		for i, r := range other.byName[name] {
			r.Rect = r.Rect.Translate(dx, dy)
			regions[i] = r
		}
		rg.byName[name] = regions
		rg.names = append(rg.names, name)
		rg.tracks[regions[0].Side] = append(rg.tracks[regions[0].Side], name)
	}
	return nil
}
