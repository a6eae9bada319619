package layout

import (
	"fmt"
	"slices"
)

// Element is a built layout that can participate in a Stack: it has a
// known bounding size and can produce its Regions. CrossLayout,
// CompositeCrossLayout and Stack all implement it.
type Element interface {
	BoundingSize() (w, h float64)
	Build() (*Regions, error)

	markComposite()
}

func (l *CrossLayout) markComposite() { l.composite = true }

// CompositeCrossLayout merges multiple CrossLayouts into one coordinate
// space around a primary layout. Children attach to one of the four
// sides of the primary; by default a child's cross-axis main size is
// rescaled to match the primary's so panel boundaries stay aligned.
//
// A composite cannot be appended into another composite; use Stack to
// nest already-built layouts.
type CompositeCrossLayout struct {
	main     *CrossLayout
	sides    map[Side][]compositeChild
	appended []*CrossLayout
	margin   Margin

	composite bool
}

type compositeChild struct {
	layout  *CrossLayout // nil for a spacer
	size    float64      // spacer extent
	align   Align
	rescale bool
}

// CompositeOption configures a CompositeCrossLayout.
type CompositeOption func(*CompositeCrossLayout)

// WithCompositeMargin sets a uniform margin around the merged figure.
func WithCompositeMargin(m float64) CompositeOption {
	return func(c *CompositeCrossLayout) { c.margin = UniformMargin(m) }
}

// NewComposite wraps a primary layout for concatenation. The primary's
// own margins are suppressed; the composite applies its own.
func NewComposite(main *CrossLayout, opts ...CompositeOption) *CompositeCrossLayout {
	main.markComposite()
	c := &CompositeCrossLayout{
		main: main,
		sides: map[Side][]compositeChild{
			SideLeft: nil, SideRight: nil, SideTop: nil, SideBottom: nil,
		},
		margin: UniformMargin(0.2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AppendOption configures a single Append.
type AppendOption func(*compositeChild)

// WithAlign disables cross-axis rescaling for the appended child. The
// child keeps its declared size and is aligned within the primary's
// cross extent instead.
func WithAlign(a Align) AppendOption {
	return func(cc *compositeChild) {
		cc.rescale = false
		cc.align = a
	}
}

// Append attaches child to one side of the primary. The child's
// cross-axis main size is rescaled to the primary's unless WithAlign is
// given. Panel names must be unique across the whole composite.
func (c *CompositeCrossLayout) Append(side Side, child *CrossLayout, opts ...AppendOption) error {
	if !side.Valid() {
		return fmt.Errorf("layout: invalid side %v", side)
	}
	if child == nil {
		return fmt.Errorf("layout: nil child layout")
	}
	if child.composite {
		return fmt.Errorf("%w: %q already belongs to a composite", ErrAppendComposite, child.Name())
	}
	for _, name := range child.PanelNames() {
		if c.has(name) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	cc := compositeChild{layout: child, rescale: true}
	for _, opt := range opts {
		opt(&cc)
	}
	if cc.rescale {
		if side.Horizontal() {
			child.SetMainSize(child.MainWidth(), c.main.MainHeight())
		} else {
			child.SetMainSize(c.main.MainWidth(), child.MainHeight())
		}
	}
	child.markComposite()
	c.sides[side] = append(c.sides[side], cc)
	c.appended = append(c.appended, child)
	return nil
}

// AppendSpacer inserts blank space before the next child on a side.
func (c *CompositeCrossLayout) AppendSpacer(side Side, size float64) {
	if !side.Valid() || size <= 0 {
		return
	}
	c.sides[side] = append(c.sides[side], compositeChild{size: size})
}

func (c *CompositeCrossLayout) has(name string) bool {
	if c.main.Has(name) {
		return true
	}
	for _, l := range c.appended {
		if l.Has(name) {
			return true
		}
	}
	return false
}

// PanelNames returns every panel name in the composite: the primary's
// panels first, then each appended child's in append order. This is the
// ordering the legend collaborator consumes.
func (c *CompositeCrossLayout) PanelNames() []string {
	names := c.main.PanelNames()
	for _, l := range c.appended {
		names = append(names, l.PanelNames()...)
	}
	return names
}

// sideExtent returns the total extent of one side of the composite,
// measured from the primary's main cell: the primary's own track plus
// attached children and spacers, or the overhang of children on the
// orthogonal sides, whichever is larger.
func (c *CompositeCrossLayout) sideExtent(side Side) (float64, error) {
	size, err := c.main.SideSize(side)
	if err != nil {
		return 0, err
	}
	for _, cc := range c.sides[side] {
		if cc.layout == nil {
			size += cc.size
			continue
		}
		bw, bh := cc.layout.BoundingSize()
		if side.Horizontal() {
			size += bw
		} else {
			size += bh
		}
	}

	var ortho []Side
	if side.Horizontal() {
		ortho = []Side{SideTop, SideBottom}
	} else {
		ortho = []Side{SideLeft, SideRight}
	}
	overhang := 0.0
	for _, o := range ortho {
		for _, cc := range c.sides[o] {
			if cc.layout == nil {
				continue
			}
			s, err := cc.layout.SideSize(side)
			if err != nil {
				return 0, err
			}
			overhang = max(overhang, s)
		}
	}
	return max(size, overhang), nil
}

// BoundingSize implements Element.
func (c *CompositeCrossLayout) BoundingSize() (w, h float64) {
	left, err1 := c.sideExtent(SideLeft)
	right, err2 := c.sideExtent(SideRight)
	top, err3 := c.sideExtent(SideTop)
	bottom, err4 := c.sideExtent(SideBottom)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0, 0
	}
	w = c.main.MainWidth() + left + right
	h = c.main.MainHeight() + top + bottom
	if !c.composite {
		w += c.margin.Width()
		h += c.margin.Height()
	}
	return w, h
}

func (c *CompositeCrossLayout) markComposite() { c.composite = true }

// placement records where a child layout's bounding box lands in the
// merged coordinate space.
type placement struct {
	dx, dy float64
}

// Build merges the primary and all appended children into one Regions.
func (c *CompositeCrossLayout) Build() (*Regions, error) {
	left, err := c.sideExtent(SideLeft)
	if err != nil {
		return nil, err
	}
	right, err := c.sideExtent(SideRight)
	if err != nil {
		return nil, err
	}
	top, err := c.sideExtent(SideTop)
	if err != nil {
		return nil, err
	}
	bottom, err := c.sideExtent(SideBottom)
	if err != nil {
		return nil, err
	}

	mainW, mainH := c.main.MainWidth(), c.main.MainHeight()
	figW := mainW + left + right
	figH := mainH + top + bottom
	ox, oy := 0.0, 0.0
	if !c.composite {
		figW += c.margin.Width()
		figH += c.margin.Height()
		ox, oy = c.margin.Left, c.margin.Top
	}

	// Anchor of the primary's main cell in figure coordinates.
	mainX := ox + left
	mainY := oy + top

	mainLeft, err := c.main.SideSize(SideLeft)
	if err != nil {
		return nil, err
	}
	mainRight, err := c.main.SideSize(SideRight)
	if err != nil {
		return nil, err
	}
	mainTop, err := c.main.SideSize(SideTop)
	if err != nil {
		return nil, err
	}
	mainBottom, err := c.main.SideSize(SideBottom)
	if err != nil {
		return nil, err
	}

	places := make(map[*CrossLayout]placement)
	places[c.main] = placement{dx: mainX - mainLeft, dy: mainY - mainTop}

	crossY := func(cc compositeChild) (float64, error) {
		childTop, err := cc.layout.SideSize(SideTop)
		if err != nil {
			return 0, err
		}
		switch {
		case cc.rescale, cc.align == AlignStart:
			return mainY - childTop, nil
		case cc.align == AlignCenter:
			return mainY + (mainH-cc.layout.MainHeight())/2 - childTop, nil
		default: // AlignEnd
			return mainY + mainH - cc.layout.MainHeight() - childTop, nil
		}
	}
	crossX := func(cc compositeChild) (float64, error) {
		childLeft, err := cc.layout.SideSize(SideLeft)
		if err != nil {
			return 0, err
		}
		switch {
		case cc.rescale, cc.align == AlignStart:
			return mainX - childLeft, nil
		case cc.align == AlignCenter:
			return mainX + (mainW-cc.layout.MainWidth())/2 - childLeft, nil
		default:
			return mainX + mainW - cc.layout.MainWidth() - childLeft, nil
		}
	}

	edge := mainX - mainLeft
	for _, cc := range c.sides[SideLeft] {
		if cc.layout == nil {
			edge -= cc.size
			continue
		}
		bw, _ := cc.layout.BoundingSize()
		dy, err := crossY(cc)
		if err != nil {
			return nil, err
		}
		edge -= bw
		places[cc.layout] = placement{dx: edge, dy: dy}
	}
	edge = mainX + mainW + mainRight
	for _, cc := range c.sides[SideRight] {
		if cc.layout == nil {
			edge += cc.size
			continue
		}
		bw, _ := cc.layout.BoundingSize()
		dy, err := crossY(cc)
		if err != nil {
			return nil, err
		}
		places[cc.layout] = placement{dx: edge, dy: dy}
		edge += bw
	}
	edge = mainY - mainTop
	for _, cc := range c.sides[SideTop] {
		if cc.layout == nil {
			edge -= cc.size
			continue
		}
		_, bh := cc.layout.BoundingSize()
		dx, err := crossX(cc)
		if err != nil {
			return nil, err
		}
		edge -= bh
		places[cc.layout] = placement{dx: dx, dy: edge}
	}
	edge = mainY + mainH + mainBottom
	for _, cc := range c.sides[SideBottom] {
		if cc.layout == nil {
			edge += cc.size
			continue
		}
		_, bh := cc.layout.BoundingSize()
		dx, err := crossX(cc)
		if err != nil {
			return nil, err
		}
		places[cc.layout] = placement{dx: dx, dy: edge}
		edge += bh
	}

	// Merge in concatenation order so Names reflects it.
	rg := newRegions(figW, figH)
	merged := append([]*CrossLayout{c.main}, c.appended...)
	for _, l := range merged {
		sub, err := l.Build()
		if err != nil {
			return nil, err
		}
		p := places[l]
		if err := rg.merge(sub, p.dx, p.dy); err != nil {
			return nil, err
		}
	}
	return rg, nil
}

// PanelNames returns the layout's panel names in declaration order.
func (l *CrossLayout) PanelNames() []string {
	return slices.Clone(l.order)
}

// ConcatHorizontal places b to the right of a, separated by spacing
// inches. b's main height is rescaled to match a's.
func ConcatHorizontal(a, b *CrossLayout, spacing float64, opts ...AppendOption) (*CompositeCrossLayout, error) {
	c := NewComposite(a)
	if spacing > 0 {
		c.AppendSpacer(SideRight, spacing)
	}
	if err := c.Append(SideRight, b, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// ConcatVertical places b below a, separated by spacing inches. b's
// main width is rescaled to match a's.
func ConcatVertical(a, b *CrossLayout, spacing float64, opts ...AppendOption) (*CompositeCrossLayout, error) {
	c := NewComposite(a)
	if spacing > 0 {
		c.AppendSpacer(SideBottom, spacing)
	}
	if err := c.Append(SideBottom, b, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Stack places elements sequentially along one axis without size
// reconciliation. Each child keeps its own extent and is aligned
// individually within the stack's cross extent. Stacks nest: a Stack is
// itself an Element.
type Stack struct {
	axis     Axis
	children []stackChild
	margin   Margin

	composite bool
}

type stackChild struct {
	el    Element // nil for a gap
	gap   float64
	align Align
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithStackMargin sets a uniform margin around a top-level stack.
func WithStackMargin(m float64) StackOption {
	return func(s *Stack) { s.margin = UniformMargin(m) }
}

// NewStack creates an empty stack along the given axis.
func NewStack(axis Axis, opts ...StackOption) *Stack {
	s := &Stack{axis: axis}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StackItemOption configures one stacked element.
type StackItemOption func(*stackChild)

// ItemAlign positions the element within the stack's cross extent.
func ItemAlign(a Align) StackItemOption {
	return func(sc *stackChild) { sc.align = a }
}

// Add appends an element to the stack.
func (s *Stack) Add(el Element, opts ...StackItemOption) {
	el.markComposite()
	sc := stackChild{el: el}
	for _, opt := range opts {
		opt(&sc)
	}
	s.children = append(s.children, sc)
}

// AddGap appends blank space along the stacking axis.
func (s *Stack) AddGap(size float64) {
	if size > 0 {
		s.children = append(s.children, stackChild{gap: size})
	}
}

func (s *Stack) markComposite() { s.composite = true }

// BoundingSize implements Element: the sum of child extents along the
// axis and the maximum across it.
func (s *Stack) BoundingSize() (w, h float64) {
	var along, cross float64
	for _, sc := range s.children {
		if sc.el == nil {
			along += sc.gap
			continue
		}
		cw, ch := sc.el.BoundingSize()
		if s.axis == Horizontal {
			along += cw
			cross = max(cross, ch)
		} else {
			along += ch
			cross = max(cross, cw)
		}
	}
	if s.axis == Horizontal {
		w, h = along, cross
	} else {
		w, h = cross, along
	}
	if !s.composite {
		w += s.margin.Width()
		h += s.margin.Height()
	}
	return w, h
}

// Build places every child and merges their Regions. Panel names must
// be unique across the whole stack.
func (s *Stack) Build() (*Regions, error) {
	bw, bh := s.BoundingSize()
	ox, oy := 0.0, 0.0
	innerW, innerH := bw, bh
	if !s.composite {
		ox, oy = s.margin.Left, s.margin.Top
		innerW -= s.margin.Width()
		innerH -= s.margin.Height()
	}

	rg := newRegions(bw, bh)
	pos := 0.0
	for _, sc := range s.children {
		if sc.el == nil {
			pos += sc.gap
			continue
		}
		cw, ch := sc.el.BoundingSize()
		var dx, dy float64
		if s.axis == Horizontal {
			dx = ox + pos
			dy = oy + alignOffset(sc.align, innerH, ch)
			pos += cw
		} else {
			dy = oy + pos
			dx = ox + alignOffset(sc.align, innerW, cw)
			pos += ch
		}
		sub, err := sc.el.Build()
		if err != nil {
			return nil, err
		}
		if err := rg.merge(sub, dx, dy); err != nil {
			return nil, err
		}
	}
	return rg, nil
}

func alignOffset(a Align, outer, inner float64) float64 {
	switch a {
	case AlignCenter:
		return (outer - inner) / 2
	case AlignEnd:
		return outer - inner
	}
	return 0
}
