package layout

// Point is a location on the canvas in inches, origin at the top-left,
// y increasing downward.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle in inches. X, Y locate the top-left
// corner.
type Rect struct {
	X, Y, W, H float64
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Scale returns the rectangle with all coordinates multiplied by s.
// Used to convert inch coordinates to pixels at a given DPI.
func (r Rect) Scale(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}

// Side identifies where a panel sits relative to the main canvas.
type Side int

const (
	SideMain Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideMain:
		return "main"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Horizontal reports whether the side extends the layout horizontally.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Valid reports whether s is one of the four attachable tracks.
func (s Side) Valid() bool {
	return s >= SideLeft && s <= SideBottom
}

// Axis selects a direction for concatenation and stacking.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Align positions a child within a larger cross-axis extent when size
// reconciliation is disabled.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	}
	return "unknown"
}

// Margin reserves space around a layout's bounding box, in inches.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// UniformMargin returns a margin with the same size on all sides.
func UniformMargin(m float64) Margin {
	return Margin{Top: m, Right: m, Bottom: m, Left: m}
}

// Width returns the total horizontal margin.
func (m Margin) Width() float64 {
	return m.Left + m.Right
}

// Height returns the total vertical margin.
func (m Margin) Height() float64 {
	return m.Top + m.Bottom
}
