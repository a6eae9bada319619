package marsilea

import (
	"fmt"

	"github.com/Marsilea-viz/marsilea/dendrogram"
	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/Marsilea-viz/marsilea/plotter"
	"github.com/gogpu/gg"
)

// ClusterBoard is a Board bound to a data matrix. It adds the split
// and cluster operations: grouping rows or columns by label, cutting
// at positions, and dendrogram panels that reorder the data.
type ClusterBoard struct {
	*Board
}

// NewClusterBoard creates a board over a row-major matrix. The main
// canvas is width x height inches.
func NewClusterBoard(data [][]float64, width, height float64, opts ...BoardOption) (*ClusterBoard, error) {
	df, err := NewDeformation(data)
	if err != nil {
		return nil, err
	}
	b := NewBoard(width, height, opts...)
	b.deform = df
	return &ClusterBoard{Board: b}, nil
}

// Deformation exposes the board's split and reorder state.
func (cb *ClusterBoard) Deformation() *Deformation { return cb.deform }

// GroupOption refines a group or cut declaration.
type GroupOption func(*layout.PartitionSpec)

// WithGroupOrder displays the groups in the given label order instead
// of first-seen order. Every distinct label must appear exactly once.
func WithGroupOrder(order ...string) GroupOption {
	return func(s *layout.PartitionSpec) { s.Order = order }
}

// WithSpacing declares inter-segment gaps as fractions of the canvas
// extent: a single value applied to every gap, or one value per gap.
func WithSpacing(spacing ...float64) GroupOption {
	return func(s *layout.PartitionSpec) { s.Spacing = spacing }
}

// GroupRows partitions rows by label, one segment per distinct label,
// preserving row order inside each group.
func (cb *ClusterBoard) GroupRows(labels []string, opts ...GroupOption) error {
	spec := layout.PartitionSpec{Labels: labels}
	for _, opt := range opts {
		opt(&spec)
	}
	return cb.deform.SplitRows(spec)
}

// GroupCols partitions columns by label.
func (cb *ClusterBoard) GroupCols(labels []string, opts ...GroupOption) error {
	spec := layout.PartitionSpec{Labels: labels}
	for _, opt := range opts {
		opt(&spec)
	}
	return cb.deform.SplitCols(spec)
}

// CutRows partitions rows at the given positions.
func (cb *ClusterBoard) CutRows(cuts []int, opts ...GroupOption) error {
	spec := layout.PartitionSpec{Cuts: cuts}
	for _, opt := range opts {
		opt(&spec)
	}
	return cb.deform.SplitRows(spec)
}

// CutCols partitions columns at the given positions.
func (cb *ClusterBoard) CutCols(cuts []int, opts ...GroupOption) error {
	spec := layout.PartitionSpec{Cuts: cuts}
	for _, opt := range opts {
		opt(&spec)
	}
	return cb.deform.SplitCols(spec)
}

// DendrogramOption configures an added dendrogram panel.
type DendrogramOption func(*denPlot)

// WithDenSize sets the panel extent in inches. The default is 0.5.
func WithDenSize(inches float64) DendrogramOption {
	return func(d *denPlot) { d.size = inches }
}

// WithDenMethod selects the linkage criterion.
func WithDenMethod(m dendrogram.Method) DendrogramOption {
	return func(d *denPlot) { d.opts = append(d.opts, dendrogram.WithMethod(m)) }
}

// WithDenMetric selects the distance metric.
func WithDenMetric(m dendrogram.Metric) DendrogramOption {
	return func(d *denPlot) { d.opts = append(d.opts, dendrogram.WithMetric(m)) }
}

// WithDenStroke sets the tree's line color and width.
func WithDenStroke(c gg.RGBA, width float64) DendrogramOption {
	return func(d *denPlot) { d.color, d.width = c, width }
}

// AddDendrogram clusters the axis facing side and attaches the tree
// panel there. Left and right panels cluster rows; top and bottom
// cluster columns. The matrix and every aligned side panel are
// reordered to the tree's leaf order.
func (cb *ClusterBoard) AddDendrogram(side Side, opts ...DendrogramOption) error {
	dp := &denPlot{
		df:    cb.deform,
		rows:  side == Left || side == Right,
		size:  0.5,
		color: gg.FromColor(dendrogram.DefaultLineColor),
		width: 1,
	}
	for _, opt := range opts {
		opt(dp)
	}
	if dp.rows {
		cb.deform.ClusterRows(dp.opts...)
	} else {
		cb.deform.ClusterCols(dp.opts...)
	}
	return cb.add(side, dp)
}

// denPlot renders the clustering tree of one axis into its panel.
type denPlot struct {
	df    *Deformation
	rows  bool
	size  float64
	opts  []dendrogram.Option
	color gg.RGBA
	width float64
}

func (d *denPlot) Kind() string                      { return "dendrogram" }
func (d *denPlot) SizeHint(rc plotter.RenderContext) float64 { return d.size }
func (d *denPlot) Splittable() bool                  { return true }
func (d *denPlot) Legends() []plotter.Legend         { return nil }

func (d *denPlot) Draw(dc *gg.Context, rects []layout.Rect, rc plotter.RenderContext) error {
	var (
		tree *dendrogram.Dendrogram
		grp  *dendrogram.Group
		err  error
	)
	if d.rows {
		if grp, err = d.df.RowGroup(); err == nil && grp == nil {
			tree, err = d.df.RowTree()
		}
	} else {
		if grp, err = d.df.ColGroup(); err == nil && grp == nil {
			tree, err = d.df.ColTree()
		}
	}
	if err != nil {
		return err
	}
	switch {
	case grp != nil:
		return grp.DrawStyled(dc, rects, rc.Side, d.color.Color(), d.width)
	case tree != nil:
		return tree.DrawStyled(dc, rects[0], rc.Side, d.color.Color(), d.width)
	}
	return fmt.Errorf("marsilea: dendrogram panel without clustering")
}
