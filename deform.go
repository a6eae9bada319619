package marsilea

import (
	"fmt"

	"github.com/Marsilea-viz/marsilea/dendrogram"
	"github.com/Marsilea-viz/marsilea/layout"
)

// Deformation tracks how the main matrix axes are partitioned,
// reordered and clustered, and hands the resolved index chunks to the
// layout and the plotters. Resolution is memoized and recomputed when
// a declaration changes.
type Deformation struct {
	data   [][]float64
	nr, nc int

	rowSpec, colSpec   layout.PartitionSpec
	rowSplit, colSplit bool
	rowCluster, colCluster bool
	rowOpts, colOpts   []dendrogram.Option

	rowRes, colRes *axisResult
}

// axisResult is the resolved state of one axis: index chunks in
// display order plus the clustering trees that produced them.
type axisResult struct {
	chunks     [][]int
	ratios     []float64
	spacing    []float64
	chunkOrder []int
	tree       *dendrogram.Dendrogram
	group      *dendrogram.Group
}

// NewDeformation wraps a row-major value matrix. Rows must be of
// equal length and the matrix non-empty.
func NewDeformation(data [][]float64) (*Deformation, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrDataShape)
	}
	nc := len(data[0])
	for i, row := range data {
		if len(row) != nc {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDataShape, i, len(row), nc)
		}
	}
	return &Deformation{data: data, nr: len(data), nc: nc}, nil
}

// Rows returns the matrix row count.
func (d *Deformation) Rows() int { return d.nr }

// Cols returns the matrix column count.
func (d *Deformation) Cols() int { return d.nc }

// Data returns the wrapped matrix.
func (d *Deformation) Data() [][]float64 { return d.data }

// SplitRows partitions the row axis. A second row split fails with
// ErrSplitTwice.
func (d *Deformation) SplitRows(spec layout.PartitionSpec) error {
	if d.rowSplit {
		return fmt.Errorf("%w: rows", layout.ErrSplitTwice)
	}
	if _, err := layout.ResolvePartition(d.nr, spec); err != nil {
		return err
	}
	d.rowSplit = true
	d.rowSpec = spec
	d.rowRes = nil
	return nil
}

// SplitCols partitions the column axis. A second column split fails
// with ErrSplitTwice.
func (d *Deformation) SplitCols(spec layout.PartitionSpec) error {
	if d.colSplit {
		return fmt.Errorf("%w: columns", layout.ErrSplitTwice)
	}
	if _, err := layout.ResolvePartition(d.nc, spec); err != nil {
		return err
	}
	d.colSplit = true
	d.colSpec = spec
	d.colRes = nil
	return nil
}

// ClusterRows reorders rows by hierarchical clustering, within each
// segment when the axis is split.
func (d *Deformation) ClusterRows(opts ...dendrogram.Option) {
	d.rowCluster = true
	d.rowOpts = opts
	d.rowRes = nil
}

// ClusterCols reorders columns by hierarchical clustering.
func (d *Deformation) ClusterCols(opts ...dendrogram.Option) {
	d.colCluster = true
	d.colOpts = opts
	d.colRes = nil
}

// RowsSplit reports whether the row axis has a declared partition.
func (d *Deformation) RowsSplit() bool { return d.rowSplit }

// ColsSplit reports whether the column axis has a declared partition.
func (d *Deformation) ColsSplit() bool { return d.colSplit }

func (d *Deformation) rowVector(i int) []float64 { return d.data[i] }

func (d *Deformation) colVector(j int) []float64 {
	v := make([]float64, d.nr)
	for i := range v {
		v[i] = d.data[i][j]
	}
	return v
}

func (d *Deformation) rows() (*axisResult, error) {
	if d.rowRes == nil {
		res, err := resolveAxis(d.nr, d.rowSpec, d.rowCluster, d.rowOpts, d.rowVector)
		if err != nil {
			return nil, fmt.Errorf("rows: %w", err)
		}
		d.rowRes = res
	}
	return d.rowRes, nil
}

func (d *Deformation) cols() (*axisResult, error) {
	if d.colRes == nil {
		res, err := resolveAxis(d.nc, d.colSpec, d.colCluster, d.colOpts, d.colVector)
		if err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
		d.colRes = res
	}
	return d.colRes, nil
}

// resolveAxis partitions one axis and applies clustering: within-chunk
// reordering by each chunk's tree, chunk reordering by the tree over
// chunk means.
func resolveAxis(n int, spec layout.PartitionSpec, cluster bool, opts []dendrogram.Option, vec func(int) []float64) (*axisResult, error) {
	part, err := layout.ResolvePartition(n, spec)
	if err != nil {
		return nil, err
	}
	reindex := part.Reindex()
	segs := part.Segments()
	base := make([][]int, len(segs))
	for i, s := range segs {
		chunk := make([]int, s.Len())
		copy(chunk, reindex[s.Start:s.End])
		base[i] = chunk
	}

	res := &axisResult{spacing: part.Spacing()}
	if !cluster {
		res.chunks = base
		res.chunkOrder = identityOrder(len(base))
		res.ratios = part.Ratios()
		return res, nil
	}

	if len(base) == 1 {
		tree, err := dendrogram.New(gather(base[0], vec), opts...)
		if err != nil {
			return nil, err
		}
		res.tree = tree
		res.chunks = [][]int{permute(base[0], tree.Order())}
		res.chunkOrder = []int{0}
		res.ratios = []float64{float64(len(base[0]))}
		return res, nil
	}

	chunkData := make([][][]float64, len(base))
	for i, chunk := range base {
		chunkData[i] = gather(chunk, vec)
	}
	grp, err := dendrogram.NewGroup(chunkData, opts...)
	if err != nil {
		return nil, err
	}
	order := grp.ChunkOrder()
	res.group = grp
	res.chunkOrder = order
	res.chunks = make([][]int, len(order))
	res.ratios = make([]float64, len(order))
	for p, ci := range order {
		res.chunks[p] = permute(base[ci], grp.Chunk(ci).Order())
		res.ratios[p] = float64(len(base[ci]))
	}
	return res, nil
}

func identityOrder(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// gather collects the vectors of the given indices.
func gather(idx []int, vec func(int) []float64) [][]float64 {
	out := make([][]float64, len(idx))
	for i, v := range idx {
		out[i] = vec(v)
	}
	return out
}

// permute reorders chunk so position p holds chunk[order[p]].
func permute(chunk []int, order []int) []int {
	out := make([]int, len(chunk))
	for p, o := range order {
		out[p] = chunk[o]
	}
	return out
}

// RowChunks returns per-segment lists of original row indices in
// display order.
func (d *Deformation) RowChunks() ([][]int, error) {
	res, err := d.rows()
	if err != nil {
		return nil, err
	}
	return res.chunks, nil
}

// ColChunks returns per-segment lists of original column indices in
// display order.
func (d *Deformation) ColChunks() ([][]int, error) {
	res, err := d.cols()
	if err != nil {
		return nil, err
	}
	return res.chunks, nil
}

// RowRatios returns the displayed row segment lengths, for splitting
// layout cells.
func (d *Deformation) RowRatios() ([]float64, error) {
	res, err := d.rows()
	if err != nil {
		return nil, err
	}
	return res.ratios, nil
}

// ColRatios returns the displayed column segment lengths.
func (d *Deformation) ColRatios() ([]float64, error) {
	res, err := d.cols()
	if err != nil {
		return nil, err
	}
	return res.ratios, nil
}

// RowSpacing returns the declared per-boundary row gaps.
func (d *Deformation) RowSpacing() ([]float64, error) {
	res, err := d.rows()
	if err != nil {
		return nil, err
	}
	return res.spacing, nil
}

// ColSpacing returns the declared per-boundary column gaps.
func (d *Deformation) ColSpacing() ([]float64, error) {
	res, err := d.cols()
	if err != nil {
		return nil, err
	}
	return res.spacing, nil
}

// RowChunkOrder maps display position to original row segment index.
func (d *Deformation) RowChunkOrder() ([]int, error) {
	res, err := d.rows()
	if err != nil {
		return nil, err
	}
	return res.chunkOrder, nil
}

// ColChunkOrder maps display position to original column segment
// index.
func (d *Deformation) ColChunkOrder() ([]int, error) {
	res, err := d.cols()
	if err != nil {
		return nil, err
	}
	return res.chunkOrder, nil
}

// RowTree returns the row clustering tree when the axis is clustered
// without a split, nil otherwise.
func (d *Deformation) RowTree() (*dendrogram.Dendrogram, error) {
	res, err := d.rows()
	if err != nil {
		return nil, err
	}
	return res.tree, nil
}

// ColTree returns the column clustering tree when the axis is
// clustered without a split, nil otherwise.
func (d *Deformation) ColTree() (*dendrogram.Dendrogram, error) {
	res, err := d.cols()
	if err != nil {
		return nil, err
	}
	return res.tree, nil
}

// RowGroup returns the two-level row tree when a split axis is
// clustered, nil otherwise.
func (d *Deformation) RowGroup() (*dendrogram.Group, error) {
	res, err := d.rows()
	if err != nil {
		return nil, err
	}
	return res.group, nil
}

// ColGroup returns the two-level column tree when a split axis is
// clustered, nil otherwise.
func (d *Deformation) ColGroup() (*dendrogram.Group, error) {
	res, err := d.cols()
	if err != nil {
		return nil, err
	}
	return res.group, nil
}

// Transform materializes the displayed sub-matrices, one per segment
// pair, row-major over segments.
func (d *Deformation) Transform() ([][][][]float64, error) {
	rows, err := d.RowChunks()
	if err != nil {
		return nil, err
	}
	cols, err := d.ColChunks()
	if err != nil {
		return nil, err
	}
	grid := make([][][][]float64, len(rows))
	for ri, rIdx := range rows {
		grid[ri] = make([][][]float64, len(cols))
		for ci, cIdx := range cols {
			sub := make([][]float64, len(rIdx))
			for i, r := range rIdx {
				row := make([]float64, len(cIdx))
				for j, c := range cIdx {
					row[j] = d.data[r][c]
				}
				sub[i] = row
			}
			grid[ri][ci] = sub
		}
	}
	return grid, nil
}

// SplitRowVector distributes per-row values into display-order
// chunks, for side data aligned with the row axis.
func SplitRowVector[T any](d *Deformation, v []T) ([][]T, error) {
	if len(v) != d.nr {
		return nil, fmt.Errorf("%w: %d values for %d rows", ErrDataShape, len(v), d.nr)
	}
	chunks, err := d.RowChunks()
	if err != nil {
		return nil, err
	}
	return gatherChunks(chunks, v), nil
}

// SplitColVector distributes per-column values into display-order
// chunks.
func SplitColVector[T any](d *Deformation, v []T) ([][]T, error) {
	if len(v) != d.nc {
		return nil, fmt.Errorf("%w: %d values for %d columns", ErrDataShape, len(v), d.nc)
	}
	chunks, err := d.ColChunks()
	if err != nil {
		return nil, err
	}
	return gatherChunks(chunks, v), nil
}

func gatherChunks[T any](chunks [][]int, v []T) [][]T {
	out := make([][]T, len(chunks))
	for i, idx := range chunks {
		chunk := make([]T, len(idx))
		for p, o := range idx {
			chunk[p] = v[o]
		}
		out[i] = chunk
	}
	return out
}
