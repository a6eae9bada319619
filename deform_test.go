package marsilea

import (
	"errors"
	"slices"
	"testing"

	"github.com/Marsilea-viz/marsilea/layout"
)

func matrix(nr, nc int, f func(i, j int) float64) [][]float64 {
	m := make([][]float64, nr)
	for i := range m {
		m[i] = make([]float64, nc)
		for j := range m[i] {
			m[i][j] = f(i, j)
		}
	}
	return m
}

func TestNewDeformationValidates(t *testing.T) {
	if _, err := NewDeformation(nil); !errors.Is(err, ErrDataShape) {
		t.Errorf("empty matrix error = %v, want ErrDataShape", err)
	}
	if _, err := NewDeformation([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrDataShape) {
		t.Errorf("ragged matrix error = %v, want ErrDataShape", err)
	}
}

func TestSplitRowsByLabels(t *testing.T) {
	data := matrix(10, 2, func(i, j int) float64 { return float64(i) })
	d, err := NewDeformation(data)
	if err != nil {
		t.Fatal(err)
	}
	labels := []string{"0", "0", "1", "1", "2", "2", "2", "1", "1", "0"}
	if err := d.SplitRows(layout.PartitionSpec{Labels: labels}); err != nil {
		t.Fatalf("SplitRows() error = %v", err)
	}

	chunks, err := d.RowChunks()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{{0, 1, 9}, {2, 3, 7, 8}, {4, 5, 6}}
	if len(chunks) != len(want) {
		t.Fatalf("chunks = %v, want %v", chunks, want)
	}
	for i := range want {
		if !slices.Equal(chunks[i], want[i]) {
			t.Errorf("chunk %d = %v, want %v", i, chunks[i], want[i])
		}
	}

	ratios, err := d.RowRatios()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ratios, []float64{3, 4, 3}) {
		t.Errorf("ratios = %v, want [3 4 3]", ratios)
	}

	order, err := d.RowChunkOrder()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(order, []int{0, 1, 2}) {
		t.Errorf("chunk order = %v, want identity", order)
	}
}

func TestSplitTwice(t *testing.T) {
	d, err := NewDeformation(matrix(4, 4, func(i, j int) float64 { return 0 }))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SplitRows(layout.PartitionSpec{Cuts: []int{2}}); err != nil {
		t.Fatal(err)
	}
	err = d.SplitRows(layout.PartitionSpec{Cuts: []int{1}})
	if !errors.Is(err, layout.ErrSplitTwice) {
		t.Errorf("second split error = %v, want ErrSplitTwice", err)
	}
}

func TestSplitRejectsBadSpec(t *testing.T) {
	d, err := NewDeformation(matrix(4, 4, func(i, j int) float64 { return 0 }))
	if err != nil {
		t.Fatal(err)
	}
	err = d.SplitCols(layout.PartitionSpec{Cuts: []int{9}})
	if !errors.Is(err, layout.ErrPartition) {
		t.Errorf("bad cut error = %v, want ErrPartition", err)
	}
	if d.ColsSplit() {
		t.Error("failed split left the axis marked split")
	}
}

func TestSplitRowVectorRoundTrip(t *testing.T) {
	d, err := NewDeformation(matrix(6, 2, func(i, j int) float64 { return float64(i) }))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SplitRows(layout.PartitionSpec{Labels: []string{"b", "a", "b", "a", "b", "a"}}); err != nil {
		t.Fatal(err)
	}
	names := []string{"r0", "r1", "r2", "r3", "r4", "r5"}
	chunks, err := SplitRowVector(d, names)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if !slices.Equal(chunks[0], []string{"r0", "r2", "r4"}) {
		t.Errorf("chunk 0 = %v", chunks[0])
	}
	if !slices.Equal(chunks[1], []string{"r1", "r3", "r5"}) {
		t.Errorf("chunk 1 = %v", chunks[1])
	}

	if _, err := SplitRowVector(d, names[:3]); !errors.Is(err, ErrDataShape) {
		t.Errorf("short vector error = %v, want ErrDataShape", err)
	}
}

func TestClusterRowsUnsplit(t *testing.T) {
	// Two well-separated blocks; clustering must bring rows 0,2 and
	// rows 1,3 together.
	data := [][]float64{{0, 0}, {9, 9}, {0.5, 0.5}, {9.5, 9.5}}
	d, err := NewDeformation(data)
	if err != nil {
		t.Fatal(err)
	}
	d.ClusterRows()

	chunks, err := d.RowChunks()
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	got := chunks[0]
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{0, 1, 2, 3}) {
		t.Fatalf("chunk = %v, not a permutation", got)
	}
	pos := make([]int, 4)
	for p, i := range got {
		pos[i] = p
	}
	if diff := pos[0] - pos[2]; diff != 1 && diff != -1 {
		t.Errorf("rows 0 and 2 not adjacent: %v", got)
	}

	tree, err := d.RowTree()
	if err != nil || tree == nil {
		t.Errorf("RowTree() = %v, %v; want tree", tree, err)
	}
	grp, err := d.RowGroup()
	if err != nil || grp != nil {
		t.Errorf("RowGroup() = %v, %v; want nil", grp, err)
	}
}

func TestClusterRowsSplit(t *testing.T) {
	data := [][]float64{{0}, {8}, {1}, {9}, {0.2}, {8.2}}
	d, err := NewDeformation(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SplitRows(layout.PartitionSpec{Labels: []string{"a", "b", "a", "b", "a", "b"}}); err != nil {
		t.Fatal(err)
	}
	d.ClusterRows()

	chunks, err := d.RowChunks()
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	var all []int
	for _, c := range chunks {
		if len(c) != 3 {
			t.Errorf("chunk len = %d, want 3", len(c))
		}
		all = append(all, c...)
	}
	slices.Sort(all)
	if !slices.Equal(all, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("chunks do not cover the axis: %v", chunks)
	}

	grp, err := d.RowGroup()
	if err != nil || grp == nil {
		t.Fatalf("RowGroup() = %v, %v; want group", grp, err)
	}

	// Deterministic across identical inputs.
	d2, _ := NewDeformation(data)
	d2.SplitRows(layout.PartitionSpec{Labels: []string{"a", "b", "a", "b", "a", "b"}})
	d2.ClusterRows()
	chunks2, err := d2.RowChunks()
	if err != nil {
		t.Fatal(err)
	}
	for i := range chunks {
		if !slices.Equal(chunks[i], chunks2[i]) {
			t.Errorf("chunk %d differs between runs: %v vs %v", i, chunks[i], chunks2[i])
		}
	}
}

func TestTransform(t *testing.T) {
	data := matrix(4, 6, func(i, j int) float64 { return float64(i*6 + j) })
	d, err := NewDeformation(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SplitRows(layout.PartitionSpec{Cuts: []int{1}}); err != nil {
		t.Fatal(err)
	}
	if err := d.SplitCols(layout.PartitionSpec{Cuts: []int{2, 5}}); err != nil {
		t.Fatal(err)
	}

	grid, err := d.Transform()
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 2 || len(grid[0]) != 3 {
		t.Fatalf("grid = %dx%d, want 2x3", len(grid), len(grid[0]))
	}
	wantRows := []int{1, 3}
	wantCols := []int{2, 3, 1}
	for ri := range grid {
		for ci := range grid[ri] {
			sub := grid[ri][ci]
			if len(sub) != wantRows[ri] || len(sub[0]) != wantCols[ci] {
				t.Errorf("cell (%d,%d) = %dx%d, want %dx%d",
					ri, ci, len(sub), len(sub[0]), wantRows[ri], wantCols[ci])
			}
		}
	}
	// Last cell starts at row 1, col 5.
	if got := grid[1][2][0][0]; got != data[1][5] {
		t.Errorf("grid[1][2][0][0] = %v, want %v", got, data[1][5])
	}
}

func TestSplitColVectorUnsplit(t *testing.T) {
	d, err := NewDeformation(matrix(2, 3, func(i, j int) float64 { return 0 }))
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := SplitColVector(d, []int{7, 8, 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || !slices.Equal(chunks[0], []int{7, 8, 9}) {
		t.Errorf("chunks = %v, want [[7 8 9]]", chunks)
	}
}
