package dendrogram

import (
	"errors"
	"slices"
	"testing"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

func TestLinkageSingle(t *testing.T) {
	data := [][]float64{{0}, {1}, {5}, {6}}
	merges, err := Linkage(data, Single, Euclidean)
	if err != nil {
		t.Fatalf("Linkage() error = %v", err)
	}
	want := []Merge{
		{A: 0, B: 1, Dist: 1, Size: 2},
		{A: 2, B: 3, Dist: 1, Size: 2},
		{A: 4, B: 5, Dist: 4, Size: 4},
	}
	if !slices.Equal(merges, want) {
		t.Errorf("Linkage() = %v, want %v", merges, want)
	}
}

func TestLinkageAverage(t *testing.T) {
	data := [][]float64{{0}, {2}, {10}}
	merges, err := Linkage(data, Average, Euclidean)
	if err != nil {
		t.Fatal(err)
	}
	// {0, 2} merge at 2, then their average distance to 10 is (10+8)/2.
	want := []Merge{
		{A: 0, B: 1, Dist: 2, Size: 2},
		{A: 2, B: 3, Dist: 9, Size: 3},
	}
	if !slices.Equal(merges, want) {
		t.Errorf("Linkage() = %v, want %v", merges, want)
	}
}

func TestLinkageManhattan(t *testing.T) {
	data := [][]float64{{0, 0}, {3, 4}}
	merges, err := Linkage(data, Single, Manhattan)
	if err != nil {
		t.Fatal(err)
	}
	if merges[0].Dist != 7 {
		t.Errorf("manhattan merge dist = %g, want 7", merges[0].Dist)
	}
}

func TestLinkageErrors(t *testing.T) {
	if _, err := Linkage(nil, Average, Euclidean); !errors.Is(err, ErrData) {
		t.Errorf("empty data error = %v, want ErrData", err)
	}
	ragged := [][]float64{{1, 2}, {3}}
	if _, err := Linkage(ragged, Average, Euclidean); !errors.Is(err, ErrData) {
		t.Errorf("ragged data error = %v, want ErrData", err)
	}
}

func TestOrderGroupsNeighbors(t *testing.T) {
	// Rows 0 and 3 are near each other, as are rows 1 and 2. The leaf
	// order must place each pair adjacently.
	data := [][]float64{{0}, {10}, {10.5}, {0.5}}
	d, err := New(data, WithMethod(Single))
	if err != nil {
		t.Fatal(err)
	}
	order := d.Order()
	if len(order) != 4 {
		t.Fatalf("Order() len = %d, want 4", len(order))
	}
	pos := make([]int, 4)
	for i, leaf := range order {
		pos[leaf] = i
	}
	if diff := pos[0] - pos[3]; diff != 1 && diff != -1 {
		t.Errorf("rows 0 and 3 not adjacent: order %v", order)
	}
	if diff := pos[1] - pos[2]; diff != 1 && diff != -1 {
		t.Errorf("rows 1 and 2 not adjacent: order %v", order)
	}
}

func TestOrderDeterministic(t *testing.T) {
	data := [][]float64{{5}, {0}, {6}, {1}}
	a, err := New(data, WithMethod(Single))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(data, WithMethod(Single))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Order(), b.Order()) {
		t.Errorf("orders differ: %v vs %v", a.Order(), b.Order())
	}
	if want := []int{0, 2, 1, 3}; !slices.Equal(a.Order(), want) {
		t.Errorf("Order() = %v, want %v", a.Order(), want)
	}
}

func TestSingleLeaf(t *testing.T) {
	d, err := New([][]float64{{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0}; !slices.Equal(d.Order(), want) {
		t.Errorf("Order() = %v, want %v", d.Order(), want)
	}
	if d.RootHeight() != 0 {
		t.Errorf("RootHeight() = %g, want 0", d.RootHeight())
	}
}

func TestWardIdenticalRows(t *testing.T) {
	data := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	d, err := New(data)
	if err != nil {
		t.Fatal(err)
	}
	if d.RootHeight() != 0 {
		t.Errorf("RootHeight() = %g, want 0 for identical rows", d.RootHeight())
	}
}

func TestDraw(t *testing.T) {
	data := [][]float64{{0}, {1}, {5}, {6}}
	d, err := New(data, WithMethod(Single))
	if err != nil {
		t.Fatal(err)
	}
	dc := gg.NewContext(100, 100)
	rect := layout.R(10, 10, 80, 40)
	for _, side := range []layout.Side{layout.SideTop, layout.SideBottom, layout.SideLeft, layout.SideRight} {
		if err := d.Draw(dc, rect, side); err != nil {
			t.Errorf("Draw(%v) error = %v", side, err)
		}
	}
	if err := d.Draw(dc, rect, layout.SideMain); err == nil {
		t.Error("Draw(SideMain) error = nil, want error")
	}
}

func TestGroupOrder(t *testing.T) {
	chunks := [][][]float64{
		{{0}, {1}},
		{{10}, {11}},
		{{5}, {6}},
	}
	g, err := NewGroup(chunks, WithMethod(Average))
	if err != nil {
		t.Fatalf("NewGroup() error = %v", err)
	}
	// Chunk means are 0.5, 10.5 and 5.5: the first and last chunks
	// merge first, so chunk 1 ends up on the outside.
	if want := []int{1, 0, 2}; !slices.Equal(g.ChunkOrder(), want) {
		t.Errorf("ChunkOrder() = %v, want %v", g.ChunkOrder(), want)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
}

func TestGroupDraw(t *testing.T) {
	chunks := [][][]float64{
		{{0}, {1}},
		{{10}, {11}},
	}
	g, err := NewGroup(chunks)
	if err != nil {
		t.Fatal(err)
	}
	dc := gg.NewContext(200, 100)
	rects := []layout.Rect{layout.R(0, 0, 90, 50), layout.R(110, 0, 90, 50)}
	if err := g.Draw(dc, rects, layout.SideTop); err != nil {
		t.Errorf("Draw() error = %v", err)
	}
	if err := g.Draw(dc, rects[:1], layout.SideTop); !errors.Is(err, ErrData) {
		t.Errorf("Draw() with wrong rect count error = %v, want ErrData", err)
	}
}

func TestGroupErrors(t *testing.T) {
	if _, err := NewGroup(nil); !errors.Is(err, ErrData) {
		t.Errorf("NewGroup(nil) error = %v, want ErrData", err)
	}
}
