package layout

import (
	"errors"
	"slices"
	"testing"
)

func TestResolvePartitionLabels(t *testing.T) {
	labels := []string{"0", "0", "1", "1", "2", "2", "2", "1", "1", "0"}
	p, err := ResolvePartition(10, PartitionSpec{Labels: labels})
	if err != nil {
		t.Fatalf("ResolvePartition() error = %v", err)
	}

	segs := p.Segments()
	wantLabels := []string{"0", "1", "2"}
	if len(segs) != len(wantLabels) {
		t.Fatalf("got %d segments, want %d", len(segs), len(wantLabels))
	}
	for i, s := range segs {
		if s.Label != wantLabels[i] {
			t.Errorf("segment %d label = %q, want %q", i, s.Label, wantLabels[i])
		}
	}

	// Groups keep within-group relative order and are reassembled
	// contiguously in first-seen order.
	wantReindex := []int{0, 1, 9, 2, 3, 7, 8, 4, 5, 6}
	if got := p.Reindex(); !slices.Equal(got, wantReindex) {
		t.Errorf("Reindex() = %v, want %v", got, wantReindex)
	}

	wantRanges := [][2]int{{0, 3}, {3, 7}, {7, 10}}
	for i, s := range segs {
		if s.Start != wantRanges[i][0] || s.End != wantRanges[i][1] {
			t.Errorf("segment %d range = [%d,%d), want [%d,%d)",
				i, s.Start, s.End, wantRanges[i][0], wantRanges[i][1])
		}
	}
}

func TestResolvePartitionCoverage(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		order  []string
	}{
		{"first seen", []string{"b", "a", "b", "c", "a"}, nil},
		{"explicit order", []string{"b", "a", "b", "c", "a"}, []string{"c", "a", "b"}},
		{"single group", []string{"x", "x", "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePartition(len(tt.labels), PartitionSpec{
				Labels: tt.labels,
				Order:  tt.order,
			})
			if err != nil {
				t.Fatalf("ResolvePartition() error = %v", err)
			}

			// Segments cover the axis exactly once.
			pos := 0
			for _, s := range p.Segments() {
				if s.Start != pos {
					t.Errorf("segment %q starts at %d, want %d", s.Label, s.Start, pos)
				}
				pos = s.End
			}
			if pos != len(tt.labels) {
				t.Errorf("segments end at %d, want %d", pos, len(tt.labels))
			}

			// Reindex is a permutation of 0..n-1.
			seen := make([]bool, len(tt.labels))
			for _, ix := range p.Reindex() {
				if ix < 0 || ix >= len(seen) || seen[ix] {
					t.Fatalf("Reindex() = %v is not a permutation", p.Reindex())
				}
				seen[ix] = true
			}

			// Within a group, original relative order is preserved.
			for _, s := range p.Segments() {
				idx := p.Reindex()[s.Start:s.End]
				if !slices.IsSorted(idx) {
					t.Errorf("group %q indices %v are reordered", s.Label, idx)
				}
			}
		})
	}
}

func TestResolvePartitionCuts(t *testing.T) {
	cuts := []int{3, 7}
	p, err := ResolvePartition(10, PartitionSpec{Cuts: cuts})
	if err != nil {
		t.Fatalf("ResolvePartition() error = %v", err)
	}
	if p.Count() != len(cuts)+1 {
		t.Fatalf("Count() = %d, want %d", p.Count(), len(cuts)+1)
	}
	segs := p.Segments()
	for i, c := range cuts {
		if segs[i].End != c || segs[i+1].Start != c {
			t.Errorf("boundary %d: segment %d ends at %d, segment %d starts at %d, want cut %d",
				i, i, segs[i].End, i+1, segs[i+1].Start, c)
		}
	}
	if !p.Identity() {
		t.Error("cut-based partition should not reorder indices")
	}
}

func TestResolvePartitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		axisLen int
		spec    PartitionSpec
		wantErr error
	}{
		{"zero axis", 0, PartitionSpec{Labels: []string{"a"}}, ErrPartition},
		{"label count mismatch", 3, PartitionSpec{Labels: []string{"a", "b"}}, ErrPartition},
		{"order label missing from data", 3,
			PartitionSpec{Labels: []string{"a", "a", "b"}, Order: []string{"a", "c"}}, ErrPartition},
		{"order omits a label", 3,
			PartitionSpec{Labels: []string{"a", "a", "b"}, Order: []string{"a"}}, ErrPartition},
		{"order repeats a label", 4,
			PartitionSpec{Labels: []string{"a", "a", "b", "b"}, Order: []string{"a", "a"}}, ErrPartition},
		{"cut out of range", 5, PartitionSpec{Cuts: []int{5}}, ErrPartition},
		{"cut at zero", 5, PartitionSpec{Cuts: []int{0, 2}}, ErrPartition},
		{"cuts not increasing", 8, PartitionSpec{Cuts: []int{4, 4}}, ErrPartition},
		{"labels and cuts together", 4,
			PartitionSpec{Labels: []string{"a", "a", "b", "b"}, Cuts: []int{2}}, ErrPartition},
		{"spacing length mismatch", 6,
			PartitionSpec{Cuts: []int{2, 4}, Spacing: []float64{0.1, 0.1, 0.1, 0.1}}, ErrSpacingLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePartition(tt.axisLen, tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResolvePartition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolvePartitionSpacing(t *testing.T) {
	tests := []struct {
		name    string
		spacing []float64
		want    []float64
	}{
		{"none", nil, []float64{0, 0}},
		{"scalar", []float64{0.05}, []float64{0.05, 0.05}},
		{"per boundary", []float64{0.1, 0.2}, []float64{0.1, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePartition(9, PartitionSpec{
				Cuts:    []int{3, 6},
				Spacing: tt.spacing,
			})
			if err != nil {
				t.Fatalf("ResolvePartition() error = %v", err)
			}
			if got := p.Spacing(); !slices.Equal(got, tt.want) {
				t.Errorf("Spacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePartitionSingleSegment(t *testing.T) {
	p, err := ResolvePartition(5, PartitionSpec{Labels: []string{"a", "a", "a", "a", "a"}})
	if err != nil {
		t.Fatalf("ResolvePartition() error = %v", err)
	}
	if p.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", p.Count())
	}
	if sp := p.Spacing(); len(sp) != 0 {
		t.Errorf("Spacing() = %v, want empty", sp)
	}
}
