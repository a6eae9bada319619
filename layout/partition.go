package layout

import "fmt"

// PartitionSpec declares how an axis of indices is divided into
// contiguous segments. Exactly one of Labels or Cuts may be set; with
// neither, the whole axis forms a single segment.
//
// Labels groups equal values into one segment each, preserving the
// relative order of indices inside a group (stable grouping, never a
// sort). Groups appear in first-seen order unless Order lists every
// distinct label explicitly.
//
// Cuts lists strictly increasing positions inside (0, axisLen); n cuts
// produce n+1 segments.
//
// Spacing declares inter-segment gaps: nil for none, a single element
// applied to every boundary, or one element per boundary.
type PartitionSpec struct {
	Labels  []string
	Order   []string
	Cuts    []int
	Spacing []float64
}

// Segment is one contiguous index range of a partitioned axis. Start and
// End are half-open positions on the reindexed axis.
type Segment struct {
	Label         string
	Start, End    int
	SpacingBefore float64
}

// Len returns the number of indices in the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Partition is the resolved form of a PartitionSpec: an ordered list of
// segments covering the axis exactly once, plus the permutation mapping
// reindexed positions back to original indices.
type Partition struct {
	segments []Segment
	reindex  []int // nil means identity
	axisLen  int
}

// ResolvePartition validates spec against an axis of axisLen indices and
// computes the ordered segments. Violations return errors wrapping
// ErrPartition or ErrSpacingLength.
func ResolvePartition(axisLen int, spec PartitionSpec) (*Partition, error) {
	if axisLen <= 0 {
		return nil, fmt.Errorf("%w: axis length %d", ErrPartition, axisLen)
	}
	if len(spec.Labels) > 0 && len(spec.Cuts) > 0 {
		return nil, fmt.Errorf("%w: both labels and cuts declared", ErrPartition)
	}

	p := &Partition{axisLen: axisLen}
	var err error
	switch {
	case len(spec.Labels) > 0:
		err = p.resolveLabels(spec.Labels, spec.Order)
	case len(spec.Cuts) > 0:
		err = p.resolveCuts(spec.Cuts)
	default:
		p.segments = []Segment{{Start: 0, End: axisLen}}
	}
	if err != nil {
		return nil, err
	}

	if err := p.applySpacing(spec.Spacing); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Partition) resolveLabels(labels, order []string) error {
	if len(labels) != p.axisLen {
		return fmt.Errorf("%w: %d labels for axis length %d",
			ErrPartition, len(labels), p.axisLen)
	}

	groups := make(map[string][]int)
	var seen []string
	for i, l := range labels {
		if _, ok := groups[l]; !ok {
			seen = append(seen, l)
		}
		groups[l] = append(groups[l], i)
	}

	if order != nil {
		if len(order) != len(seen) {
			return fmt.Errorf("%w: order lists %d labels, data has %d distinct",
				ErrPartition, len(order), len(seen))
		}
		used := make(map[string]bool, len(order))
		for _, l := range order {
			if _, ok := groups[l]; !ok {
				return fmt.Errorf("%w: label %q in order not present in data",
					ErrPartition, l)
			}
			if used[l] {
				return fmt.Errorf("%w: label %q repeated in order", ErrPartition, l)
			}
			used[l] = true
		}
		seen = order
	}

	reindex := make([]int, 0, p.axisLen)
	segments := make([]Segment, 0, len(seen))
	for _, l := range seen {
		idx := groups[l]
		segments = append(segments, Segment{
			Label: l,
			Start: len(reindex),
			End:   len(reindex) + len(idx),
		})
		reindex = append(reindex, idx...)
	}
	p.segments = segments
	p.reindex = reindex
	return nil
}

func (p *Partition) resolveCuts(cuts []int) error {
	prev := 0
	for _, c := range cuts {
		if c <= prev || c >= p.axisLen {
			return fmt.Errorf("%w: cut %d out of order or outside (0, %d)",
				ErrPartition, c, p.axisLen)
		}
		prev = c
	}
	bounds := make([]int, 0, len(cuts)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, cuts...)
	bounds = append(bounds, p.axisLen)

	segments := make([]Segment, len(bounds)-1)
	for i := range segments {
		segments[i] = Segment{Start: bounds[i], End: bounds[i+1]}
	}
	p.segments = segments
	return nil
}

func (p *Partition) applySpacing(spacing []float64) error {
	boundaries := len(p.segments) - 1
	switch {
	case len(spacing) == 0:
		return nil
	case len(spacing) == 1:
		for i := 1; i < len(p.segments); i++ {
			p.segments[i].SpacingBefore = spacing[0]
		}
	case len(spacing) == boundaries:
		for i := 1; i < len(p.segments); i++ {
			p.segments[i].SpacingBefore = spacing[i-1]
		}
	default:
		return fmt.Errorf("%w: got %d, want %d",
			ErrSpacingLength, len(spacing), boundaries)
	}
	return nil
}

// Segments returns the ordered segments. The returned slice is shared;
// callers must not modify it.
func (p *Partition) Segments() []Segment {
	return p.segments
}

// Count returns the number of segments.
func (p *Partition) Count() int {
	return len(p.segments)
}

// AxisLen returns the partitioned axis length.
func (p *Partition) AxisLen() int {
	return p.axisLen
}

// Ratios returns the segment lengths, usable as split ratios for a cell.
func (p *Partition) Ratios() []float64 {
	r := make([]float64, len(p.segments))
	for i, s := range p.segments {
		r[i] = float64(s.Len())
	}
	return r
}

// Spacing returns the per-boundary spacing values, one per gap.
func (p *Partition) Spacing() []float64 {
	if len(p.segments) < 2 {
		return nil
	}
	sp := make([]float64, len(p.segments)-1)
	for i := 1; i < len(p.segments); i++ {
		sp[i-1] = p.segments[i].SpacingBefore
	}
	return sp
}

// Reindex returns the permutation mapping reindexed positions to
// original indices: element i is the original index now at position i.
// For cut-based and trivial partitions this is the identity.
func (p *Partition) Reindex() []int {
	out := make([]int, p.axisLen)
	if p.reindex == nil {
		for i := range out {
			out[i] = i
		}
		return out
	}
	copy(out, p.reindex)
	return out
}

// Identity reports whether the partition leaves index order unchanged.
func (p *Partition) Identity() bool {
	return p.reindex == nil
}
