package dendrogram

import (
	"errors"
	"fmt"
	"math"
)

// ErrData reports rows that cannot be clustered: an empty matrix or
// rows of unequal width.
var ErrData = errors.New("dendrogram: invalid data")

// Method selects the linkage criterion used when two clusters merge.
type Method int

const (
	// Average merges on the mean pairwise distance (UPGMA).
	Average Method = iota
	// Single merges on the minimum pairwise distance.
	Single
	// Complete merges on the maximum pairwise distance.
	Complete
	// Ward merges on the minimum within-cluster variance increase.
	// Ward implies the Euclidean metric.
	Ward
)

func (m Method) String() string {
	switch m {
	case Average:
		return "average"
	case Single:
		return "single"
	case Complete:
		return "complete"
	case Ward:
		return "ward"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Metric selects the pairwise distance between observations.
type Metric int

const (
	Euclidean Metric = iota
	Manhattan
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

func (m Metric) distance(a, b []float64) float64 {
	switch m {
	case Manhattan:
		d := 0.0
		for i := range a {
			d += math.Abs(a[i] - b[i])
		}
		return d
	default:
		d := 0.0
		for i := range a {
			v := a[i] - b[i]
			d += v * v
		}
		return math.Sqrt(d)
	}
}

// Merge is one agglomeration step. A and B index the merged clusters:
// 0..n-1 are the original observations, n+i is the cluster formed by
// step i. Dist is the merge distance and Size the leaf count of the
// new cluster.
type Merge struct {
	A, B int
	Dist float64
	Size int
}

// Linkage clusters the rows of data agglomeratively and returns the
// n-1 merge steps in order of increasing distance. Ties break toward
// the pair with the smallest indices, so the result is deterministic
// for a given input.
func Linkage(data [][]float64, method Method, metric Metric) ([]Merge, error) {
	n := len(data)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrData)
	}
	width := len(data[0])
	for i, row := range data {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrData, i, len(row), width)
		}
	}
	if n == 1 {
		return []Merge{}, nil
	}
	if method == Ward {
		metric = Euclidean
	}

	// Distance matrix over active clusters. Ward runs Lance-Williams on
	// squared distances and reports the square root as the merge height.
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric.distance(data[i], data[j])
			if method == Ward {
				d *= d
			}
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	// slot i holds the current cluster id occupying row/col i, or -1.
	id := make([]int, n)
	size := make([]int, n)
	for i := range id {
		id[i] = i
		size[i] = 1
	}
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	merges := make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if dist[i][j] < best {
					best = dist[i][j]
					bi, bj = i, j
				}
			}
		}

		a, b := id[bi], id[bj]
		if a > b {
			a, b = b, a
		}
		h := best
		if method == Ward {
			h = math.Sqrt(h)
		}
		ni, nj := size[bi], size[bj]
		merges = append(merges, Merge{A: a, B: b, Dist: h, Size: ni + nj})

		// Fold cluster bj into slot bi with the Lance-Williams update.
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			var d float64
			switch method {
			case Single:
				d = min(dist[bi][k], dist[bj][k])
			case Complete:
				d = max(dist[bi][k], dist[bj][k])
			case Ward:
				nk := float64(size[k])
				t := float64(ni+nj) + nk
				d = ((float64(ni)+nk)*dist[bi][k] +
					(float64(nj)+nk)*dist[bj][k] -
					nk*dist[bi][bj]) / t
			default: // Average
				d = (float64(ni)*dist[bi][k] + float64(nj)*dist[bj][k]) / float64(ni+nj)
			}
			dist[bi][k] = d
			dist[k][bi] = d
		}
		id[bi] = n + step
		size[bi] = ni + nj
		active[bj] = false
	}
	return merges, nil
}
