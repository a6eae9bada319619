package marsilea

import (
	"github.com/Marsilea-viz/marsilea/plotter"
)

// heatmapScale derives a per-cell size in inches so small matrices
// stay readable and large ones fit a screen.
func heatmapScale(nr, nc int) float64 {
	n := max(nr, nc)
	s := 0.3
	if float64(n)*s > 8 {
		s = 8 / float64(n)
	}
	return s
}

// NewHeatmap creates a ClusterBoard sized by the matrix shape with a
// ColorMesh layer already attached. Mesh options pass through, e.g.
// plotter.MeshCmap or plotter.MeshLegend.
func NewHeatmap(data [][]float64, opts ...plotter.MeshOption) (*ClusterBoard, error) {
	return NewHeatmapBoard(data, nil, opts...)
}

// NewHeatmapBoard is NewHeatmap with board options, for callers who
// need to set margins, fonts or size bounds.
func NewHeatmapBoard(data [][]float64, boardOpts []BoardOption, meshOpts ...plotter.MeshOption) (*ClusterBoard, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrDataShape
	}
	nr, nc := len(data), len(data[0])
	s := heatmapScale(nr, nc)
	cb, err := NewClusterBoard(data, float64(nc)*s, float64(nr)*s, boardOpts...)
	if err != nil {
		return nil, err
	}
	cb.AddLayer(plotter.NewColorMesh(data, meshOpts...))
	return cb, nil
}
