package plotter

import (
	"fmt"
	"math"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// ColorMesh paints a value matrix as colored cells. It is the usual
// main-canvas plotter of a heatmap, but works on any panel.
type ColorMesh struct {
	data    [][]float64
	cmap    *Colormap
	norm    Normalize
	normSet bool
	title   string
	annot   bool
	annotFm string

	rows, cols [][]int
}

// MeshOption configures a ColorMesh.
type MeshOption func(*ColorMesh)

// MeshCmap sets the colormap. The default is Coolwarm.
func MeshCmap(cm *Colormap) MeshOption {
	return func(m *ColorMesh) { m.cmap = cm }
}

// MeshRange pins the value range instead of scanning the data.
func MeshRange(vmin, vmax float64) MeshOption {
	return func(m *ColorMesh) {
		m.norm = Normalize{Vmin: vmin, Vmax: vmax}
		m.normSet = true
	}
}

// MeshLegend titles the colorbar legend. An empty title suppresses it.
func MeshLegend(title string) MeshOption {
	return func(m *ColorMesh) { m.title = title }
}

// MeshAnnot writes each cell's value into the cell using the given
// verb, e.g. "%.2f".
func MeshAnnot(format string) MeshOption {
	return func(m *ColorMesh) {
		m.annot = true
		m.annotFm = format
	}
}

// NewColorMesh creates a mesh over data, rows by columns.
func NewColorMesh(data [][]float64, opts ...MeshOption) *ColorMesh {
	m := &ColorMesh{data: data, cmap: Coolwarm, annotFm: "%.3g"}
	for _, opt := range opts {
		opt(m)
	}
	if !m.normSet {
		m.norm = NormalizeOf(data)
	}
	return m
}

func (m *ColorMesh) Kind() string                     { return "colormesh" }
func (m *ColorMesh) SizeHint(rc RenderContext) float64 { return 0 }
func (m *ColorMesh) Splittable() bool                 { return true }

// SetSplit implements Splitter.
func (m *ColorMesh) SetSplit(rows, cols [][]int) {
	m.rows, m.cols = rows, cols
}

// Legends implements Plotter: one colorbar when titled.
func (m *ColorMesh) Legends() []Legend {
	if m.title == "" {
		return nil
	}
	return []Legend{{Title: m.title, Kind: LegendColorbar, Cmap: m.cmap, Norm: m.norm}}
}

// Draw paints the mesh. rects is the row-major segment grid produced
// by the layout; an unsplit mesh receives a single rectangle.
func (m *ColorMesh) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	nr := len(m.data)
	if nr == 0 {
		return fmt.Errorf("%w: empty matrix", ErrDataLength)
	}
	nc := len(m.data[0])
	rows, cols := m.rows, m.cols
	if rows == nil {
		rows = identityChunks(nr)
	}
	if cols == nil {
		cols = identityChunks(nc)
	}
	if len(rects) != len(rows)*len(cols) {
		return fmt.Errorf("%w: %d rects for %dx%d segments", ErrDataLength, len(rects), len(rows), len(cols))
	}
	if chunkTotal(rows) != nr || chunkTotal(cols) != nc {
		return fmt.Errorf("%w: split covers %dx%d, matrix is %dx%d", ErrDataLength, chunkTotal(rows), chunkTotal(cols), nr, nc)
	}

	for ri, rowIdx := range rows {
		for ci, colIdx := range cols {
			rect := rects[ri*len(cols)+ci]
			m.drawSegment(dc, rect, rowIdx, colIdx, rc)
		}
	}
	return nil
}

func (m *ColorMesh) drawSegment(dc *gg.Context, rect layout.Rect, rowIdx, colIdx []int, rc RenderContext) {
	ch := rect.H / float64(len(rowIdx))
	cw := rect.W / float64(len(colIdx))
	for i, r := range rowIdx {
		for j, c := range colIdx {
			v := m.data[r][c]
			if math.IsNaN(v) {
				continue
			}
			x := rect.X + float64(j)*cw
			y := rect.Y + float64(i)*ch
			col := m.cmap.At(m.norm.At(v))
			dc.SetColor(col.Color())
			dc.DrawRectangle(x, y, cw, ch)
			dc.Fill()
			if m.annot && rc.Face != nil {
				dc.SetFont(rc.Face)
				dc.SetColor(textOn(col).Color())
				dc.DrawStringAnchored(fmt.Sprintf(m.annotFm, v), x+cw/2, y+ch/2, 0.5, 0.5)
			}
		}
	}
}

// textOn picks black or white for text over a background color.
func textOn(bg gg.RGBA) gg.RGBA {
	lum := 0.299*bg.R + 0.587*bg.G + 0.114*bg.B
	if lum > 0.5 {
		return gg.RGB(0, 0, 0)
	}
	return gg.RGB(1, 1, 1)
}
