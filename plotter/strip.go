package plotter

import (
	"fmt"

	"github.com/Marsilea-viz/marsilea/layout"
	"github.com/gogpu/gg"
)

// ColorStrip paints one colored block per data index according to a
// categorical label, the usual annotation track beside a heatmap.
type ColorStrip struct {
	labels  []string
	palette map[string]gg.RGBA
	title   string
	cats    []string // first-seen category order

	chunks [][]int
}

// StripOption configures a ColorStrip.
type StripOption func(*ColorStrip)

// StripPalette assigns colors to categories. Categories not in the
// map fall back to the shared palette.
func StripPalette(p map[string]gg.RGBA) StripOption {
	return func(s *ColorStrip) {
		for k, v := range p {
			s.palette[k] = v
		}
	}
}

// StripLegend titles a swatch legend for the track.
func StripLegend(title string) StripOption {
	return func(s *ColorStrip) { s.title = title }
}

// NewColorStrip creates a strip over labels, one per index of the
// attached axis. Colors cycle in first-seen order unless a palette
// pins them.
func NewColorStrip(labels []string, opts ...StripOption) *ColorStrip {
	s := &ColorStrip{labels: labels, palette: make(map[string]gg.RGBA)}
	for _, opt := range opts {
		opt(s)
	}
	seen := make(map[string]bool)
	auto := 0
	for _, lb := range labels {
		if seen[lb] {
			continue
		}
		seen[lb] = true
		s.cats = append(s.cats, lb)
		if _, ok := s.palette[lb]; !ok {
			s.palette[lb] = CategoricalPalette[auto%len(CategoricalPalette)]
			auto++
		}
	}
	return s
}

func (s *ColorStrip) Kind() string                      { return "colorstrip" }
func (s *ColorStrip) SizeHint(rc RenderContext) float64 { return 0 }
func (s *ColorStrip) Splittable() bool                  { return true }

// SetSplit implements Splitter.
func (s *ColorStrip) SetSplit(rows, cols [][]int) { s.chunks = rows }

func (s *ColorStrip) Legends() []Legend {
	if s.title == "" {
		return nil
	}
	entries := make([]LegendEntry, len(s.cats))
	for i, c := range s.cats {
		entries[i] = LegendEntry{Label: c, Color: s.palette[c]}
	}
	return []Legend{{Title: s.title, Kind: LegendSwatches, Entries: entries}}
}

func (s *ColorStrip) Draw(dc *gg.Context, rects []layout.Rect, rc RenderContext) error {
	chunks := s.chunks
	if chunks == nil {
		chunks = identityChunks(len(s.labels))
	}
	if len(rects) != len(chunks) {
		return fmt.Errorf("%w: %d rects for %d segments", ErrDataLength, len(rects), len(chunks))
	}
	if chunkTotal(chunks) != len(s.labels) {
		return fmt.Errorf("%w: split covers %d, have %d labels", ErrDataLength, chunkTotal(chunks), len(s.labels))
	}

	vertical := rc.Side == layout.SideLeft || rc.Side == layout.SideRight
	for ci, idx := range chunks {
		rect := rects[ci]
		for i, li := range idx {
			dc.SetColor(s.palette[s.labels[li]].Color())
			if vertical {
				sh := rect.H / float64(len(idx))
				dc.DrawRectangle(rect.X, rect.Y+float64(i)*sh, rect.W, sh)
			} else {
				sw := rect.W / float64(len(idx))
				dc.DrawRectangle(rect.X+float64(i)*sw, rect.Y, sw, rect.H)
			}
			dc.Fill()
		}
	}
	return nil
}
