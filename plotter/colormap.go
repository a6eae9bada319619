package plotter

import (
	"math"

	"github.com/gogpu/gg"
)

// Colormap maps a normalized value in [0, 1] to a color by linear
// interpolation between stops.
type Colormap struct {
	Name  string
	Stops []gg.ColorStop
}

// At returns the color at t, clamped to [0, 1].
func (cm *Colormap) At(t float64) gg.RGBA {
	stops := cm.Stops
	if len(stops) == 0 {
		return gg.RGB(0, 0, 0)
	}
	if math.IsNaN(t) || t <= stops[0].Offset {
		return stops[0].Color
	}
	if t >= stops[len(stops)-1].Offset {
		return stops[len(stops)-1].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			lo, hi := stops[i-1], stops[i]
			span := hi.Offset - lo.Offset
			if span == 0 {
				return hi.Color
			}
			return lo.Color.Lerp(hi.Color, (t-lo.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Normalize maps data values onto [0, 1] for a colormap.
type Normalize struct {
	Vmin, Vmax float64
}

// NormalizeOf scans data for its range. A constant matrix maps
// everything to the midpoint.
func NormalizeOf(data [][]float64) Normalize {
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			vmin = min(vmin, v)
			vmax = max(vmax, v)
		}
	}
	if vmin > vmax {
		return Normalize{}
	}
	return Normalize{Vmin: vmin, Vmax: vmax}
}

// At returns the normalized position of v.
func (n Normalize) At(v float64) float64 {
	if n.Vmax == n.Vmin {
		return 0.5
	}
	return (v - n.Vmin) / (n.Vmax - n.Vmin)
}

// Built-in colormaps. Stop values follow the matplotlib palettes of
// the same names, sampled at a handful of points.
var (
	Viridis = &Colormap{Name: "viridis", Stops: []gg.ColorStop{
		{Offset: 0, Color: gg.Hex("#440154")},
		{Offset: 0.25, Color: gg.Hex("#3b528b")},
		{Offset: 0.5, Color: gg.Hex("#21918c")},
		{Offset: 0.75, Color: gg.Hex("#5ec962")},
		{Offset: 1, Color: gg.Hex("#fde725")},
	}}
	Coolwarm = &Colormap{Name: "coolwarm", Stops: []gg.ColorStop{
		{Offset: 0, Color: gg.Hex("#3b4cc0")},
		{Offset: 0.5, Color: gg.Hex("#dddddd")},
		{Offset: 1, Color: gg.Hex("#b40426")},
	}}
	Greys = &Colormap{Name: "greys", Stops: []gg.ColorStop{
		{Offset: 0, Color: gg.Hex("#ffffff")},
		{Offset: 1, Color: gg.Hex("#000000")},
	}}
	Blues = &Colormap{Name: "blues", Stops: []gg.ColorStop{
		{Offset: 0, Color: gg.Hex("#f7fbff")},
		{Offset: 1, Color: gg.Hex("#08306b")},
	}}
	RdBu = &Colormap{Name: "rdbu", Stops: []gg.ColorStop{
		{Offset: 0, Color: gg.Hex("#67001f")},
		{Offset: 0.5, Color: gg.Hex("#f7f7f7")},
		{Offset: 1, Color: gg.Hex("#053061")},
	}}
)

// CategoricalPalette cycles distinct colors for categorical tracks.
// The defaults follow the common ten-color scheme.
var CategoricalPalette = []gg.RGBA{
	gg.Hex("#1f77b4"), gg.Hex("#ff7f0e"), gg.Hex("#2ca02c"),
	gg.Hex("#d62728"), gg.Hex("#9467bd"), gg.Hex("#8c564b"),
	gg.Hex("#e377c2"), gg.Hex("#7f7f7f"), gg.Hex("#bcbd22"),
	gg.Hex("#17becf"),
}
