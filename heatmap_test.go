package marsilea

import (
	"errors"
	"math"
	"testing"

	"github.com/Marsilea-viz/marsilea/plotter"
	"github.com/gogpu/gg"
)

func TestHeatmapScale(t *testing.T) {
	if got := heatmapScale(10, 20); got != 0.3 {
		t.Errorf("heatmapScale(10, 20) = %v, want 0.3", got)
	}
	if got := heatmapScale(80, 40); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("heatmapScale(80, 40) = %v, want 0.1", got)
	}
}

func TestNewHeatmap(t *testing.T) {
	data := matrix(10, 20, func(i, j int) float64 { return float64(i * j) })
	hm, err := NewHeatmap(data, plotter.MeshLegend("value"))
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := hm.FigureSize(96)
	if err != nil {
		t.Fatal(err)
	}
	// 20 and 10 cells at 0.3 inch plus 0.2 margins.
	if math.Abs(w-6.4) > 1e-9 || math.Abs(h-3.4) > 1e-9 {
		t.Errorf("FigureSize() = %v x %v, want 6.4 x 3.4", w, h)
	}

	legs := hm.Legends()
	if len(legs) != 1 || legs[0].Title != "value" || legs[0].Kind != plotter.LegendColorbar {
		t.Errorf("legends = %+v, want one colorbar titled value", legs)
	}
}

func TestNewHeatmapBadData(t *testing.T) {
	if _, err := NewHeatmap(nil); !errors.Is(err, ErrDataShape) {
		t.Errorf("empty data error = %v, want ErrDataShape", err)
	}
	if _, err := NewHeatmap([][]float64{{1}, {2, 3}}); !errors.Is(err, ErrDataShape) {
		t.Errorf("ragged data error = %v, want ErrDataShape", err)
	}
}

func TestHeatmapEndToEnd(t *testing.T) {
	data := [][]float64{
		{0, 5, 1}, {9, 1, 8}, {0.5, 4.5, 1.5}, {8.5, 0.5, 9.5},
	}
	hm, err := NewHeatmap(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := hm.AddDendrogram(Left); err != nil {
		t.Fatal(err)
	}
	if err := hm.AddRight(plotter.NewLabels([]string{"w", "x", "y", "z"})); err != nil {
		t.Fatal(err)
	}
	if err := hm.AddTop(plotter.NewBars([]float64{1, 2, 3}), WithPlotSize(0.6)); err != nil {
		t.Fatal(err)
	}

	dpi := 96.0
	w, h, err := hm.FigureSize(dpi)
	if err != nil {
		t.Fatal(err)
	}
	dc := gg.NewContext(int(math.Ceil(w*dpi)), int(math.Ceil(h*dpi)))
	dc.ClearWithColor(gg.RGB(1, 1, 1))
	if err := hm.Render(dc, dpi); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}
