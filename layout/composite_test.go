package layout

import (
	"errors"
	"slices"
	"testing"
)

func TestConcatRescalesCrossAxis(t *testing.T) {
	a := NewCrossLayout("a", 4, 5)
	b := NewCrossLayout("b", 2, 3)

	c, err := ConcatHorizontal(a, b, 0.3)
	if err != nil {
		t.Fatalf("ConcatHorizontal() error = %v", err)
	}
	rg, err := c.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	bRects, _ := rg.Rects("b")
	if !approx(bRects[0].H, 5) {
		t.Errorf("b cross size = %g, want 5 (rescaled to a)", bRects[0].H)
	}
	aRects, _ := rg.Rects("a")
	if !approx(bRects[0].X-aRects[0].Right(), 0.3) {
		t.Errorf("gap between a and b = %g, want 0.3", bRects[0].X-aRects[0].Right())
	}
	if !approx(aRects[0].Y, bRects[0].Y) {
		t.Errorf("a and b main cells not aligned: y %g vs %g", aRects[0].Y, bRects[0].Y)
	}
}

func TestConcatAlignedWithoutRescale(t *testing.T) {
	tests := []struct {
		name  string
		align Align
		wantY func(aY float64) float64
	}{
		{"start", AlignStart, func(aY float64) float64 { return aY }},
		{"center", AlignCenter, func(aY float64) float64 { return aY + 1 }},
		{"end", AlignEnd, func(aY float64) float64 { return aY + 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewCrossLayout("a", 4, 5)
			b := NewCrossLayout("b", 2, 3)
			c, err := ConcatHorizontal(a, b, 0, WithAlign(tt.align))
			if err != nil {
				t.Fatal(err)
			}
			rg, err := c.Build()
			if err != nil {
				t.Fatal(err)
			}
			aRects, _ := rg.Rects("a")
			bRects, _ := rg.Rects("b")
			if !approx(bRects[0].H, 3) {
				t.Errorf("b cross size = %g, want 3 (no rescale)", bRects[0].H)
			}
			if want := tt.wantY(aRects[0].Y); !approx(bRects[0].Y, want) {
				t.Errorf("b y = %g, want %g", bRects[0].Y, want)
			}
		})
	}
}

func TestConcatVerticalWithSidePanels(t *testing.T) {
	a := NewCrossLayout("a", 4, 3)
	a.AddCell(SideLeft, "a-anno", Fixed(1), 0)
	b := NewCrossLayout("b", 4, 2)
	b.AddCell(SideLeft, "b-anno", Fixed(0.5), 0)

	c, err := ConcatVertical(a, b, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	rg, err := c.Build()
	if err != nil {
		t.Fatal(err)
	}

	aRects, _ := rg.Rects("a")
	bRects, _ := rg.Rects("b")
	// b's bbox starts right below a's track plus the spacer.
	if !approx(bRects[0].Y, aRects[0].Bottom()+0.2) {
		t.Errorf("b y = %g, want %g", bRects[0].Y, aRects[0].Bottom()+0.2)
	}
	// Main cells share x.
	if !approx(aRects[0].X, bRects[0].X) {
		t.Errorf("a x = %g, b x = %g, want aligned", aRects[0].X, bRects[0].X)
	}
}

func TestCompositeDuplicateNames(t *testing.T) {
	a := NewCrossLayout("main", 4, 4)
	b := NewCrossLayout("main", 2, 2)
	c := NewComposite(a)
	if err := c.Append(SideRight, b); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Append() error = %v, want ErrDuplicateName", err)
	}
}

func TestAppendIntoTwoComposites(t *testing.T) {
	a := NewCrossLayout("a", 4, 4)
	b := NewCrossLayout("b", 2, 2)
	c := NewComposite(a)
	if err := c.Append(SideRight, b); err != nil {
		t.Fatal(err)
	}
	d := NewComposite(NewCrossLayout("d", 3, 3))
	if err := d.Append(SideLeft, b); !errors.Is(err, ErrAppendComposite) {
		t.Errorf("Append() error = %v, want ErrAppendComposite", err)
	}
}

func TestCompositePanelNames(t *testing.T) {
	a := NewCrossLayout("a", 4, 4)
	a.AddCell(SideLeft, "a-labels", Fixed(1), 0)
	b := NewCrossLayout("b", 4, 2)
	b.AddCell(SideTop, "b-bars", Fixed(1), 0)

	c, err := ConcatVertical(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "a-labels", "b", "b-bars"}
	if got := c.PanelNames(); !slices.Equal(got, want) {
		t.Errorf("PanelNames() = %v, want %v", got, want)
	}

	rg, err := c.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := rg.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestStackPlacesChildren(t *testing.T) {
	a := NewCrossLayout("a", 3, 2, WithMargin(0))
	b := NewCrossLayout("b", 2, 1, WithMargin(0))

	s := NewStack(Vertical, WithStackMargin(0))
	s.Add(a)
	s.AddGap(0.5)
	s.Add(b, ItemAlign(AlignEnd))

	w, h := s.BoundingSize()
	if !approx(w, 3) || !approx(h, 3.5) {
		t.Errorf("BoundingSize() = (%g, %g), want (3, 3.5)", w, h)
	}

	rg, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	aRects, _ := rg.Rects("a")
	bRects, _ := rg.Rects("b")
	if !approx(aRects[0].Y, 0) || !approx(bRects[0].Y, 2.5) {
		t.Errorf("stacked y positions = %g, %g; want 0, 2.5", aRects[0].Y, bRects[0].Y)
	}
	// AlignEnd pushes b to the right edge; a keeps the left edge.
	if !approx(aRects[0].X, 0) || !approx(bRects[0].X, 1) {
		t.Errorf("x positions = %g, %g; want 0, 1", aRects[0].X, bRects[0].X)
	}
}

func TestStackNests(t *testing.T) {
	a := NewCrossLayout("a", 2, 2, WithMargin(0))
	b := NewCrossLayout("b", 2, 1, WithMargin(0))
	inner := NewStack(Vertical)
	inner.Add(a)
	inner.Add(b)

	c := NewCrossLayout("c", 1, 3, WithMargin(0))
	outer := NewStack(Horizontal, WithStackMargin(0))
	outer.Add(inner)
	outer.Add(c)

	w, h := outer.BoundingSize()
	if !approx(w, 3) || !approx(h, 3) {
		t.Errorf("BoundingSize() = (%g, %g), want (3, 3)", w, h)
	}
	rg, err := outer.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	cRects, _ := rg.Rects("c")
	if !approx(cRects[0].X, 2) {
		t.Errorf("c x = %g, want 2", cRects[0].X)
	}
}

func TestStackDuplicateNames(t *testing.T) {
	a := NewCrossLayout("same", 1, 1, WithMargin(0))
	b := NewCrossLayout("same", 1, 1, WithMargin(0))
	s := NewStack(Horizontal)
	s.Add(a)
	s.Add(b)
	if _, err := s.Build(); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Build() error = %v, want ErrDuplicateName", err)
	}
}
