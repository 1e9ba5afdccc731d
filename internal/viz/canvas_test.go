package viz

import (
	"math"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 4)

	// Sub-pixel (0,0) is the top-left dot of cell (0,0).
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected 0x2801, got %#x", c.Grid[0][0])
	}

	// Sub-pixel (1,3) is the bottom-right dot of the same cell.
	c.Set(1, 3)
	if c.Grid[0][0]&0x80 == 0 {
		t.Errorf("bottom-right dot not set: %#x", c.Grid[0][0])
	}

	// Out of range coordinates are ignored.
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 16)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(3, 7)
	c.Clear()

	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared: %#x", i, j, c.Grid[i][j])
			}
		}
	}
}

func TestViewportMapCorners(t *testing.T) {
	v := Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 5, W: 100, H: 40}

	x, y := v.Map(0, 0)
	if x != 0 || y != 39 {
		t.Errorf("bottom-left mapped to (%d,%d)", x, y)
	}

	x, y = v.Map(10, 5)
	if x != 99 || y != 0 {
		t.Errorf("top-right mapped to (%d,%d)", x, y)
	}

	x, y = v.Map(5, 2.5)
	if math.Abs(float64(x)-49.5) > 1 || math.Abs(float64(y)-19.5) > 1 {
		t.Errorf("center mapped to (%d,%d)", x, y)
	}
}

func TestFitViewportPadsBounds(t *testing.T) {
	c := NewCanvas(10, 10)
	v := FitViewport(c,
		[][]float64{{0, 100}},
		[][]float64{{0, 10}},
	)

	if math.Abs(v.MinX+5) > 1e-9 || math.Abs(v.MaxX-105) > 1e-9 {
		t.Errorf("x bounds [%f, %f], want [-5, 105]", v.MinX, v.MaxX)
	}
	if math.Abs(v.MinY+0.5) > 1e-9 || math.Abs(v.MaxY-10.5) > 1e-9 {
		t.Errorf("y bounds [%f, %f], want [-0.5, 10.5]", v.MinY, v.MaxY)
	}

	if v.W != 20 || v.H != 40 {
		t.Errorf("sub-pixel extent (%d,%d), want (20,40)", v.W, v.H)
	}
}

func TestFitViewportDegenerate(t *testing.T) {
	c := NewCanvas(10, 10)

	// No data at all still yields a usable viewport.
	v := FitViewport(c, nil, nil)
	if v.MaxX <= v.MinX || v.MaxY <= v.MinY {
		t.Errorf("empty fit produced inverted bounds: %+v", v)
	}

	// A single flat series must not collapse the range.
	v = FitViewport(c, [][]float64{{3, 3, 3}}, [][]float64{{7, 7}})
	if v.MaxX <= v.MinX || v.MaxY <= v.MinY {
		t.Errorf("flat fit produced inverted bounds: %+v", v)
	}
}

func TestPolylineDraws(t *testing.T) {
	c := NewCanvas(20, 10)
	v := Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, W: 40, H: 40}

	c.Polyline(v, []float64{0, 5, 10}, []float64{0, 10, 0})

	lit := 0
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("polyline lit no cells")
	}

	// Mismatched series draw nothing.
	c.Clear()
	c.Polyline(v, []float64{0, 1}, []float64{0})
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatal("mismatched polyline lit a cell")
			}
		}
	}
}
