package viz

import (
	"math"
	"strings"
)

// Braille patterns, 2x4 dots per cell:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights one sub-pixel. Coordinates are in sub-pixels: the canvas
// is (Width*2) x (Height*4) of them, origin at the top left.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto a canvas. Y grows upward in
// world space and downward on the canvas, so the mapping flips it.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	W, H       int // sub-pixel extent
}

// FitViewport bounds every given series, pads the range by 5 percent,
// and returns a viewport covering the canvas. Series may be nil.
func FitViewport(c *Canvas, xSeries, ySeries [][]float64) Viewport {
	v := Viewport{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		W: c.Width * 2, H: c.Height * 4,
	}
	for _, s := range xSeries {
		for _, x := range s {
			v.MinX = math.Min(v.MinX, x)
			v.MaxX = math.Max(v.MaxX, x)
		}
	}
	for _, s := range ySeries {
		for _, y := range s {
			v.MinY = math.Min(v.MinY, y)
			v.MaxY = math.Max(v.MaxY, y)
		}
	}
	if math.IsInf(v.MinX, 1) {
		v.MinX, v.MaxX = 0, 1
	}
	if math.IsInf(v.MinY, 1) {
		v.MinY, v.MaxY = 0, 1
	}
	if v.MaxX == v.MinX {
		v.MaxX = v.MinX + 1
	}
	if v.MaxY == v.MinY {
		v.MaxY = v.MinY + 1
	}
	padX := (v.MaxX - v.MinX) * 0.05
	padY := (v.MaxY - v.MinY) * 0.05
	v.MinX -= padX
	v.MaxX += padX
	v.MinY -= padY
	v.MaxY += padY
	return v
}

// Headroom raises the viewport ceiling by the given fraction of the
// vertical range, leaving room above the data for an overlay.
func (v Viewport) Headroom(frac float64) Viewport {
	v.MaxY += (v.MaxY - v.MinY) * frac
	return v
}

// Map projects a world point to sub-pixel coordinates.
func (v Viewport) Map(x, y float64) (int, int) {
	px := (x - v.MinX) / (v.MaxX - v.MinX) * float64(v.W-1)
	py := float64(v.H-1) - (y-v.MinY)/(v.MaxY-v.MinY)*float64(v.H-1)
	return int(math.Round(px)), int(math.Round(py))
}

// Polyline draws connected world-space segments through the viewport.
func (c *Canvas) Polyline(v Viewport, xs, ys []float64) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return
	}
	px, py := v.Map(xs[0], ys[0])
	if len(xs) == 1 {
		c.Set(px, py)
		return
	}
	for i := 1; i < len(xs); i++ {
		qx, qy := v.Map(xs[i], ys[i])
		c.DrawLine(px, py, qx, qy)
		px, py = qx, qy
	}
}

// Marker stamps a 3x3 block at a world point.
func (c *Canvas) Marker(v Viewport, x, y float64) {
	px, py := v.Map(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(px+dx, py+dy)
		}
	}
}
