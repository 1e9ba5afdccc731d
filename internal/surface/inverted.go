package surface

import "github.com/afmlab/afmsim/internal/afm"

// invertedTriangle is the one profile assembled from line segments
// rather than tiled from a unit pattern. Each unit starts as a tent
// flipped downward: rims at full height on both edges plunging toward
// -h mid-unit at twice the plain tent slope. Clipping at zero splits
// the tent into a descending ramp, a flat pit floor between the zero
// crossings, and the mirrored ascending ramp.
func (g *Generator) invertedTriangle() afm.SurfaceData {
	n := g.space.Len()
	u := g.p.UnitWidth()
	h := g.p.SurfaceHeight

	slope := 4 * h / u
	cross := h / slope

	var xs, ys []float64
	ramp := func(x0, y0, x1, y1 float64) {
		k := g.space.StepsForDistance(x1 - x0)
		if k < 1 {
			k = 1
		}
		for i := 0; i <= k; i++ {
			t := float64(i) / float64(k)
			xs = append(xs, x0+(x1-x0)*t)
			ys = append(ys, y0+(y1-y0)*t)
		}
	}

	for unit := 0; unit < g.p.PatternUnits; unit++ {
		x0 := g.space.Start + float64(unit)*u
		ramp(x0, h, x0+cross, 0)
		ramp(x0+cross, 0, x0+u-cross, 0)
		ramp(x0+u-cross, 0, x0+u, h)
	}

	// Ramp endpoints overlap at unit joins and pit corners, so the
	// samples are reduced onto the grid keeping the larger ordinate per
	// column. Rims survive the join between units; columns no segment
	// visits stay at 0.
	y := make([]float64, n+2)
	filled := make([]bool, n+2)
	for i := range xs {
		col := g.space.NearestIndex(xs[i]) + 1
		if !filled[col] || ys[i] > y[col] {
			y[col] = ys[i]
			filled[col] = true
		}
	}
	y[0], y[n+1] = 0, 0

	img := make([]float64, len(y))
	copy(img, y)

	return afm.SurfaceData{
		Profile:  afm.ProfileInvTriangle,
		X:        g.displayAxis(),
		Y:        y,
		YImaging: img,
	}
}
