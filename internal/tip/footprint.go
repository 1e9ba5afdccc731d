package tip

import (
	"math"

	"github.com/afmlab/afmsim/internal/afm"
)

// Footprint resamples a tip outline onto axis columns as a lower
// envelope: one ordinate per column at the axis pitch, keeping the
// lowest outline point that lands in each column. Columns the outline
// skipped are filled by linear interpolation between their filled
// neighbors, so the result is dense and aligned with surface columns.
func Footprint(g afm.TipGeometry, space afm.Space) []float64 {
	minX, maxX := g.Xtip[0], g.Xtip[0]
	for _, x := range g.Xtip {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}

	cols := space.StepsForDistance(maxX-minX) + 1
	if cols < 1 {
		cols = 1
	}
	y := make([]float64, cols)
	filled := make([]bool, cols)
	for i := range g.Xtip {
		c := int(math.Round((g.Xtip[i] - minX) / space.Step))
		if c < 0 {
			c = 0
		}
		if c >= cols {
			c = cols - 1
		}
		if !filled[c] || g.Ytip[i] < y[c] {
			y[c] = g.Ytip[i]
			filled[c] = true
		}
	}

	last := 0
	for c := 1; c < cols; c++ {
		if !filled[c] {
			continue
		}
		if c-last > 1 {
			for k := last + 1; k < c; k++ {
				t := float64(k-last) / float64(c-last)
				y[k] = y[last] + (y[c]-y[last])*t
			}
		}
		last = c
	}

	return y
}
