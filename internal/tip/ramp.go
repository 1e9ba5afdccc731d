package tip

import "math"

// buildRamp returns the straight segment from (x0, y0) to (x1, y1),
// endpoints included. Spans wider than one axis step are sampled at
// roughly the axis pitch; narrower spans fall back to a fixed point
// count so a near-vertical side still has interior points for the
// contamination model to work on.
func (b *Builder) buildRamp(x0, y0, x1, y1 float64) ([]float64, []float64) {
	span := math.Abs(x1 - x0)
	k := b.space.StepsForDistance(span)
	if span <= b.space.Step || k < 2 {
		k = b.p.VerticalRampPoints - 1
	}
	xs := make([]float64, k+1)
	ys := make([]float64, k+1)
	for i := 0; i <= k; i++ {
		t := float64(i) / float64(k)
		xs[i] = x0 + (x1-x0)*t
		ys[i] = y0 + (y1-y0)*t
	}
	xs[k], ys[k] = x1, y1
	return xs, ys
}
