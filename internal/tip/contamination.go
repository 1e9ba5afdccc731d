package tip

import (
	"math"

	"github.com/afmlab/afmsim/internal/afm"
)

// Knot positions for the wavelength fraction curves, on the normalized
// radius u = radius / MaxTipRadius.
var contamKnots = [5]float64{0, 0.25, 0.5, 0.75, 1}

// lagrange5 evaluates the degree-4 Lagrange interpolant through
// (contamKnots[i], ys[i]) at u. At a knot the basis collapses to the
// tabulated ordinate exactly.
func lagrange5(ys [5]float64, u float64) float64 {
	sum := 0.0
	for i := range contamKnots {
		term := ys[i]
		for j := range contamKnots {
			if j != i {
				term *= (u - contamKnots[j]) / (contamKnots[i] - contamKnots[j])
			}
		}
		sum += term
	}
	return sum
}

// fracBounds returns the smallest and largest admissible contamination
// wavelength, as fractions of the side arc length. Both curves are
// interpolated over the normalized radius; the middle ordinate shifts
// with the radius-to-width ratio so slender tips admit shorter waves.
func (b *Builder) fracBounds(radius, halfWidth float64) (lo, hi float64) {
	u := radius / b.p.MaxTipRadius
	rho := 0.0
	if halfWidth > 0 {
		rho = radius / halfWidth
	}
	if rho > 1 {
		rho = 1
	}

	minYs := [5]float64{}
	minYs[0] = 0.12
	minYs[4] = 0.36
	minYs[2] = (minYs[0]+minYs[4])/2 - 0.05*rho
	minYs[1] = (minYs[0] + minYs[2]) / 2
	minYs[3] = (minYs[2] + minYs[4]) / 2

	maxYs := [5]float64{}
	maxYs[0] = 0.45
	maxYs[4] = 0.95
	maxYs[2] = (maxYs[0]+maxYs[4])/2 + 0.08*rho
	maxYs[1] = (maxYs[0] + maxYs[2]) / 2
	maxYs[3] = (maxYs[2] + maxYs[4]) / 2

	return lagrange5(minYs, u), lagrange5(maxYs, u)
}

// contaminate perturbs a side segment in place with one deterministic
// squared-sine dip train. The sign of the maximum slope selects which
// end anchors the phase and which noise component picks the wavelength,
// so the two sides of a tip decorate independently but reproducibly.
// The segment endpoints are left on the nominal line.
func (b *Builder) contaminate(xs, ys []float64, noise afm.NoisePair, radius, halfWidth float64) {
	n := len(xs)
	if n < 3 {
		return
	}

	arcLen := 0.0
	m := 0.0
	sloped := false
	for i := 1; i < n; i++ {
		dx := xs[i] - xs[i-1]
		dy := ys[i] - ys[i-1]
		arcLen += math.Hypot(dx, dy)
		if dx == 0 && dy == 0 {
			continue
		}
		if s := dy / dx; !sloped || s > m {
			m = s
			sloped = true
		}
	}
	if !sloped || m == 0 {
		return
	}

	comp := noise.B
	anchor := n - 1
	if m < 0 {
		comp = noise.A
		anchor = 0
	}

	lo, hi := b.fracBounds(radius, halfWidth)
	wavelength := (lo + (hi-lo)*comp) * arcLen
	if wavelength <= 0 || math.IsNaN(wavelength) {
		return
	}

	t := (halfWidth - radius) / (b.p.MaxHalfWidth - radius)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	amp := 1 - 0.5*t

	for i := 1; i < n-1; i++ {
		s := math.Sin(2 * math.Pi * (xs[i] - xs[anchor]) / wavelength)
		ys[i] -= amp * s * s
	}
}
