package tip

import (
	"fmt"
	"math"

	"github.com/afmlab/afmsim/internal/afm"
)

// Builder constructs tip outlines on a fixed axis.
type Builder struct {
	p     afm.Params
	space afm.Space
}

func NewBuilder(p afm.Params, space afm.Space) *Builder {
	return &Builder{p: p, space: space}
}

// RadiusFromControl maps a slider value in [0,1] to a physical apex
// radius. The curve is exponential so the lower half of the slider
// stays in the sharp-tip regime, normalized against its value at 1.
func (b *Builder) RadiusFromControl(v float64) (float64, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: radius control %v", afm.ErrControlRange, v)
	}
	curve := func(v float64) float64 {
		return (math.Pow(b.p.RadiusBase, v) - 1) / (b.p.RadiusBase - 1)
	}
	return curve(v) / curve(1) * b.p.MaxTipRadius, nil
}

// HalfWidthFromControl maps a slider value in [0,1] to the shank half
// width, interpolating between the apex radius and the maximum.
func (b *Builder) HalfWidthFromControl(radius, v float64) (float64, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: width control %v", afm.ErrControlRange, v)
	}
	return radius + (b.p.MaxHalfWidth-radius)*v, nil
}

// Build constructs the outline described by in. Sheared and multi-peak
// tips ignore the user sliders and build at the preset control value so
// the artifact geometry stays comparable across runs.
func (b *Builder) Build(in afm.TipShapeInput) (afm.TipGeometry, error) {
	rc, wc := in.RadiusControl, in.WidthControl
	if in.Kind == afm.TipSheared || in.Kind == afm.TipMultiPeak {
		rc, wc = b.p.PresetControl, b.p.PresetControl
	}

	radius, err := b.RadiusFromControl(rc)
	if err != nil {
		return afm.TipGeometry{}, err
	}
	halfWidth, err := b.HalfWidthFromControl(radius, wc)
	if err != nil {
		return afm.TipGeometry{}, err
	}

	cx, cy := in.CenterX, in.CenterY

	var midX, midY []float64
	var apexDist float64
	switch in.Kind {
	case afm.TipSheared:
		midX, midY = b.shearedMiddle(cx, cy, radius)
		apexDist = 0.5 * radius
	case afm.TipMultiPeak:
		midX, midY, apexDist = b.multiPeakMiddle(cx, cy, radius)
	default:
		midX, midY = b.arcMiddle(cx, cy, radius)
		apexDist = radius
	}

	// A needle tip has no shank to hang side segments on; close the
	// outline by retracing the arc instead of building zero-width ramps.
	if in.Kind == afm.TipNormal && radius == 0 && halfWidth == radius {
		xt := make([]float64, 0, 2*len(midX))
		yt := make([]float64, 0, 2*len(midY))
		xt = append(xt, midX...)
		yt = append(yt, midY...)
		for i := len(midX) - 1; i >= 0; i-- {
			xt = append(xt, midX[i])
			yt = append(yt, midY[i])
		}
		return afm.TipGeometry{
			Kind:      in.Kind,
			Xtip:      xt,
			Ytip:      yt,
			CenterX:   cx,
			CenterY:   cy,
			Radius:    radius,
			HalfWidth: halfWidth,
			ApexDist:  apexDist,
		}, nil
	}

	top := cy + b.p.TipTopHeight
	leftX, leftY := b.buildRamp(cx-halfWidth, top, midX[0], midY[0])
	rightX, rightY := b.buildRamp(midX[len(midX)-1], midY[len(midY)-1], cx+halfWidth, top)

	if in.Contaminated {
		b.contaminate(leftX, leftY, in.Noise, radius, halfWidth)
		b.contaminate(rightX, rightY, in.Noise, radius, halfWidth)
	}

	// middle endpoints coincide with the ramp junctions; drop them
	xt := make([]float64, 0, len(leftX)+len(midX)+len(rightX))
	yt := make([]float64, 0, cap(xt))
	xt = append(xt, leftX...)
	yt = append(yt, leftY...)
	if len(midX) > 2 {
		xt = append(xt, midX[1:len(midX)-1]...)
		yt = append(yt, midY[1:len(midY)-1]...)
	}
	xt = append(xt, rightX...)
	yt = append(yt, rightY...)

	return afm.TipGeometry{
		Kind:      in.Kind,
		Xtip:      xt,
		Ytip:      yt,
		CenterX:   cx,
		CenterY:   cy,
		Radius:    radius,
		HalfWidth: halfWidth,
		ApexDist:  apexDist,
	}, nil
}

// arcMiddle samples the lower semicircle of radius r about (cx, cy).
// The sample count is even so the apex at the centerline is hit
// exactly; a zero radius degenerates to a doubled point.
func (b *Builder) arcMiddle(cx, cy, r float64) ([]float64, []float64) {
	k := 2 * b.space.StepsForDistance(r)
	if k < 2 {
		k = 2
	}
	xs := make([]float64, k+1)
	ys := make([]float64, k+1)
	for i := 0; i <= k; i++ {
		x := -r + 2*r*float64(i)/float64(k)
		s := r*r - x*x
		if s < 0 {
			s = 0
		}
		xs[i] = cx + x
		ys[i] = cy - math.Sqrt(s)
	}
	return xs, ys
}

// shearedMiddle replaces the apex arc with a straight slant dropping
// half the radius at the left end and rising half at the right,
// imitating a tilted or fractured apex.
func (b *Builder) shearedMiddle(cx, cy, r float64) ([]float64, []float64) {
	k := b.space.StepsForDistance(2 * r)
	if k < 1 {
		k = 1
	}
	xs := make([]float64, k+1)
	ys := make([]float64, k+1)
	for i := 0; i <= k; i++ {
		t := float64(i) / float64(k)
		xs[i] = cx - r + 2*r*t
		ys[i] = cy - 0.5*r + r*t
	}
	return xs, ys
}

// multiPeakMiddle samples a quartic with two unequal dips across the
// apex span, producing the classic double-tip artifact. The apex drop
// is taken from the sampled minimum so the scan engine and the outline
// agree on where contact happens.
func (b *Builder) multiPeakMiddle(cx, cy, r float64) ([]float64, []float64, float64) {
	k := b.space.StepsForDistance(2 * r)
	if k < 2 {
		k = 2
	}
	span := b.p.QuarticSpan
	xs := make([]float64, k+1)
	ys := make([]float64, k+1)
	minY := math.Inf(1)
	for i := 0; i <= k; i++ {
		t := float64(i) / float64(k)
		xi := -span + 2*span*t
		q := 500*math.Pow(xi, 4) + 20*math.Pow(xi, 3) - 12*xi*xi
		xs[i] = cx - r + 2*r*t
		ys[i] = cy + b.p.QuarticAmp*q
		minY = math.Min(minY, ys[i])
	}
	return xs, ys, cy - minY
}
