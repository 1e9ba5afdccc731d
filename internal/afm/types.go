package afm

import (
	"fmt"
	"math/rand"
)

// Profile names a surface pattern understood by the surface generator.
type Profile string

const (
	ProfileSquare      Profile = "square"
	ProfileRectangle   Profile = "rectangle"
	ProfileTriangle    Profile = "triangle"
	ProfileSine        Profile = "sine"
	ProfileSemicircle  Profile = "semicircle"
	ProfileInvTriangle Profile = "inverted-triangle"
	ProfileRandom      Profile = "random"
)

// Profiles lists every surface profile in presentation order.
func Profiles() []Profile {
	return []Profile{
		ProfileSquare,
		ProfileRectangle,
		ProfileTriangle,
		ProfileSine,
		ProfileSemicircle,
		ProfileInvTriangle,
		ProfileRandom,
	}
}

// TipKind selects the apex construction of a probe tip.
type TipKind int

const (
	// TipNormal is a rounded apex between two straight shank sides.
	TipNormal TipKind = iota
	// TipSheared replaces the apex arc with a tilted straight segment.
	TipSheared
	// TipMultiPeak replaces the apex with a double-dip quartic profile.
	TipMultiPeak
)

func (k TipKind) String() string {
	switch k {
	case TipNormal:
		return "normal"
	case TipSheared:
		return "sheared"
	case TipMultiPeak:
		return "multipeak"
	}
	return fmt.Sprintf("TipKind(%d)", int(k))
}

// ParseTipKind maps a user-facing name to a TipKind.
func ParseTipKind(name string) (TipKind, error) {
	switch name {
	case "normal", "":
		return TipNormal, nil
	case "sheared":
		return TipSheared, nil
	case "multipeak", "multi-peak":
		return TipMultiPeak, nil
	}
	return TipNormal, fmt.Errorf("%w: %q", ErrUnknownTipKind, name)
}

// NoisePair carries the two uniform draws the contamination model
// consumes. Scans that share a NoisePair are reproducible.
type NoisePair struct {
	A float64
	B float64
}

// NoiseFromSeed derives a NoisePair deterministically from seed.
func NoiseFromSeed(seed int64) NoisePair {
	rng := rand.New(rand.NewSource(seed))
	return NoisePair{A: rng.Float64(), B: rng.Float64()}
}

// TipShapeInput is the slider-level description of a probe tip, as a
// user would set it: two control values in [0,1] plus the artifact
// switches.
type TipShapeInput struct {
	Kind          TipKind
	RadiusControl float64
	WidthControl  float64
	Contaminated  bool
	Noise         NoisePair
	CenterX       float64
	CenterY       float64
}

// SurfaceData is a generated surface sampled on the shared axis. X and
// Y describe the display polygon: the axis samples bracketed by one
// duplicated abscissa at each end whose ordinates are forced to zero so
// the outline closes. YImaging is the same columns as seen by the scan
// engine.
type SurfaceData struct {
	Profile  Profile
	X        []float64
	Y        []float64
	YImaging []float64
}

// TipGeometry is a built tip outline. Xtip and Ytip trace the polygon
// from the top of one shank side, down through the apex section, and up
// the other side. ApexDist is the drop from the nominal center to the
// apex reference point the scan engine offsets by.
type TipGeometry struct {
	Kind      TipKind
	Xtip      []float64
	Ytip      []float64
	CenterX   float64
	CenterY   float64
	Radius    float64
	HalfWidth float64
	ApexDist  float64
}

// Translated returns a copy of the geometry shifted by (dx, dy). The
// apex metrics are translation invariant and carry over unchanged.
func (g TipGeometry) Translated(dx, dy float64) TipGeometry {
	out := g
	out.Xtip = make([]float64, len(g.Xtip))
	out.Ytip = make([]float64, len(g.Ytip))
	for i := range g.Xtip {
		out.Xtip[i] = g.Xtip[i] + dx
		out.Ytip[i] = g.Ytip[i] + dy
	}
	out.CenterX += dx
	out.CenterY += dy
	return out
}
