package surface

import (
	"fmt"
	"strings"

	"github.com/afmlab/afmsim/internal/afm"
)

// Generator builds surfaces on a fixed axis. Construction wires every
// known profile into the registry; Generate is a pure lookup after that.
type Generator struct {
	p        afm.Params
	space    afm.Space
	builders map[afm.Profile]func() afm.SurfaceData
}

func NewGenerator(p afm.Params, space afm.Space) *Generator {
	g := &Generator{p: p, space: space}
	g.builders = map[afm.Profile]func() afm.SurfaceData{
		afm.ProfileSquare:      func() afm.SurfaceData { return g.fromPattern(afm.ProfileSquare, g.squarePattern()) },
		afm.ProfileRectangle:   func() afm.SurfaceData { return g.fromPattern(afm.ProfileRectangle, g.rectanglePattern()) },
		afm.ProfileTriangle:    func() afm.SurfaceData { return g.fromPattern(afm.ProfileTriangle, g.trianglePattern()) },
		afm.ProfileSine:        func() afm.SurfaceData { return g.fromPattern(afm.ProfileSine, g.sinePattern()) },
		afm.ProfileSemicircle:  func() afm.SurfaceData { return g.fromPattern(afm.ProfileSemicircle, g.semicirclePattern()) },
		afm.ProfileRandom:      func() afm.SurfaceData { return g.fromPattern(afm.ProfileRandom, g.randomPattern()) },
		afm.ProfileInvTriangle: g.invertedTriangle,
	}
	return g
}

// Generate builds the named profile on the generator's axis.
func (g *Generator) Generate(profile afm.Profile) (afm.SurfaceData, error) {
	build, ok := g.builders[profile]
	if !ok {
		return afm.SurfaceData{}, fmt.Errorf("%w: %q", afm.ErrUnknownProfile, string(profile))
	}
	return build(), nil
}

// Parse maps a user-facing name to its canonical Profile.
func Parse(name string) (afm.Profile, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "inverted" || s == "invtriangle" {
		s = string(afm.ProfileInvTriangle)
	}
	for _, p := range afm.Profiles() {
		if s == string(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", afm.ErrUnknownProfile, name)
}

// Names lists the profile names in presentation order.
func Names() []string {
	ps := afm.Profiles()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return names
}

// displayAxis returns the axis samples bracketed by one duplicated
// abscissa at each end, matching the zero-closed display polygon.
func (g *Generator) displayAxis() []float64 {
	n := g.space.Len()
	x := make([]float64, n+2)
	x[0] = g.space.Start
	copy(x[1:], g.space.X)
	x[n+1] = g.space.End
	return x
}

// fitToAxis centers pattern on the axis grid: a longer pattern loses
// the same number of samples from each edge, a shorter one is zero
// padded symmetrically.
func (g *Generator) fitToAxis(pattern []float64) []float64 {
	n := g.space.Len()
	out := make([]float64, n)
	if len(pattern) >= n {
		lo := (len(pattern) - n) / 2
		copy(out, pattern[lo:lo+n])
		return out
	}
	lo := (n - len(pattern)) / 2
	copy(out[lo:], pattern)
	return out
}

// fromPattern fits a height pattern to the axis and embeds it between
// forced-zero endpoints so the filled polygon closes at the baseline.
func (g *Generator) fromPattern(profile afm.Profile, pattern []float64) afm.SurfaceData {
	n := g.space.Len()
	y := make([]float64, n+2)
	copy(y[1:1+n], g.fitToAxis(pattern))
	y[0], y[n+1] = 0, 0

	img := make([]float64, len(y))
	copy(img, y)

	return afm.SurfaceData{
		Profile:  profile,
		X:        g.displayAxis(),
		Y:        y,
		YImaging: img,
	}
}
