package surface

import "math"

// Plateau heights for the irregular profile, one per segment. The table
// is fixed so repeated runs see the same surface.
var randomHeights = [...]float64{6, 3, 9, 5, 10, 4, 8, 2, 7}

// Segment slot holding the triangular break between plateaus.
const randomBreakSlot = 5

// tile evaluates one unit pattern sample by sample and repeats it
// across the configured unit count, closing the final period with the
// unit's first sample so the tiling spans the axis inclusively.
func (g *Generator) tile(unit func(j, n int) float64) []float64 {
	unitN := g.space.StepsForDistance(g.p.UnitWidth())
	if unitN < 1 {
		unitN = 1
	}
	pat := make([]float64, g.p.PatternUnits*unitN+1)
	for i := range pat {
		pat[i] = unit(i%unitN, unitN)
	}
	return pat
}

// squarePattern alternates full-height and zero plateaus, each half a
// unit wide. The plateau sample count comes from the axis index nearest
// to the half-unit distance so the edges land on grid columns.
func (g *Generator) squarePattern() []float64 {
	hi := g.space.NearestIndex(g.space.Start + g.p.UnitWidth()/2)
	return g.tile(func(j, n int) float64 {
		if j < hi {
			return g.p.SurfaceHeight
		}
		return 0
	})
}

// rectanglePattern is the square pattern with the plateau narrowed to a
// quarter unit, leaving three quarters of each unit at the baseline.
func (g *Generator) rectanglePattern() []float64 {
	hi := g.space.NearestIndex(g.space.Start + g.p.UnitWidth()/4)
	return g.tile(func(j, n int) float64 {
		if j < hi {
			return g.p.SurfaceHeight
		}
		return 0
	})
}

func (g *Generator) trianglePattern() []float64 {
	return g.tile(func(j, n int) float64 {
		t := float64(j) / float64(n)
		return g.p.SurfaceHeight * (1 - math.Abs(2*t-1))
	})
}

// sinePattern is one cosine period per unit, shifted so the minima sit
// at the baseline offset rather than at zero.
func (g *Generator) sinePattern() []float64 {
	return g.tile(func(j, n int) float64 {
		t := float64(j) / float64(n)
		return g.p.BaselineOffset + g.p.SurfaceHeight/2*(1-math.Cos(2*math.Pi*t))
	})
}

// semicirclePattern tiles semicircular arcs through the periodic
// distance transform d(x) = (2R/pi)*acos(cos(pi*x/2R)), then flips the
// arcs downward and lifts them so the former apexes rest at the
// baseline offset. The result is a row of scalloped pits with cusps at
// R+offset between them.
func (g *Generator) semicirclePattern() []float64 {
	r := g.p.UnitWidth() / 2
	return g.tile(func(j, n int) float64 {
		x := float64(j) * g.space.Step
		d := (2 * r / math.Pi) * math.Acos(math.Cos(math.Pi*x/(2*r)))
		s := r*r - (d-r)*(d-r)
		if s < 0 {
			s = 0
		}
		return r + g.p.BaselineOffset - math.Sqrt(s)
	})
}

// randomPattern divides the whole axis into len(randomHeights)+1 equal
// segments: plateaus at the table heights, with one triangular break in
// the middle slot. Segment edges are resolved with FirstAbove so each
// boundary sample belongs to the segment on its left; the final
// boundary falls past the axis and defaults to the axis length.
func (g *Generator) randomPattern() []float64 {
	nseg := len(randomHeights) + 1
	segW := (g.p.AxisEnd - g.p.AxisStart) / float64(nseg)
	pat := make([]float64, g.space.Len())

	lo := 0
	for seg := 0; seg < nseg; seg++ {
		hi, ok := g.space.FirstAbove(g.p.AxisStart + float64(seg+1)*segW)
		if !ok {
			hi = g.space.Len()
		}
		for i := lo; i < hi; i++ {
			if seg == randomBreakSlot {
				t := (g.space.X[i] - g.p.AxisStart - float64(seg)*segW) / segW
				pat[i] = g.p.SurfaceHeight * (1 - math.Abs(2*t-1))
				continue
			}
			idx := seg
			if seg > randomBreakSlot {
				idx--
			}
			pat[i] = randomHeights[idx]
		}
		lo = hi
	}
	return pat
}
