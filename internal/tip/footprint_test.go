package tip

import (
	"math"
	"testing"

	"github.com/afmlab/afmsim/internal/afm"
)

func TestFootprintEnvelope(t *testing.T) {
	b := newTestBuilder()
	g, err := b.Build(afm.TipShapeInput{
		Kind: afm.TipNormal, RadiusControl: 0.5, WidthControl: 0.5,
		CenterX: 50, CenterY: 40,
	})
	if err != nil {
		t.Fatal(err)
	}

	space := afm.NewSpace(afm.DefaultParams())
	foot := Footprint(g, space)

	wantCols := space.StepsForDistance(2*g.HalfWidth) + 1
	if len(foot) != wantCols {
		t.Fatalf("len = %d, want %d", len(foot), wantCols)
	}

	// outer columns carry the shank tops, the envelope bottoms out at
	// the apex depth exactly
	if foot[0] != 65 || foot[len(foot)-1] != 65 {
		t.Errorf("outer columns = %v, %v, want 65, 65", foot[0], foot[len(foot)-1])
	}
	minY, minCol := foot[0], 0
	for i, y := range foot {
		if y < minY {
			minY, minCol = y, i
		}
	}
	if math.Abs(minY-(40-g.Radius)) > 1e-12 {
		t.Errorf("envelope floor = %v, want %v", minY, 40-g.Radius)
	}
	if center := (len(foot) - 1) / 2; minCol < center-1 || minCol > center+1 {
		t.Errorf("apex column = %d, want near %d", minCol, center)
	}
}

func TestFootprintGapFill(t *testing.T) {
	// two points three columns apart force interpolation between them
	g := afm.TipGeometry{
		Xtip: []float64{0, 0.3},
		Ytip: []float64{5, 2},
	}
	space := afm.NewSpace(afm.DefaultParams())

	foot := Footprint(g, space)
	want := []float64{5, 4, 3, 2}
	if len(foot) != len(want) {
		t.Fatalf("len = %d, want %d", len(foot), len(want))
	}
	for i := range want {
		if math.Abs(foot[i]-want[i]) > 1e-12 {
			t.Errorf("col %d = %v, want %v", i, foot[i], want[i])
		}
	}
}

func TestFootprintKeepsColumnMinimum(t *testing.T) {
	// several points in one column: the lowest wins
	g := afm.TipGeometry{
		Xtip: []float64{0, 0.01, 0.02, 0.1},
		Ytip: []float64{5, 3, 4, 7},
	}
	space := afm.NewSpace(afm.DefaultParams())

	foot := Footprint(g, space)
	if len(foot) != 2 {
		t.Fatalf("len = %d, want 2", len(foot))
	}
	if foot[0] != 3 || foot[1] != 7 {
		t.Errorf("foot = %v, want [3 7]", foot)
	}
}

func TestFootprintNeedle(t *testing.T) {
	b := newTestBuilder()
	g, err := b.Build(afm.TipShapeInput{Kind: afm.TipNormal, CenterX: 50, CenterY: 40})
	if err != nil {
		t.Fatal(err)
	}

	foot := Footprint(g, afm.NewSpace(afm.DefaultParams()))
	if len(foot) != 1 {
		t.Fatalf("len = %d, want 1", len(foot))
	}
	if foot[0] != 40 {
		t.Errorf("needle column = %v, want 40", foot[0])
	}
}
