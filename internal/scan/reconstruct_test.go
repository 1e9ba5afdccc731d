package scan

import (
	"context"
	"math"
	"testing"

	"github.com/afmlab/afmsim/internal/afm"
)

func TestReconstructNeedleIdentity(t *testing.T) {
	space := testSpace()
	imaging := []float64{0, 1, 4, 2, 0, 3, 0}

	res, err := SurfaceResponse(space, []float64{40}, imaging, 40, 0)
	if err != nil {
		t.Fatal(err)
	}

	recon := Reconstruct([]float64{40}, res.Trace, 40, 0)
	if len(recon) != len(imaging) {
		t.Fatalf("len = %d, want %d", len(recon), len(imaging))
	}
	for j, want := range imaging {
		if math.Abs(recon[j]-want) > 1e-12 {
			t.Errorf("recon[%d] = %v, want %v", j, recon[j], want)
		}
	}
}

func TestReconstructFlat(t *testing.T) {
	space := testSpace()
	foot, g := presetFootprint(t, afm.TipNormal)
	imaging := make([]float64, 250)

	res, err := SurfaceResponse(space, foot, imaging, 40, g.ApexDist)
	if err != nil {
		t.Fatal(err)
	}

	recon := Reconstruct(foot, res.Trace, 40, g.ApexDist)
	for j, y := range recon {
		if math.Abs(y) > 1e-9 {
			t.Fatalf("recon[%d] = %v on flat ground, want 0", j, y)
		}
	}
}

func TestReconstructBoundsSurface(t *testing.T) {
	sess := NewSession(afm.DefaultParams())
	out, err := sess.Run(context.Background(), RunSpec{
		Profile: afm.ProfileSquare,
		Tip:     afm.TipShapeInput{Kind: afm.TipNormal, RadiusControl: 0.5, WidthControl: 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}

	recon := Reconstruct(out.Footprint, out.Result.Trace, out.Spec.Tip.CenterY, out.Tip.ApexDist)
	src := out.Surface.YImaging
	if len(recon) != len(src) {
		t.Fatalf("len = %d, want %d", len(recon), len(src))
	}

	// erosion never digs below the true surface
	for j := range src {
		if recon[j] < src[j]-1e-9 {
			t.Fatalf("recon[%d] = %v below surface %v", j, recon[j], src[j])
		}
	}

	// where the apex made contact the estimate is exact: plateau
	// centers at x = 5+20k sit at imaging column 51+200k
	for _, col := range []int{51, 251, 451, 651, 851} {
		if math.Abs(recon[col]-src[col]) > 1e-9 {
			t.Errorf("plateau col %d: recon %v, surface %v", col, recon[col], src[col])
		}
	}
}

func TestReconstructEmpty(t *testing.T) {
	if got := Reconstruct(nil, []float64{1}, 40, 0); got != nil {
		t.Errorf("Reconstruct with empty footprint = %v, want nil", got)
	}
	if got := Reconstruct([]float64{40}, nil, 40, 0); got != nil {
		t.Errorf("Reconstruct with empty trace = %v, want nil", got)
	}
}
