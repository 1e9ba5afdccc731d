package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/afmlab/afmsim/internal/afm"
)

func newTestGenerator() (*Generator, afm.Space) {
	p := afm.DefaultParams()
	space := afm.NewSpace(p)
	return NewGenerator(p, space), space
}

// sampleAt returns the generated ordinate at lateral position x,
// accounting for the duplicated display endpoint at index 0.
func sampleAt(data afm.SurfaceData, space afm.Space, x float64) float64 {
	return data.Y[space.NearestIndex(x)+1]
}

func TestGenerateShapes(t *testing.T) {
	g, space := newTestGenerator()
	wantLen := space.Len() + 2

	for _, profile := range afm.Profiles() {
		t.Run(string(profile), func(t *testing.T) {
			data, err := g.Generate(profile)
			if err != nil {
				t.Fatalf("Generate(%v) error: %v", profile, err)
			}
			if len(data.X) != wantLen || len(data.Y) != wantLen || len(data.YImaging) != wantLen {
				t.Fatalf("lengths = %d/%d/%d, want %d",
					len(data.X), len(data.Y), len(data.YImaging), wantLen)
			}
			if data.Y[0] != 0 || data.Y[wantLen-1] != 0 {
				t.Errorf("display endpoints = %v, %v, want 0, 0", data.Y[0], data.Y[wantLen-1])
			}
			if data.X[0] != data.X[1] || data.X[wantLen-1] != data.X[wantLen-2] {
				t.Error("display endpoints should duplicate the first and last abscissa")
			}
			for i, y := range data.Y {
				if y < 0 {
					t.Fatalf("negative ordinate %v at %d", y, i)
				}
			}
		})
	}
}

func TestGenerateUnknownProfile(t *testing.T) {
	g, _ := newTestGenerator()
	_, err := g.Generate(afm.Profile("hexagon"))
	if !errors.Is(err, afm.ErrUnknownProfile) {
		t.Errorf("err = %v, want ErrUnknownProfile", err)
	}
}

func TestSquareProfile(t *testing.T) {
	g, space := newTestGenerator()
	data, err := g.Generate(afm.ProfileSquare)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{2, 10},
		{9.9, 10},
		{12, 0},
		{19.9, 0},
		{22, 10},
	}
	for _, tt := range tests {
		if got := sampleAt(data, space, tt.x); got != tt.want {
			t.Errorf("square at x=%v: got %v, want %v", tt.x, got, tt.want)
		}
	}

	// one full period apart, interior samples must agree
	for _, x := range []float64{1, 5.5, 13, 17.7} {
		if sampleAt(data, space, x) != sampleAt(data, space, x+20) {
			t.Errorf("square not periodic at x=%v", x)
		}
	}
}

func TestRectangleProfile(t *testing.T) {
	g, space := newTestGenerator()
	data, err := g.Generate(afm.ProfileRectangle)
	if err != nil {
		t.Fatal(err)
	}

	// plateau occupies the first quarter of each unit
	if got := sampleAt(data, space, 2); got != 10 {
		t.Errorf("inside plateau: got %v, want 10", got)
	}
	if got := sampleAt(data, space, 7); got != 0 {
		t.Errorf("past plateau: got %v, want 0", got)
	}
	if got := sampleAt(data, space, 24); got != 10 {
		t.Errorf("second unit plateau: got %v, want 10", got)
	}
}

func TestTriangleProfile(t *testing.T) {
	g, space := newTestGenerator()
	data, err := g.Generate(afm.ProfileTriangle)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0},
		{5, 5},
		{10, 10},
		{15, 5},
		{30, 10},
	}
	for _, tt := range tests {
		if got := sampleAt(data, space, tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("triangle at x=%v: got %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestSineProfile(t *testing.T) {
	g, space := newTestGenerator()
	data, err := g.Generate(afm.ProfileSine)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{5, 6},
		{10, 11},
		{20, 1},
	}
	for _, tt := range tests {
		if got := sampleAt(data, space, tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("sine at x=%v: got %v, want %v", tt.x, got, tt.want)
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range data.Y[1 : len(data.Y)-1] {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if math.Abs(lo-1) > 1e-9 || math.Abs(hi-11) > 1e-9 {
		t.Errorf("sine range = [%v, %v], want [1, 11]", lo, hi)
	}
}

func TestSemicircleProfile(t *testing.T) {
	g, space := newTestGenerator()
	data, err := g.Generate(afm.ProfileSemicircle)
	if err != nil {
		t.Fatal(err)
	}

	// cusps between pits at R+offset, pit bottoms at the offset
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 11},
		{10, 1},
		{5, 11 - math.Sqrt(75)},
		{20, 11},
		{30, 1},
	}
	for _, tt := range tests {
		if got := sampleAt(data, space, tt.x); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("semicircle at x=%v: got %v, want %v", tt.x, got, tt.want)
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range data.Y[1 : len(data.Y)-1] {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if math.Abs(lo-1) > 1e-6 || math.Abs(hi-11) > 1e-6 {
		t.Errorf("semicircle range = [%v, %v], want [1, 11]", lo, hi)
	}
}

func TestRandomProfile(t *testing.T) {
	g, space := newTestGenerator()
	data, err := g.Generate(afm.ProfileRandom)
	if err != nil {
		t.Fatal(err)
	}

	// fixed table, deterministic between runs
	again, err := g.Generate(afm.ProfileRandom)
	if err != nil {
		t.Fatal(err)
	}
	for i := range data.Y {
		if data.Y[i] != again.Y[i] {
			t.Fatalf("random profile not deterministic at %d", i)
		}
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{5, 6},
		{15, 3},
		{45, 10},
		{55, 10}, // break apex
		{65, 4},
		{95, 7},
	}
	for _, tt := range tests {
		if got := sampleAt(data, space, tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("random at x=%v: got %v, want %v", tt.x, got, tt.want)
		}
	}

	// the break slot ramps rather than sits flat
	if sampleAt(data, space, 52) == sampleAt(data, space, 55) {
		t.Error("break segment looks flat, want a triangular ramp")
	}
}

func TestFitToAxis(t *testing.T) {
	g, space := newTestGenerator()
	n := space.Len()

	t.Run("oversized pattern loses its edges", func(t *testing.T) {
		pat := make([]float64, n+4)
		for i := range pat {
			pat[i] = float64(i)
		}
		got := g.fitToAxis(pat)
		if len(got) != n {
			t.Fatalf("len = %d, want %d", len(got), n)
		}
		if got[0] != pat[2] || got[n-1] != pat[n+1] {
			t.Errorf("ends = %v, %v, want %v, %v", got[0], got[n-1], pat[2], pat[n+1])
		}
	})

	t.Run("undersized pattern is zero padded", func(t *testing.T) {
		pat := make([]float64, n-6)
		for i := range pat {
			pat[i] = 1 + float64(i)
		}
		got := g.fitToAxis(pat)
		if len(got) != n {
			t.Fatalf("len = %d, want %d", len(got), n)
		}
		if got[0] != 0 || got[2] != 0 || got[n-1] != 0 || got[n-3] != 0 {
			t.Error("padding should be zero at both ends")
		}
		if got[3] != pat[0] || got[n-4] != pat[len(pat)-1] {
			t.Errorf("pattern not centered: got[3]=%v, got[%d]=%v", got[3], n-4, got[n-4])
		}
	})
}

func TestImagingIndependentOfDisplay(t *testing.T) {
	g, _ := newTestGenerator()
	data, err := g.Generate(afm.ProfileSine)
	if err != nil {
		t.Fatal(err)
	}

	before := data.YImaging[100]
	data.Y[100] = -1234
	if data.YImaging[100] != before {
		t.Error("display and imaging arrays share backing storage")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    afm.Profile
		wantErr bool
	}{
		{"square", afm.ProfileSquare, false},
		{"SQUARE", afm.ProfileSquare, false},
		{" sine ", afm.ProfileSine, false},
		{"inverted-triangle", afm.ProfileInvTriangle, false},
		{"inverted", afm.ProfileInvTriangle, false},
		{"blob", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.name)
		if tt.wantErr {
			if !errors.Is(err, afm.ErrUnknownProfile) {
				t.Errorf("Parse(%q) err = %v, want ErrUnknownProfile", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
