package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumLength(t *testing.T) {
	data := make([]float64, 1000)
	ps := PowerSpectrum(data)
	if len(ps) != 500 {
		t.Errorf("len = %d, want 500", len(ps))
	}
	if PowerSpectrum(nil) != nil {
		t.Error("PowerSpectrum(nil) should be nil")
	}
}

func TestDominantWavelengthSine(t *testing.T) {
	// five full periods over 1000 samples at 0.1 pitch
	data := make([]float64, 1000)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 5 * float64(i) / 1000)
	}

	got := DominantWavelength(data, 0.1)
	if math.Abs(got-20) > 0.5 {
		t.Errorf("DominantWavelength = %v, want 20", got)
	}
}

func TestDominantWavelengthFlat(t *testing.T) {
	data := make([]float64, 256)
	if got := DominantWavelength(data, 0.1); got != 0 {
		t.Errorf("flat signal wavelength = %v, want 0", got)
	}
}
