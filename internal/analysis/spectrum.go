package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of data. The
// transform handles arbitrary lengths, so traces need no padding.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(data)
	bins := len(coeffs) / 2
	if bins == 0 {
		bins = 1
	}
	ps := make([]float64, bins)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantWavelength returns the wavelength, in axis units, of the
// strongest nonzero-frequency component of data sampled at pitch step.
// Zero means the signal had no periodic content to speak of.
func DominantWavelength(data []float64, step float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] == 0 {
		return 0
	}
	return float64(len(data)) * step / float64(best)
}
