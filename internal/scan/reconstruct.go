package scan

import "math"

// Reconstruct estimates the surface that produced a trace by eroding
// the trace with the footprint that scanned it. Every trace sample caps
// the surface under each footprint column; each surface column takes
// the tightest cap any position puts on it.
//
// The estimate never dips below the true surface and matches it exactly
// wherever the apex made contact. Columns only the tip flank ever
// reached stay overestimated, which is the information the scan lost.
func Reconstruct(footprint, trace []float64, centerY, apexDist float64) []float64 {
	n := len(footprint)
	if n == 0 || len(trace) == 0 {
		return nil
	}

	// footprint relative to the apex reference the trace is offset by
	rel := make([]float64, n)
	for c := range footprint {
		rel[c] = footprint[c] - (centerY - apexDist)
	}

	left := (n + 1) / 2
	cols := len(trace) - 1
	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		bound := math.Inf(1)
		q := j + left
		for c := 0; c < n; c++ {
			pos := q - c
			if pos < 0 || pos >= len(trace) {
				continue
			}
			if v := trace[pos] + rel[c]; v < bound {
				bound = v
			}
		}
		out[j] = bound
	}
	return out
}
