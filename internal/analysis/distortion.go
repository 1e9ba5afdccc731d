package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// alignTrace trims the scan trace to the columns that overlap the
// source surface. The trace carries one extra leading position where
// the apex still hangs over the left padding.
func alignTrace(trace, source []float64) ([]float64, []float64) {
	if len(trace) == 0 {
		return nil, nil
	}
	n := len(trace) - 1
	if n > len(source) {
		n = len(source)
	}
	if n < 0 {
		n = 0
	}
	return trace[1 : 1+n], source[:n]
}

// RMSError returns the root mean square difference between the measured
// trace and the source surface over their overlapping columns.
func RMSError(trace, source []float64) float64 {
	t, s := alignTrace(trace, source)
	if len(t) == 0 {
		return 0
	}
	return floats.Distance(t, s, 2) / math.Sqrt(float64(len(t)))
}

// MaxError returns the largest absolute trace-to-source difference.
func MaxError(trace, source []float64) float64 {
	t, s := alignTrace(trace, source)
	worst := 0.0
	for i := range t {
		worst = math.Max(worst, math.Abs(t[i]-s[i]))
	}
	return worst
}

// Broadening counts how many more columns sit above half height in the
// trace than in the source. Positive values mean raised features grew
// laterally under the tip, the usual dilation artifact.
func Broadening(trace, source []float64) int {
	t, s := alignTrace(trace, source)
	if len(t) == 0 {
		return 0
	}
	return aboveHalf(t) - aboveHalf(s)
}

func aboveHalf(ys []float64) int {
	half := (floats.Min(ys) + floats.Max(ys)) / 2
	n := 0
	for _, y := range ys {
		if y > half {
			n++
		}
	}
	return n
}
