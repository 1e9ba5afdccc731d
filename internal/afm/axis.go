package afm

import "math"

// NewAxis returns the arithmetic progression start, start+step, ..., end.
// The sample count is round((end-start)/step)+1, so for commensurate
// inputs the endpoint lands exactly on the last sample.
func NewAxis(start, end, step float64) []float64 {
	n := int(math.Round((end-start)/step)) + 1
	x := make([]float64, n)
	for i := range x {
		x[i] = start + float64(i)*step
	}
	return x
}

// Space is the discretized lateral axis that surfaces, tips and scans
// share. Index arithmetic is done against Start and Step rather than by
// searching X, so lookups stay O(1).
type Space struct {
	Start float64
	End   float64
	Step  float64
	X     []float64
}

func NewSpace(p Params) Space {
	return Space{
		Start: p.AxisStart,
		End:   p.AxisEnd,
		Step:  p.AxisStep,
		X:     NewAxis(p.AxisStart, p.AxisEnd, p.AxisStep),
	}
}

func (s Space) Len() int { return len(s.X) }

// NearestIndex returns the index of the sample closest to x, clamped to
// the axis range.
func (s Space) NearestIndex(x float64) int {
	i := int(math.Round((x - s.Start) / s.Step))
	if i < 0 {
		return 0
	}
	if i >= len(s.X) {
		return len(s.X) - 1
	}
	return i
}

// FirstAbove returns the index of the first sample strictly greater
// than x. The boolean is false when every sample is at or below x.
func (s Space) FirstAbove(x float64) (int, bool) {
	i := int(math.Floor((x-s.Start)/s.Step)) + 1
	if i < 0 {
		i = 0
	}
	for i < len(s.X) && s.X[i] <= x {
		i++
	}
	if i >= len(s.X) {
		return 0, false
	}
	return i, true
}

// StepsForDistance returns the number of whole axis steps that span the
// lateral distance d.
func (s Space) StepsForDistance(d float64) int {
	return int(math.Round(d / s.Step))
}
