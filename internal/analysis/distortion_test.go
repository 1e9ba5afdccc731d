package analysis

import (
	"math"
	"testing"
)

func TestErrorsAgainstIdenticalSignals(t *testing.T) {
	source := []float64{0, 1, 2, 3, 2, 1}
	trace := append([]float64{0}, source...) // leading pad position

	if got := RMSError(trace, source); got != 0 {
		t.Errorf("RMSError = %v, want 0", got)
	}
	if got := MaxError(trace, source); got != 0 {
		t.Errorf("MaxError = %v, want 0", got)
	}
}

func TestErrorsAgainstOffsetTrace(t *testing.T) {
	source := []float64{1, 1, 1, 1}
	trace := []float64{0, 2, 2, 2, 2}

	if got := RMSError(trace, source); math.Abs(got-1) > 1e-12 {
		t.Errorf("RMSError = %v, want 1", got)
	}
	if got := MaxError(trace, source); got != 1 {
		t.Errorf("MaxError = %v, want 1", got)
	}
}

func TestBroadening(t *testing.T) {
	// plateau of 3 columns in the source, 5 in the trace
	source := []float64{0, 0, 10, 10, 10, 0, 0, 0}
	trace := []float64{0, 0, 10, 10, 10, 10, 10, 0, 0}

	if got := Broadening(trace, source); got != 2 {
		t.Errorf("Broadening = %v, want 2", got)
	}
}

func TestErrorsEmpty(t *testing.T) {
	if got := RMSError(nil, nil); got != 0 {
		t.Errorf("RMSError(nil) = %v, want 0", got)
	}
	if got := MaxError([]float64{1}, nil); got != 0 {
		t.Errorf("MaxError with empty source = %v, want 0", got)
	}
	if got := Broadening(nil, []float64{1, 2}); got != 0 {
		t.Errorf("Broadening(nil) = %v, want 0", got)
	}
}
