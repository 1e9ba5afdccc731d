package analysis

import (
	"math"
	"testing"
)

func TestRa(t *testing.T) {
	r := NewRa()
	for _, y := range []float64{0, 10, 0, 10} {
		r.Observe(y)
	}
	// mean line at 5, every sample 5 away
	if got := r.Value(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Ra = %v, want 5", got)
	}

	r.Reset()
	if got := r.Value(); got != 0 {
		t.Errorf("Ra after reset = %v, want 0", got)
	}
}

func TestRq(t *testing.T) {
	r := NewRq()
	for _, y := range []float64{0, 10, 0, 10} {
		r.Observe(y)
	}
	if got := r.Value(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Rq = %v, want 5", got)
	}

	r.Reset()
	r.Observe(3)
	// a single sample has no spread
	if got := r.Value(); got != 0 {
		t.Errorf("Rq of one sample = %v, want 0", got)
	}
}

func TestPeakValley(t *testing.T) {
	p := NewPeakValley()
	if got := p.Value(); got != 0 {
		t.Errorf("empty PeakValley = %v, want 0", got)
	}

	for _, y := range []float64{2, -3, 7, 0} {
		p.Observe(y)
	}
	if got := p.Value(); got != 10 {
		t.Errorf("PeakValley = %v, want 10", got)
	}

	p.Reset()
	p.Observe(-1)
	if got := p.Value(); got != 0 {
		t.Errorf("PeakValley after reset+one = %v, want 0", got)
	}
}

func TestDefaultMetrics(t *testing.T) {
	ms := DefaultMetrics()
	if len(ms) != 3 {
		t.Fatalf("len = %d, want 3", len(ms))
	}
	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"ra", "rq", "peak-valley"} {
		if !names[want] {
			t.Errorf("missing metric %q", want)
		}
	}
}
