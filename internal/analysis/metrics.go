package analysis

import "math"

// Metric accumulates one scalar over a stream of height samples.
type Metric interface {
	Name() string
	Observe(y float64)
	Value() float64
	Reset()
}

// Ra is the arithmetic mean roughness: mean absolute deviation from the
// mean line. Samples are retained because the mean line is not known
// until the scan ends.
type Ra struct {
	ys []float64
}

func NewRa() *Ra { return &Ra{} }

func (r *Ra) Name() string      { return "ra" }
func (r *Ra) Observe(y float64) { r.ys = append(r.ys, y) }

func (r *Ra) Value() float64 {
	if len(r.ys) == 0 {
		return 0
	}
	mean := 0.0
	for _, y := range r.ys {
		mean += y
	}
	mean /= float64(len(r.ys))

	dev := 0.0
	for _, y := range r.ys {
		dev += math.Abs(y - mean)
	}
	return dev / float64(len(r.ys))
}

func (r *Ra) Reset() { r.ys = r.ys[:0] }

// Rq is the root mean square roughness about the mean line, kept as
// running sums so nothing is retained.
type Rq struct {
	n     int
	sum   float64
	sumSq float64
}

func NewRq() *Rq { return &Rq{} }

func (r *Rq) Name() string { return "rq" }

func (r *Rq) Observe(y float64) {
	r.n++
	r.sum += y
	r.sumSq += y * y
}

func (r *Rq) Value() float64 {
	if r.n == 0 {
		return 0
	}
	mean := r.sum / float64(r.n)
	v := r.sumSq/float64(r.n) - mean*mean
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

func (r *Rq) Reset() {
	r.n = 0
	r.sum = 0
	r.sumSq = 0
}

// PeakValley tracks the total height range seen so far.
type PeakValley struct {
	n   int
	min float64
	max float64
}

func NewPeakValley() *PeakValley { return &PeakValley{} }

func (p *PeakValley) Name() string { return "peak-valley" }

func (p *PeakValley) Observe(y float64) {
	if p.n == 0 {
		p.min, p.max = y, y
	} else {
		p.min = math.Min(p.min, y)
		p.max = math.Max(p.max, y)
	}
	p.n++
}

func (p *PeakValley) Value() float64 {
	if p.n == 0 {
		return 0
	}
	return p.max - p.min
}

func (p *PeakValley) Reset() { p.n = 0 }

// DefaultMetrics returns the standard set collected on every run.
func DefaultMetrics() []Metric {
	return []Metric{NewRa(), NewRq(), NewPeakValley()}
}
