package scan

import (
	"context"
	"sync"

	"github.com/afmlab/afmsim/internal/afm"
	"github.com/afmlab/afmsim/internal/analysis"
)

// Ensemble scans one spec repeatedly under consecutive contamination
// seeds, one goroutine per run. Useful for putting a spread on metrics
// when the tip state is uncertain.
type Ensemble struct {
	base      *Session
	numRuns   int
	seedStart int64
}

func NewEnsemble(s *Session, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart}
}

// Run executes the spec once per seed. Each goroutine gets its own
// Session and metric set, so runs never share mutable state. The first
// error wins; outputs come back in seed order.
func (e *Ensemble) Run(ctx context.Context, spec RunSpec) ([]*Output, error) {
	outputs := make([]*Output, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			specCopy := spec
			specCopy.Tip.Contaminated = true
			specCopy.Tip.Noise = afm.NoiseFromSeed(e.seedStart + int64(idx))

			s := NewSession(e.base.p)
			for _, m := range analysis.DefaultMetrics() {
				s.AddMetric(m)
			}

			outputs[idx], errs[idx] = s.Run(ctx, specCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return outputs, nil
}
