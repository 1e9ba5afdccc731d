package scan

import (
	"context"
	"fmt"

	"github.com/afmlab/afmsim/internal/afm"
	"github.com/afmlab/afmsim/internal/analysis"
	"github.com/afmlab/afmsim/internal/surface"
	"github.com/afmlab/afmsim/internal/tip"
)

// RunSpec names everything one scan needs: a surface profile and the
// tip that images it.
type RunSpec struct {
	Profile afm.Profile
	Tip     afm.TipShapeInput
}

// Output collects everything a finished run produced.
type Output struct {
	Spec      RunSpec
	Surface   afm.SurfaceData
	Tip       afm.TipGeometry
	Footprint []float64
	Result    Result
	Metrics   map[string]float64
}

// Session wires a generator, a tip builder and a metric set over one
// parameter block, and runs complete scans.
type Session struct {
	p       afm.Params
	space   afm.Space
	gen     *surface.Generator
	builder *tip.Builder
	metrics []analysis.Metric
}

func NewSession(p afm.Params) *Session {
	space := afm.NewSpace(p)
	return &Session{
		p:       p,
		space:   space,
		gen:     surface.NewGenerator(p, space),
		builder: tip.NewBuilder(p, space),
		metrics: make([]analysis.Metric, 0),
	}
}

func (s *Session) AddMetric(m analysis.Metric) { s.metrics = append(s.metrics, m) }

func (s *Session) Params() afm.Params { return s.p }
func (s *Session) Space() afm.Space   { return s.space }

// Run generates the surface, builds the tip and scans one across the
// other. Tip centers left at the origin are placed at the configured
// build position. The context is consulted between stages; a canceled
// run returns ErrScanCanceled with nothing else.
func (s *Session) Run(ctx context.Context, spec RunSpec) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", afm.ErrScanCanceled, err)
	}

	surf, err := s.gen.Generate(spec.Profile)
	if err != nil {
		return nil, err
	}

	in := spec.Tip
	if in.CenterX == 0 && in.CenterY == 0 {
		in.CenterX, in.CenterY = s.p.TipCenterX, s.p.TipCenterY
	}
	geom, err := s.builder.Build(in)
	if err != nil {
		return nil, err
	}
	foot := tip.Footprint(geom, s.space)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", afm.ErrScanCanceled, err)
	}

	res, err := SurfaceResponse(s.space, foot, surf.YImaging, in.CenterY, geom.ApexDist)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	for _, y := range res.Trace {
		for _, m := range s.metrics {
			m.Observe(y)
		}
	}
	collected := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		collected[m.Name()] = m.Value()
	}

	return &Output{
		Spec:      RunSpec{Profile: spec.Profile, Tip: in},
		Surface:   surf,
		Tip:       geom,
		Footprint: foot,
		Result:    res,
		Metrics:   collected,
	}, nil
}
