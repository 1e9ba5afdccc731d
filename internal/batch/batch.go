package batch

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/afmlab/afmsim/internal/afm"
	"github.com/afmlab/afmsim/internal/analysis"
	"github.com/afmlab/afmsim/internal/config"
	"github.com/afmlab/afmsim/internal/scan"
	"github.com/afmlab/afmsim/internal/store"
	"github.com/afmlab/afmsim/internal/surface"
)

// Scenario defines a scripted scan sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single scan in a scenario. A step either names a
// preset or spells out the tip directly.
type ScenarioStep struct {
	Profile      string  `yaml:"profile"`
	Preset       string  `yaml:"preset"`
	Tip          string  `yaml:"tip"`
	Radius       float64 `yaml:"radius"`
	Width        float64 `yaml:"width"`
	Contaminated bool    `yaml:"contaminated"`
	Seed         int64   `yaml:"seed"`
	SaveAs       string  `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) spec() (scan.RunSpec, error) {
	if s.Preset != "" {
		cfg := config.GetPreset(s.Profile, s.Preset)
		if cfg == nil {
			return scan.RunSpec{}, fmt.Errorf("unknown preset %q for profile %q", s.Preset, s.Profile)
		}
		profile, err := surface.Parse(cfg.Profile)
		if err != nil {
			return scan.RunSpec{}, err
		}
		in, err := cfg.TipInput()
		if err != nil {
			return scan.RunSpec{}, err
		}
		return scan.RunSpec{Profile: profile, Tip: in}, nil
	}

	profile, err := surface.Parse(s.Profile)
	if err != nil {
		return scan.RunSpec{}, err
	}
	kind, err := afm.ParseTipKind(s.Tip)
	if err != nil {
		return scan.RunSpec{}, err
	}

	seed := s.Seed
	if seed == 0 {
		seed = 1
	}
	return scan.RunSpec{
		Profile: profile,
		Tip: afm.TipShapeInput{
			Kind:          kind,
			RadiusControl: s.Radius,
			WidthControl:  s.Width,
			Contaminated:  s.Contaminated,
			Noise:         afm.NoiseFromSeed(seed),
		},
	}, nil
}

// RunScenario executes all steps in a scenario. When st is non-nil,
// steps with a save_as name are persisted under it.
func RunScenario(ctx context.Context, scenario *Scenario, session *scan.Session, st *store.Store) ([]*scan.Output, error) {
	outputs := make([]*scan.Output, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Profile)

		spec, err := step.spec()
		if err != nil {
			return outputs, fmt.Errorf("step %d: %w", i+1, err)
		}

		out, err := session.Run(ctx, spec)
		if err != nil {
			return outputs, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if st != nil && step.SaveAs != "" {
			if _, err := st.SaveAs(step.SaveAs, out); err != nil {
				return outputs, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		outputs = append(outputs, out)
	}

	return outputs, nil
}

// Sweep scans one profile repeatedly while stepping a tip control
// across a range. Param selects the swept control, "radius" or
// "width"; the other control keeps its fixed value.
type Sweep struct {
	Profile string
	Tip     string
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Radius  float64
	Width   float64
}

// SweepPoint holds the outcome of one sweep step
type SweepPoint struct {
	Control   float64
	Radius    float64
	HalfWidth float64
	RMS       float64
	Metrics   map[string]float64
}

// RunSweep executes a tip-control sweep
func RunSweep(ctx context.Context, session *scan.Session, sweep *Sweep) ([]SweepPoint, error) {
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.Steps)
	}

	profile, err := surface.Parse(sweep.Profile)
	if err != nil {
		return nil, err
	}
	kind, err := afm.ParseTipKind(sweep.Tip)
	if err != nil {
		return nil, err
	}

	paramStep := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	results := make([]SweepPoint, 0, sweep.Steps)

	for i := 0; i < sweep.Steps; i++ {
		val := sweep.Min + float64(i)*paramStep

		in := afm.TipShapeInput{
			Kind:          kind,
			RadiusControl: sweep.Radius,
			WidthControl:  sweep.Width,
		}
		switch sweep.Param {
		case "radius":
			in.RadiusControl = val
		case "width":
			in.WidthControl = val
		default:
			return nil, fmt.Errorf("unknown sweep param %q", sweep.Param)
		}

		out, err := session.Run(ctx, scan.RunSpec{Profile: profile, Tip: in})
		if err != nil {
			return results, err
		}

		results = append(results, SweepPoint{
			Control:   val,
			Radius:    out.Tip.Radius,
			HalfWidth: out.Tip.HalfWidth,
			RMS:       analysis.RMSError(out.Result.Trace, out.Surface.YImaging),
			Metrics:   out.Metrics,
		})

		fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, sweep.Steps, sweep.Param, val)
	}

	return results, nil
}

// TrialSet defines repeated contaminated scans of one setup under
// consecutive noise seeds.
type TrialSet struct {
	Profile string
	Tip     string
	Radius  float64
	Width   float64
	Trials  int
	Seed    int64
}

// TrialResult holds one contamination trial
type TrialResult struct {
	Seed    int64
	RMS     float64
	Metrics map[string]float64
}

// RunTrials executes the trial set concurrently and reports the image
// distortion of each run.
func RunTrials(ctx context.Context, session *scan.Session, set *TrialSet) ([]TrialResult, error) {
	profile, err := surface.Parse(set.Profile)
	if err != nil {
		return nil, err
	}
	kind, err := afm.ParseTipKind(set.Tip)
	if err != nil {
		return nil, err
	}

	spec := scan.RunSpec{
		Profile: profile,
		Tip: afm.TipShapeInput{
			Kind:          kind,
			RadiusControl: set.Radius,
			WidthControl:  set.Width,
		},
	}

	ens := scan.NewEnsemble(session, set.Trials, set.Seed)
	outputs, err := ens.Run(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := make([]TrialResult, len(outputs))
	for i, out := range outputs {
		results[i] = TrialResult{
			Seed:    set.Seed + int64(i),
			RMS:     analysis.RMSError(out.Result.Trace, out.Surface.YImaging),
			Metrics: out.Metrics,
		}
	}

	return results, nil
}

// TrialStats summarizes the distortion spread across trials
func TrialStats(results []TrialResult) (meanRMS, maxRMS float64) {
	if len(results) == 0 {
		return 0, 0
	}
	for _, r := range results {
		meanRMS += r.RMS
		if r.RMS > maxRMS {
			maxRMS = r.RMS
		}
	}
	meanRMS /= float64(len(results))
	return meanRMS, maxRMS
}
