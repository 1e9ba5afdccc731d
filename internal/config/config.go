package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/afmlab/afmsim/internal/afm"
)

const (
	DefaultProfile = "square"
	DefaultKind    = "normal"
	DefaultRadius  = 0.5
	DefaultWidth   = 0.5
	DefaultSeed    = 1
)

type Config struct {
	Profile string     `yaml:"profile"`
	Tip     TipConfig  `yaml:"tip"`
	Seed    int64      `yaml:"seed"`
	Grid    GridConfig `yaml:"grid"`
}

type TipConfig struct {
	Kind         string  `yaml:"kind"`
	Radius       float64 `yaml:"radius"`
	Width        float64 `yaml:"width"`
	Contaminated bool    `yaml:"contaminated"`
}

type GridConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Step  float64 `yaml:"step"`
	Units int     `yaml:"units"`
}

func DefaultConfig() *Config {
	p := afm.DefaultParams()
	return &Config{
		Profile: DefaultProfile,
		Tip: TipConfig{
			Kind:   DefaultKind,
			Radius: DefaultRadius,
			Width:  DefaultWidth,
		},
		Seed: DefaultSeed,
		Grid: GridConfig{
			Start: p.AxisStart,
			End:   p.AxisEnd,
			Step:  p.AxisStep,
			Units: p.PatternUnits,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params returns the parameter block this configuration describes:
// the standard setup with the grid overridden where the file set it.
func (c *Config) Params() afm.Params {
	p := afm.DefaultParams()
	if c.Grid.Step > 0 && c.Grid.End > c.Grid.Start {
		p.AxisStart = c.Grid.Start
		p.AxisEnd = c.Grid.End
		p.AxisStep = c.Grid.Step
	}
	if c.Grid.Units > 0 {
		p.PatternUnits = c.Grid.Units
	}
	return p
}

// TipInput assembles the tip description, deriving the contamination
// noise pair from the configured seed.
func (c *Config) TipInput() (afm.TipShapeInput, error) {
	kind, err := afm.ParseTipKind(c.Tip.Kind)
	if err != nil {
		return afm.TipShapeInput{}, err
	}
	return afm.TipShapeInput{
		Kind:          kind,
		RadiusControl: c.Tip.Radius,
		WidthControl:  c.Tip.Width,
		Contaminated:  c.Tip.Contaminated,
		Noise:         afm.NoiseFromSeed(c.Seed),
	}, nil
}
