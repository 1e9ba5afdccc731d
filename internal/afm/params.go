package afm

// Params holds the physical and grid constants of a simulation setup.
// All lengths are nanometers.
type Params struct {
	AxisStart float64
	AxisEnd   float64
	AxisStep  float64

	PatternUnits   int
	SurfaceHeight  float64
	BaselineOffset float64

	RadiusBase   float64
	MaxTipRadius float64
	MaxHalfWidth float64
	TipTopHeight float64
	TipCenterX   float64
	TipCenterY   float64

	PresetControl      float64
	VerticalRampPoints int
	QuarticSpan        float64
	QuarticAmp         float64

	MinFrameRate int
	MaxFrameRate int
}

// DefaultParams returns the standard demo setup: a 100 nm scan line at
// 0.1 nm resolution with five pattern repetitions.
func DefaultParams() Params {
	return Params{
		AxisStart:          0,
		AxisEnd:            100,
		AxisStep:           0.1,
		PatternUnits:       5,
		SurfaceHeight:      10,
		BaselineOffset:     1,
		RadiusBase:         50,
		MaxTipRadius:       10,
		MaxHalfWidth:       20,
		TipTopHeight:       25,
		TipCenterX:         50,
		TipCenterY:         40,
		PresetControl:      0.5,
		VerticalRampPoints: 20,
		QuarticSpan:        0.25,
		QuarticAmp:         16,
		MinFrameRate:       5,
		MaxFrameRate:       60,
	}
}

// UnitWidth returns the lateral width of one pattern repetition.
func (p Params) UnitWidth() float64 {
	return (p.AxisEnd - p.AxisStart) / float64(p.PatternUnits)
}
