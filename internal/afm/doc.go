// Package afm provides the core types and spatial grid for simulated
// atomic force microscope imaging.
//
// The package defines the shared vocabulary of the simulator:
//
//   - [Params]: physical and grid constants for a simulation setup
//   - [Space]: the discretized lateral axis all surfaces and tips share
//   - [SurfaceData]: a generated surface in display and imaging form
//   - [TipShapeInput]: slider-level description of a probe tip
//   - [TipGeometry]: a built tip outline with its apex metrics
//
// # Example
//
//	p := afm.DefaultParams()
//	space := afm.NewSpace(p)
//	gen := surface.NewGenerator(p, space)
//	data, _ := gen.Generate(afm.ProfileSquare)
//
// # Thread Safety
//
// Values in this package are plain data and are never mutated after
// construction. Concurrent scans over shared surface and tip inputs are
// safe; orchestration lives in the scan package.
package afm
