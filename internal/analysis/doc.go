// Package analysis provides roughness metrics, distortion measures and
// spectral tools for scan traces.
//
// The package covers three concerns:
//
//   - [Metric]: streaming scalars collected during a scan ([Ra], [Rq],
//     [PeakValley])
//   - [RMSError], [MaxError], [Broadening]: how far a measured trace
//     departs from its source surface
//   - [PowerSpectrum], [DominantWavelength]: periodicity checks on
//     traces and surfaces
//
// # Reading Distortion
//
// A blunt tip broadens raised features and clips narrow pits, so the
// trace is biased upward:
//
//	rms := analysis.RMSError(out.Result.Trace, out.Surface.YImaging)
//	grew := analysis.Broadening(out.Result.Trace, out.Surface.YImaging)
package analysis
