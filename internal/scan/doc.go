// Package scan runs the hard-contact imaging model and orchestrates
// complete simulation runs.
//
// The engine slides a tip footprint across a zero-padded surface; at
// every lateral stop the tip descends until first touch, the minimum
// over the overlap of tip height minus surface height, and the apex
// height at that stop becomes one trace sample. The same footprint run in reverse
// recovers a surface estimate from a trace ([Reconstruct]).
//
//   - [SurfaceResponse]: footprint + surface columns to a [Result]
//   - [Reconstruct]: trace back to the tightest surface bound
//   - [Session]: profile + tip input to a full [Output] with metrics
//   - [Ensemble]: one spec scanned under many contamination seeds
//
// # Thread Safety
//
// SurfaceResponse and Reconstruct are pure functions. A Session is not
// safe for concurrent Run calls because metrics accumulate in place;
// Ensemble builds one Session per goroutine instead.
package scan
