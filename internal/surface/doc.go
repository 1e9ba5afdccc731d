// Package surface generates the one-dimensional sample topographies a
// simulated tip is scanned across.
//
// Profiles are registered by name in [NewGenerator]; most are closed
// form functions of the lateral coordinate tiled once per pattern unit,
// while the inverted triangle is assembled from line segments and
// reduced onto the grid. Every generated surface carries both a display
// polygon (zero-closed at the ends) and the imaging columns the scan
// engine consumes.
package surface
