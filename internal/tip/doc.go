// Package tip builds probe tip outlines from slider-level inputs.
//
// A tip is a closed-form apex section (rounded arc, sheared slant, or
// double-dip quartic) joined to two straight shank sides. The builder
// maps the two control sliders to physical radius and half width,
// optionally perturbs the sides with the contamination model, and
// reports the apex drop the scan engine offsets measurements by.
//
//   - [Builder.Build]: slider input to [afm.TipGeometry]
//   - [Footprint]: outline to per-column lower envelope for scanning
//
// Outlines run left to right: down one shank side, through the apex
// section, and up the other side.
package tip
