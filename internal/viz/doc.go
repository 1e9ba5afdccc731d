// Package viz renders scans in the terminal.
//
// The interactive viewer is built on the Bubble Tea framework:
//
//   - [Model]: sweep viewer replaying a scan left to right
//   - [Canvas]: Braille-based pixel canvas with a world-coordinate viewport
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Space  - Pause/Resume the sweep
//	R      - Restart the sweep
//	Tab    - Cycle surface profiles (rescans)
//	K      - Cycle tip kinds (rescans)
//	C      - Toggle tip contamination (rescans)
//	Arrows - Adjust radius/width controls (rescans)
//	+/-    - Sweep speed
//	T      - Cycle color themes
//	G      - Toggle GIF recording
//	?      - Show help overlay
//
// # Recording
//
// Pressing G starts capturing sweep frames; pressing it again writes
// them to scan.gif in the current directory.
package viz
