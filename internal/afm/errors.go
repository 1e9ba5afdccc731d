package afm

import "errors"

// Domain errors for simulation operations.
var (
	// ErrControlRange indicates a tip control value outside [0,1].
	ErrControlRange = errors.New("afm: control value outside [0,1]")

	// ErrUnknownProfile indicates a surface profile name with no generator.
	ErrUnknownProfile = errors.New("afm: unknown surface profile")

	// ErrUnknownTipKind indicates an unrecognized tip kind name.
	ErrUnknownTipKind = errors.New("afm: unknown tip kind")

	// ErrScanCanceled indicates a scan was interrupted by its context.
	ErrScanCanceled = errors.New("afm: scan canceled by context")
)
