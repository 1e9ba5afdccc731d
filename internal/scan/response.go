package scan

import (
	"fmt"
	"math"

	"github.com/afmlab/afmsim/internal/afm"
)

// Result is the measured image from one scan pass. All three slices
// share indexing by scan position; there is one more position than
// there are surface columns because the pass starts with the apex over
// the left padding.
type Result struct {
	// Apex is the tip centerline height at each stop.
	Apex []float64
	// Trace is the rendered measurement: apex height minus the apex
	// drop, so flat ground reads as zero.
	Trace []float64
	// X is the lateral apex position at each stop.
	X []float64
}

// SurfaceResponse scans a tip footprint across the imaging columns.
// The surface is zero-padded by half the footprint on each side; at
// every position the clearance is the minimum of footprint height minus
// padded surface height over the overlap, and lowering the tip by that
// clearance gives the contact measurement.
//
// The function is pure: it reads its inputs and allocates the result.
func SurfaceResponse(space afm.Space, footprint, imaging []float64, centerY, apexDist float64) (Result, error) {
	n := len(footprint)
	if n == 0 {
		return Result{}, fmt.Errorf("scan: empty tip footprint")
	}
	if len(imaging) == 0 {
		return Result{}, fmt.Errorf("scan: empty surface")
	}

	left := (n + 1) / 2
	right := n - left
	padded := make([]float64, left+len(imaging)+right)
	copy(padded[left:], imaging)

	positions := len(padded) - n + 1
	apexCol := 0
	for c := 1; c < n; c++ {
		if footprint[c] < footprint[apexCol] {
			apexCol = c
		}
	}

	res := Result{
		Apex:  make([]float64, positions),
		Trace: make([]float64, positions),
		X:     make([]float64, positions),
	}
	for pos := 0; pos < positions; pos++ {
		clearance := math.Inf(1)
		for c := 0; c < n; c++ {
			if v := footprint[c] - padded[pos+c]; v < clearance {
				clearance = v
			}
		}
		res.Apex[pos] = centerY - clearance
		res.Trace[pos] = res.Apex[pos] - apexDist
		res.X[pos] = space.Start + float64(pos+apexCol-left-1)*space.Step
	}
	return res, nil
}
