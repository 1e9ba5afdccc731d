package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/afmlab/afmsim/internal/scan"
)

// ExportData is the self-contained JSON form of a finished scan: both
// polygons, the imaged trace and the collected metrics.
type ExportData struct {
	Profile  string             `json:"profile"`
	Tip      TipMetadata        `json:"tip"`
	SurfaceX []float64          `json:"surface_x"`
	SurfaceY []float64          `json:"surface_y"`
	TipX     []float64          `json:"tip_x"`
	TipY     []float64          `json:"tip_y"`
	X        []float64          `json:"x"`
	Apex     []float64          `json:"apex"`
	Trace    []float64          `json:"trace"`
	Metrics  map[string]float64 `json:"metrics"`
}

func newExportData(out *scan.Output) ExportData {
	return ExportData{
		Profile:  string(out.Spec.Profile),
		Tip:      tipMetadata(out),
		SurfaceX: out.Surface.X,
		SurfaceY: out.Surface.Y,
		TipX:     out.Tip.Xtip,
		TipY:     out.Tip.Ytip,
		X:        out.Result.X,
		Apex:     out.Result.Apex,
		Trace:    out.Result.Trace,
		Metrics:  out.Metrics,
	}
}

func exportTo(w io.Writer, out *scan.Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(out))
}

func ExportJSON(path string, out *scan.Output) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return exportTo(file, out)
}

func ExportJSONStdout(out *scan.Output) error {
	return exportTo(os.Stdout, out)
}
