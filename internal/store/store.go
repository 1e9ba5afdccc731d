package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/afmlab/afmsim/internal/scan"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// TipMetadata records both the slider inputs and the realized geometry,
// so a saved run can be reproduced exactly.
type TipMetadata struct {
	Kind          string  `json:"kind"`
	RadiusControl float64 `json:"radius_control"`
	WidthControl  float64 `json:"width_control"`
	Radius        float64 `json:"radius"`
	HalfWidth     float64 `json:"half_width"`
	ApexDist      float64 `json:"apex_dist"`
	Contaminated  bool    `json:"contaminated"`
	NoiseA        float64 `json:"noise_a,omitempty"`
	NoiseB        float64 `json:"noise_b,omitempty"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Profile   string             `json:"profile"`
	Timestamp time.Time          `json:"timestamp"`
	Samples   int                `json:"samples"`
	Tip       TipMetadata        `json:"tip"`
	Metrics   map[string]float64 `json:"metrics"`
}

func tipMetadata(out *scan.Output) TipMetadata {
	in := out.Spec.Tip
	return TipMetadata{
		Kind:          in.Kind.String(),
		RadiusControl: in.RadiusControl,
		WidthControl:  in.WidthControl,
		Radius:        out.Tip.Radius,
		HalfWidth:     out.Tip.HalfWidth,
		ApexDist:      out.Tip.ApexDist,
		Contaminated:  in.Contaminated,
		NoiseA:        in.Noise.A,
		NoiseB:        in.Noise.B,
	}
}

func (s *Store) Save(out *scan.Output) (string, error) {
	return s.SaveAs(fmt.Sprintf("%s_%d", out.Spec.Profile, time.Now().Unix()), out)
}

// SaveAs writes a run directory holding metadata.json, surface.csv and
// trace.csv. The run id doubles as the directory name.
func (s *Store) SaveAs(runID string, out *scan.Output) (string, error) {
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Profile:   string(out.Spec.Profile),
		Timestamp: time.Now(),
		Samples:   len(out.Result.Trace),
		Tip:       tipMetadata(out),
		Metrics:   out.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeSeriesCSV(filepath.Join(runDir, "surface.csv"),
		[]string{"x", "y", "imaging"},
		out.Surface.X, out.Surface.Y, out.Surface.YImaging); err != nil {
		return "", err
	}

	if err := writeSeriesCSV(filepath.Join(runDir, "trace.csv"),
		[]string{"x", "apex", "trace"},
		out.Result.X, out.Result.Apex, out.Result.Trace); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads the scan series of a saved run.
func (s *Store) LoadTrace(runID string) (x, apex, trace []float64, err error) {
	cols, err := readSeriesCSV(filepath.Join(s.baseDir, runID, "trace.csv"), 3)
	if err != nil {
		return nil, nil, nil, err
	}
	return cols[0], cols[1], cols[2], nil
}

// LoadSurface reads the surface series of a saved run.
func (s *Store) LoadSurface(runID string) (x, y, imaging []float64, err error) {
	cols, err := readSeriesCSV(filepath.Join(s.baseDir, runID, "surface.csv"), 3)
	if err != nil {
		return nil, nil, nil, err
	}
	return cols[0], cols[1], cols[2], nil
}

// writeSeriesCSV writes parallel float columns under a header row. The
// columns are assumed equal length.
func writeSeriesCSV(path string, header []string, cols ...[]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for i := range cols[0] {
		for j, col := range cols {
			row[j] = strconv.FormatFloat(col[i], 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readSeriesCSV reads want float columns back, skipping the header and
// any malformed rows.
func readSeriesCSV(path string, want int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, want)
	for i := range cols {
		cols[i] = []float64{}
	}
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < want {
			continue
		}
		vals := make([]float64, want)
		ok := true
		for j := 0; j < want; j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		for j := range vals {
			cols[j] = append(cols[j], vals[j])
		}
	}
	return cols, nil
}
