package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/afmlab/afmsim/internal/afm"
	"github.com/afmlab/afmsim/internal/scan"
	"github.com/afmlab/afmsim/internal/store"
)

const scenarioYAML = `name: demo
description: two scans
steps:
  - profile: square
    tip: normal
    radius: 0.2
    width: 0.3
    save_as: first
  - profile: sine
    preset: standard
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if sc.Name != "demo" {
		t.Errorf("expected name 'demo', got '%s'", sc.Name)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sc.Steps))
	}
	if sc.Steps[0].SaveAs != "first" {
		t.Errorf("expected save_as 'first', got '%s'", sc.Steps[0].SaveAs)
	}
	if sc.Steps[1].Preset != "standard" {
		t.Errorf("expected preset 'standard', got '%s'", sc.Steps[1].Preset)
	}
}

func TestLoadScenarioMissing(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	if err != nil {
		t.Fatal(err)
	}

	session := scan.NewSession(afm.DefaultParams())
	st := store.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	outputs, err := RunScenario(context.Background(), sc, session, st)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(outputs))
	}
	if outputs[0].Spec.Profile != afm.ProfileSquare {
		t.Errorf("step 1 profile wrong: %s", outputs[0].Spec.Profile)
	}
	if outputs[1].Spec.Profile != afm.ProfileSine {
		t.Errorf("step 2 profile wrong: %s", outputs[1].Spec.Profile)
	}

	// Only the step with save_as lands in the store.
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].ID != "first" {
		t.Errorf("expected run id 'first', got '%s'", runs[0].ID)
	}
}

func TestRunScenarioUnknownProfile(t *testing.T) {
	sc := &Scenario{
		Name:  "bad",
		Steps: []ScenarioStep{{Profile: "moon-crater", Tip: "normal"}},
	}

	session := scan.NewSession(afm.DefaultParams())
	_, err := RunScenario(context.Background(), sc, session, nil)
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{
		Name:  "bad",
		Steps: []ScenarioStep{{Profile: "sine", Preset: "imaginary"}},
	}

	session := scan.NewSession(afm.DefaultParams())
	_, err := RunScenario(context.Background(), sc, session, nil)
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestRunSweepRadius(t *testing.T) {
	session := scan.NewSession(afm.DefaultParams())

	results, err := RunSweep(context.Background(), session, &Sweep{
		Profile: "square",
		Tip:     "normal",
		Param:   "radius",
		Min:     0.1,
		Max:     0.9,
		Steps:   3,
		Width:   0.5,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 points, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].Radius <= results[i-1].Radius {
			t.Errorf("realized radius not increasing: %f then %f", results[i-1].Radius, results[i].Radius)
		}
	}

	// A blunter tip distorts a square wave more.
	if results[2].RMS <= results[0].RMS {
		t.Errorf("expected distortion to grow with radius: %f then %f", results[0].RMS, results[2].RMS)
	}
}

func TestRunSweepBadParam(t *testing.T) {
	session := scan.NewSession(afm.DefaultParams())

	_, err := RunSweep(context.Background(), session, &Sweep{
		Profile: "square", Tip: "normal", Param: "tilt", Min: 0, Max: 1, Steps: 2,
	})
	if err == nil {
		t.Fatal("expected error for unknown param")
	}

	_, err = RunSweep(context.Background(), session, &Sweep{
		Profile: "square", Tip: "normal", Param: "radius", Min: 0, Max: 1, Steps: 1,
	})
	if err == nil {
		t.Fatal("expected error for too few steps")
	}
}

func TestRunTrials(t *testing.T) {
	session := scan.NewSession(afm.DefaultParams())

	results, err := RunTrials(context.Background(), session, &TrialSet{
		Profile: "sine",
		Tip:     "normal",
		Radius:  0.5,
		Width:   0.5,
		Trials:  3,
		Seed:    11,
	})
	if err != nil {
		t.Fatalf("trials failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(results))
	}

	for i, r := range results {
		if r.Seed != 11+int64(i) {
			t.Errorf("trial %d seed %d, want %d", i, r.Seed, 11+int64(i))
		}
		if r.RMS < 0 {
			t.Errorf("trial %d negative rms", i)
		}
		if len(r.Metrics) == 0 {
			t.Errorf("trial %d missing metrics", i)
		}
	}

	mean, max := TrialStats(results)
	if mean > max {
		t.Errorf("mean %f exceeds max %f", mean, max)
	}
	if mean <= 0 {
		t.Error("contaminated scans should show nonzero distortion")
	}
}

func TestTrialStatsEmpty(t *testing.T) {
	mean, max := TrialStats(nil)
	if mean != 0 || max != 0 {
		t.Errorf("expected zeros, got %f/%f", mean, max)
	}
}
