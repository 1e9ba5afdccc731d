package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/afmlab/afmsim/internal/afm"
	"github.com/afmlab/afmsim/internal/analysis"
	"github.com/afmlab/afmsim/internal/batch"
	"github.com/afmlab/afmsim/internal/config"
	"github.com/afmlab/afmsim/internal/export"
	"github.com/afmlab/afmsim/internal/scan"
	"github.com/afmlab/afmsim/internal/store"
	"github.com/afmlab/afmsim/internal/surface"
	"github.com/afmlab/afmsim/internal/tip"
	"github.com/afmlab/afmsim/internal/viz"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	tipKindName  string
	radiusCtl    float64
	widthCtl     float64
	contaminated bool
	seed         int64
	saveName     string
	noSave       bool
	// Config file
	configFile string
	// Preset name
	preset string
	// Live view scan speed in [0,1]
	speed float64
	// Export output path and SVG geometry
	outPath   string
	svgWidth  int
	svgHeight int
	// Sweep controls
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Contamination trials
	trialCount int
)

// main registers the afmsim commands and flags, drops into the live
// scan view when no subcommand is given, and exits with status 1 when a
// command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "afmsim",
		Short: "afm imaging simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the live scan view when no command given
			liveScan(config.DefaultProfile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".afmsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [profile]",
		Short: "scan a surface profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	runCmd.Flags().StringVar(&tipKindName, "tip", config.DefaultKind, "tip kind (normal, sheared, multipeak)")
	runCmd.Flags().Float64Var(&radiusCtl, "radius", config.DefaultRadius, "tip radius control in [0,1]")
	runCmd.Flags().Float64Var(&widthCtl, "width", config.DefaultWidth, "tip half-width control in [0,1]")
	runCmd.Flags().BoolVar(&contaminated, "contaminated", false, "perturb one tip side with contamination")
	runCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "contamination noise seed")
	runCmd.Flags().StringVar(&saveName, "save", "", "save the run under this id")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	surfacesCmd := &cobra.Command{
		Use:   "surfaces",
		Short: "list surface profiles",
		RunE:  listSurfaces,
	}

	tipsCmd := &cobra.Command{
		Use:   "tips",
		Short: "list tip kinds at the current controls",
		RunE:  listTips,
	}
	tipsCmd.Flags().Float64Var(&radiusCtl, "radius", config.DefaultRadius, "tip radius control in [0,1]")
	tipsCmd.Flags().Float64Var(&widthCtl, "width", config.DefaultWidth, "tip half-width control in [0,1]")

	presetsCmd := &cobra.Command{
		Use:   "presets [profile]",
		Short: "list available presets for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for profile: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spatial frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	reconstructCmd := &cobra.Command{
		Use:   "reconstruct [run_id]",
		Short: "estimate the surface back out of a trace",
		Args:  cobra.ExactArgs(1),
		RunE:  reconstructRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [profile] [preset1] [preset2] ...",
		Short: "compare tip presets on the same profile",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live [profile]",
		Short: "scan with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&tipKindName, "tip", config.DefaultKind, "tip kind")
	liveCmd.Flags().Float64Var(&radiusCtl, "radius", config.DefaultRadius, "tip radius control in [0,1]")
	liveCmd.Flags().Float64Var(&widthCtl, "width", config.DefaultWidth, "tip half-width control in [0,1]")
	liveCmd.Flags().BoolVar(&contaminated, "contaminated", false, "perturb one tip side with contamination")
	liveCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "contamination noise seed")
	liveCmd.Flags().Float64Var(&speed, "speed", 0.5, "sweep speed in [0,1]")

	// Batch family
	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scan sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenarioFile,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [profile]",
		Short: "sweep a tip control across a range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweepCmd,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "radius", "swept control (radius, width)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.0, "control range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "control range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of sweep steps")
	sweepCmd.Flags().StringVar(&tipKindName, "tip", config.DefaultKind, "tip kind")
	sweepCmd.Flags().Float64Var(&radiusCtl, "radius", config.DefaultRadius, "fixed radius control")
	sweepCmd.Flags().Float64Var(&widthCtl, "width", config.DefaultWidth, "fixed half-width control")

	trialsCmd := &cobra.Command{
		Use:   "trials [profile]",
		Short: "repeat contaminated scans over noise seeds",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrialsCmd,
	}
	trialsCmd.Flags().StringVar(&tipKindName, "tip", config.DefaultKind, "tip kind")
	trialsCmd.Flags().Float64Var(&radiusCtl, "radius", config.DefaultRadius, "tip radius control in [0,1]")
	trialsCmd.Flags().Float64Var(&widthCtl, "width", config.DefaultWidth, "tip half-width control in [0,1]")
	trialsCmd.Flags().IntVar(&trialCount, "trials", 8, "number of trials")
	trialsCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "first noise seed")

	benchCmd := &cobra.Command{
		Use:   "bench [profile]",
		Short: "benchmark scans across tip kinds",
		Args:  cobra.ExactArgs(1),
		RunE:  benchProfile,
	}
	benchCmd.Flags().Float64Var(&widthCtl, "width", config.DefaultWidth, "tip half-width control in [0,1]")

	// Export family
	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trace data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export full run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height in pixels")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a run to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "", "output path (default <run_id>.png)")

	rootCmd.AddCommand(runCmd, surfacesCmd, tipsCmd, presetsCmd, listCmd,
		plotCmd, analyzeCmd, reconstructCmd, compareCmd, liveCmd,
		scenarioCmd, sweepCmd, trialsCmd, benchCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	prof, err := surface.Parse(args[0])
	if err != nil {
		return err
	}
	profile := string(prof)

	// Preset applies first; config file and explicit flags override it.
	if preset != "" {
		cfg := config.GetPreset(profile, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset %q for %s (try: %s)",
				preset, profile, strings.Join(config.ListPresets(profile), ", "))
		}
		if cfg.Tip.Kind != "" {
			tipKindName = cfg.Tip.Kind
		}
		radiusCtl = cfg.Tip.Radius
		widthCtl = cfg.Tip.Width
		contaminated = cfg.Tip.Contaminated
		if cfg.Seed != 0 {
			seed = cfg.Seed
		}
	}

	params := afm.DefaultParams()
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Tip.Kind != "" && !cmd.Flags().Changed("tip") {
			tipKindName = cfg.Tip.Kind
		}
		if !cmd.Flags().Changed("radius") {
			radiusCtl = cfg.Tip.Radius
		}
		if !cmd.Flags().Changed("width") {
			widthCtl = cfg.Tip.Width
		}
		if !cmd.Flags().Changed("contaminated") {
			contaminated = cfg.Tip.Contaminated
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
		params = cfg.Params()
	}

	spec, err := buildSpec(profile)
	if err != nil {
		return err
	}

	session := newSession(params)

	fmt.Printf("scanning %s with %s tip (radius %.2f, width %.2f)...\n",
		profile, spec.Tip.Kind, radiusCtl, widthCtl)
	start := time.Now()

	out, err := session.Run(context.Background(), spec)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("tip: radius %.3f nm, half-width %.3f nm, apex drop %.3f nm\n",
		out.Tip.Radius, out.Tip.HalfWidth, out.Tip.ApexDist)
	fmt.Println("\ntrace metrics:")
	for _, m := range analysis.DefaultMetrics() {
		fmt.Printf("  %s: %.4f\n", m.Name(), out.Metrics[m.Name()])
	}
	fmt.Printf("\ndistortion: rms %.4f nm, max %.4f nm, broadening %d columns\n",
		analysis.RMSError(out.Result.Trace, out.Surface.YImaging),
		analysis.MaxError(out.Result.Trace, out.Surface.YImaging),
		analysis.Broadening(out.Result.Trace, out.Surface.YImaging))

	if noSave {
		return nil
	}
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	var runID string
	if saveName != "" {
		runID, err = st.SaveAs(saveName, out)
	} else {
		runID, err = st.Save(out)
	}
	if err != nil {
		return err
	}
	fmt.Printf("saved run: %s\n", runID)
	return nil
}

func listSurfaces(cmd *cobra.Command, args []string) error {
	p := afm.DefaultParams()
	gen := surface.NewGenerator(p, afm.NewSpace(p))

	for _, profile := range afm.Profiles() {
		data, err := gen.Generate(profile)
		if err != nil {
			return err
		}
		lo, hi := data.Y[0], data.Y[0]
		for _, y := range data.Y {
			if y < lo {
				lo = y
			}
			if y > hi {
				hi = y
			}
		}
		fmt.Printf("%-18s %s  [%.1f, %.1f] nm\n", profile, viz.SparklineChart(data.Y, 48), lo, hi)
	}
	return nil
}

func listTips(cmd *cobra.Command, args []string) error {
	p := afm.DefaultParams()
	builder := tip.NewBuilder(p, afm.NewSpace(p))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tRADIUS\tHALF-WIDTH\tAPEX DROP\tPOINTS")
	for _, kind := range []afm.TipKind{afm.TipNormal, afm.TipSheared, afm.TipMultiPeak} {
		g, err := builder.Build(afm.TipShapeInput{
			Kind:          kind,
			RadiusControl: radiusCtl,
			WidthControl:  widthCtl,
			CenterX:       p.TipCenterX,
			CenterY:       p.TipCenterY,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%d\n", kind, g.Radius, g.HalfWidth, g.ApexDist, len(g.Xtip))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tTIME\tSAMPLES\tTIP\tRADIUS\tCONTAM")
	for _, run := range runs {
		contam := "-"
		if run.Tip.Contaminated {
			contam = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.2f\t%s\n",
			run.ID, run.Profile, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples, run.Tip.Kind, run.Tip.Radius, contam)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	_, sy, _, err := st.LoadSurface(args[0])
	if err != nil {
		return err
	}
	_, apex, trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("profile: %s  tip: %s  samples: %d\n\n", meta.Profile, meta.Tip.Kind, meta.Samples)

	charts := []struct {
		name string
		data []float64
	}{
		{"surface height (nm)", sy},
		{"apex path (nm)", apex},
		{"imaged trace (nm)", trace},
	}
	for _, c := range charts {
		if len(c.data) == 0 {
			continue
		}
		graph := asciigraph.Plot(c.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c.name))
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	x, _, trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}
	step := afm.DefaultParams().AxisStep
	if len(x) > 1 {
		step = x[1] - x[0]
	}

	fmt.Printf("spatial frequency analysis: %s (%s)\n\n", meta.ID, meta.Profile)

	ps := analysis.PowerSpectrum(trace)
	quarter := len(ps) / 4
	if quarter < 2 {
		quarter = len(ps)
	}
	graph := asciigraph.Plot(ps[:quarter],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum, low spatial frequencies"))
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("pattern unit width: %.1f nm\n", afm.DefaultParams().UnitWidth())
	if wl := analysis.DominantWavelength(trace, step); wl > 0 {
		fmt.Printf("dominant wavelength: %.2f nm\n", wl)
		if span := x[len(x)-1] - x[0]; span > 0 {
			fmt.Printf("periods across scan: %.1f\n", span/wl)
		}
	} else {
		fmt.Println("no dominant wavelength found")
	}
	return nil
}

func reconstructRun(cmd *cobra.Command, args []string) error {
	out, err := rerunFromMeta(args[0])
	if err != nil {
		return err
	}

	est := scan.Reconstruct(out.Footprint, out.Result.Trace, out.Spec.Tip.CenterY, out.Tip.ApexDist)
	src := out.Surface.YImaging
	if len(est) != len(src) {
		return fmt.Errorf("reconstruction length %d does not match surface %d", len(est), len(src))
	}

	fmt.Printf("tip-eroded estimate: %s (%s, %s tip)\n\n", args[0], out.Spec.Profile, out.Spec.Tip.Kind)
	fmt.Println(asciigraph.Plot(est,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("reconstructed surface (nm)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(src,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("true surface (nm)")))
	fmt.Println()

	var sum, worst float64
	for j := range src {
		d := est[j] - src[j]
		sum += d * d
		if d > worst {
			worst = d
		}
	}
	rms := math.Sqrt(sum / float64(len(src)))
	fmt.Printf("residual: rms %.4f nm, worst overestimate %.4f nm\n", rms, worst)
	return nil
}

func comparePresets(cmd *cobra.Command, args []string) error {
	prof, err := surface.Parse(args[0])
	if err != nil {
		return err
	}
	profile := string(prof)

	fmt.Printf("comparing tip presets on %s:\n\n", profile)
	fmt.Printf("%-12s %-10s %-8s %-8s %-8s %-6s\n", "PRESET", "TIP", "RADIUS", "RMS", "MAX", "BROAD")
	fmt.Println(strings.Repeat("-", 58))

	for _, name := range args[1:] {
		cfg := config.GetPreset(profile, name)
		if cfg == nil {
			fmt.Printf("%-12s unknown preset (try: %s)\n", name, strings.Join(config.ListPresets(profile), ", "))
			continue
		}
		spec, err := specFromConfig(cfg)
		if err != nil {
			fmt.Printf("%-12s error: %v\n", name, err)
			continue
		}
		out, err := newSession(afm.DefaultParams()).Run(context.Background(), spec)
		if err != nil {
			fmt.Printf("%-12s error: %v\n", name, err)
			continue
		}
		fmt.Printf("%-12s %-10s %-8.3f %-8.4f %-8.4f %-6d\n",
			name, out.Tip.Kind, out.Tip.Radius,
			analysis.RMSError(out.Result.Trace, out.Surface.YImaging),
			analysis.MaxError(out.Result.Trace, out.Surface.YImaging),
			analysis.Broadening(out.Result.Trace, out.Surface.YImaging))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	profile := config.DefaultProfile
	if len(args) > 0 {
		profile = args[0]
	}
	return liveScan(profile)
}

func liveScan(profile string) error {
	spec, err := buildSpec(profile)
	if err != nil {
		return err
	}

	p := afm.DefaultParams()
	m := viz.NewModel(newSession(p), spec, viz.FrameRate(p, speed))

	prog := tea.NewProgram(m)
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func runScenarioFile(cmd *cobra.Command, args []string) error {
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	session := newSession(afm.DefaultParams())
	start := time.Now()
	outputs, err := batch.RunScenario(context.Background(), scenario, session, st)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d steps in %v\n", len(outputs), time.Since(start))
	return nil
}

func runSweepCmd(cmd *cobra.Command, args []string) error {
	sweep := &batch.Sweep{
		Profile: args[0],
		Tip:     tipKindName,
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Radius:  radiusCtl,
		Width:   widthCtl,
	}

	session := newSession(afm.DefaultParams())
	points, err := batch.RunSweep(context.Background(), session, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTROL\tRADIUS\tHALF-WIDTH\tRMS\tRA\tPEAK-VALLEY")
	for _, pt := range points {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.4f\t%.4f\t%.4f\n",
			pt.Control, pt.Radius, pt.HalfWidth, pt.RMS, pt.Metrics["ra"], pt.Metrics["peak-valley"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	rms := make([]float64, len(points))
	for i, pt := range points {
		rms[i] = pt.RMS
	}
	fmt.Printf("\nrms distortion over %s: %s\n", sweepParam, viz.SparklineChart(rms, len(rms)))
	return nil
}

func runTrialsCmd(cmd *cobra.Command, args []string) error {
	set := &batch.TrialSet{
		Profile: args[0],
		Tip:     tipKindName,
		Radius:  radiusCtl,
		Width:   widthCtl,
		Trials:  trialCount,
		Seed:    seed,
	}

	session := newSession(afm.DefaultParams())
	start := time.Now()
	results, err := batch.RunTrials(context.Background(), session, set)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tRMS\tRA\tPEAK-VALLEY")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\n", r.Seed, r.RMS, r.Metrics["ra"], r.Metrics["peak-valley"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, worst := batch.TrialStats(results)
	fmt.Printf("\n%d contamination trials in %v\n", len(results), time.Since(start))
	fmt.Printf("rms distortion: mean %.4f nm, worst %.4f nm\n", mean, worst)
	return nil
}

func benchProfile(cmd *cobra.Command, args []string) error {
	prof, err := surface.Parse(args[0])
	if err != nil {
		return err
	}

	controls := []float64{0.1, 0.5, 0.9}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIP\tRADIUS CTL\tSAMPLES\tTIME\tPOS/SEC")
	for _, kind := range []afm.TipKind{afm.TipNormal, afm.TipSheared, afm.TipMultiPeak} {
		for _, ctl := range controls {
			spec := scan.RunSpec{
				Profile: prof,
				Tip:     afm.TipShapeInput{Kind: kind, RadiusControl: ctl, WidthControl: widthCtl},
			}

			start := time.Now()
			out, err := newSession(afm.DefaultParams()).Run(context.Background(), spec)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			n := len(out.Result.Trace)
			fmt.Fprintf(w, "%s\t%.1f\t%d\t%v\t%.0f\n",
				kind, ctl, n, elapsed.Round(time.Microsecond), float64(n)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	x, apex, trace, err := st.LoadTrace(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"x", "apex", "trace"}); err != nil {
		return err
	}
	for i := range x {
		row := []string{
			strconv.FormatFloat(x[i], 'f', 6, 64),
			strconv.FormatFloat(apex[i], 'f', 6, 64),
			strconv.FormatFloat(trace[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	out, err := rerunFromMeta(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	out, err := rerunFromMeta(args[0])
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = args[0] + ".svg"
	}
	svg := export.ScanSVG(out, svgWidth, svgHeight)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	out, err := rerunFromMeta(args[0])
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = args[0] + ".png"
	}
	if err := export.ScanPNG(path, out); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func buildSpec(profile string) (scan.RunSpec, error) {
	prof, err := surface.Parse(profile)
	if err != nil {
		return scan.RunSpec{}, err
	}
	kind, err := afm.ParseTipKind(tipKindName)
	if err != nil {
		return scan.RunSpec{}, err
	}
	return scan.RunSpec{
		Profile: prof,
		Tip: afm.TipShapeInput{
			Kind:          kind,
			RadiusControl: radiusCtl,
			WidthControl:  widthCtl,
			Contaminated:  contaminated,
			Noise:         afm.NoiseFromSeed(seed),
		},
	}, nil
}

func specFromConfig(cfg *config.Config) (scan.RunSpec, error) {
	prof, err := surface.Parse(cfg.Profile)
	if err != nil {
		return scan.RunSpec{}, err
	}
	in, err := cfg.TipInput()
	if err != nil {
		return scan.RunSpec{}, err
	}
	return scan.RunSpec{Profile: prof, Tip: in}, nil
}

func newSession(p afm.Params) *scan.Session {
	s := scan.NewSession(p)
	for _, m := range analysis.DefaultMetrics() {
		s.AddMetric(m)
	}
	return s
}

// rerunFromMeta replays a stored run from its metadata. Scans are
// deterministic given the recorded controls and noise draws, so the
// replay reproduces the persisted trace and everything the store did
// not keep, like the tip outline and footprint.
func rerunFromMeta(runID string) (*scan.Output, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	prof, err := surface.Parse(meta.Profile)
	if err != nil {
		return nil, err
	}
	kind, err := afm.ParseTipKind(meta.Tip.Kind)
	if err != nil {
		return nil, err
	}

	spec := scan.RunSpec{
		Profile: prof,
		Tip: afm.TipShapeInput{
			Kind:          kind,
			RadiusControl: meta.Tip.RadiusControl,
			WidthControl:  meta.Tip.WidthControl,
			Contaminated:  meta.Tip.Contaminated,
			Noise:         afm.NoisePair{A: meta.Tip.NoiseA, B: meta.Tip.NoiseB},
		},
	}
	return newSession(afm.DefaultParams()).Run(context.Background(), spec)
}
