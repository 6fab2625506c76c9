package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/wavesim/internal/analysis"
	"github.com/san-kum/wavesim/internal/config"
	"github.com/san-kum/wavesim/internal/export"
	"github.com/san-kum/wavesim/internal/scenario"
	"github.com/san-kum/wavesim/internal/source"
	"github.com/san-kum/wavesim/internal/storage"
	"github.com/san-kum/wavesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	scheme     string
	elements   int
	order      int
	length     float64
	rho        float64
	vs         float64
	massScheme string
	boundary   string
	wavelet    string
	period     float64
	courant    float64
	dt         float64
	steps      int
	stride     int
	sourceDOF  int
	receivers  []int

	snapIndex int
	svgOut    string
	svgWidth  int
	svgHeight int
	frameRate int
	traceIdx  int

	sweepOrders []int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wavesim",
		Short: "1d elastic wave propagation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&snapIndex, "snapshot", -1, "snapshot index (-1 for the last)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a snapshot profile as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&snapIndex, "snapshot", -1, "snapshot index (-1 for the last)")
	svgCmd.Flags().StringVar(&svgOut, "out", "", "output file (stdout when empty)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a receiver trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&traceIdx, "receiver", 0, "receiver index")

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run as a terminal animation",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	waveletCmd := &cobra.Command{
		Use:   "wavelet [gauss|ricker]",
		Short: "preview a source time function",
		Args:  cobra.ExactArgs(1),
		RunE:  plotWavelet,
	}
	waveletCmd.Flags().Float64Var(&dt, "dt", 0.001, "sample interval")
	waveletCmd.Flags().Float64Var(&period, "period", 0.1, "dominant period")

	convergeCmd := &cobra.Command{
		Use:   "converge [scenario]",
		Short: "run an order sweep of the same scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(convergeCmd)
	convergeCmd.Flags().IntSliceVar(&sweepOrders, "orders", []int{2, 3, 4, 5, 6}, "polynomial orders to sweep")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSCHEME\tMASS\tBOUNDARY\tWAVELET\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				mass := p.MassScheme
				if p.Scheme == "chebyshev" {
					mass = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
					name, p.Scheme, mass, p.Boundary, p.Wavelet, p.Steps)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, svgCmd, analyzeCmd, liveCmd, waveletCmd, convergeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scheme, "scheme", "sem", "spatial scheme (sem, chebyshev)")
	cmd.Flags().IntVar(&elements, "elements", config.DefaultElements, "number of elements")
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "polynomial order")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	cmd.Flags().Float64Var(&rho, "rho", config.DefaultRho, "density")
	cmd.Flags().Float64Var(&vs, "vs", config.DefaultVs, "shear velocity")
	cmd.Flags().StringVar(&massScheme, "mass", "lumped", "mass matrix (lumped, consistent)")
	cmd.Flags().StringVar(&boundary, "boundary", "free", "boundary condition (free, fixed)")
	cmd.Flags().StringVar(&wavelet, "wavelet", "ricker", "source wavelet (gauss, ricker)")
	cmd.Flags().Float64Var(&period, "period", 0, "dominant period (0 derives from dt)")
	cmd.Flags().Float64Var(&courant, "courant", config.DefaultCourant, "courant number")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 derives from the stability bound)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	cmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "snapshot stride")
	cmd.Flags().IntVar(&sourceDOF, "source-dof", -1, "source dof (-1 for the domain center)")
	cmd.Flags().IntSliceVar(&receivers, "receivers", nil, "receiver dofs")
}

// resolveConfig layers preset, config file and changed flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	flagOverrides := map[string]func(){
		"scheme":     func() { cfg.Scheme = scheme },
		"elements":   func() { cfg.Elements = elements },
		"order":      func() { cfg.Order = order },
		"length":     func() { cfg.Length = length },
		"rho":        func() { cfg.Rho = rho; cfg.Layers = nil },
		"vs":         func() { cfg.Vs = vs; cfg.Layers = nil },
		"mass":       func() { cfg.MassScheme = massScheme },
		"boundary":   func() { cfg.Boundary = boundary },
		"wavelet":    func() { cfg.Wavelet = wavelet },
		"period":     func() { cfg.Period = period },
		"courant":    func() { cfg.Courant = courant },
		"dt":         func() { cfg.Dt = dt },
		"steps":      func() { cfg.Steps = steps },
		"stride":     func() { cfg.SnapshotStride = stride },
		"source-dof": func() { cfg.SourceDOF = sourceDOF },
		"receivers":  func() { cfg.Receivers = receivers },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc, err := scenario.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s scheme, %d dofs, dt=%.4g)\n",
		sc.Name, cfg.Scheme, len(sc.Coords), sc.Dt)
	start := time.Now()

	res, err := sc.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, sc.Coords, sc.Dt, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.StepsTaken)
	fmt.Printf("snapshots: %d\n", len(res.Snapshots))
	fmt.Printf("final energy: %.6g\n", res.FinalEnergy)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSCHEME\tDT\tSTEPS\tDOFS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Scheme,
			run.Dt,
			run.Steps,
			run.DOFs,
		)
	}
	return w.Flush()
}

func pickSnapshot(run *storage.StoredRun) (int, error) {
	if len(run.Snapshots) == 0 {
		return 0, fmt.Errorf("run %s has no snapshots", run.Meta.ID)
	}
	idx := snapIndex
	if idx < 0 {
		idx = len(run.Snapshots) - 1
	}
	if idx >= len(run.Snapshots) {
		return 0, fmt.Errorf("snapshot %d out of range (run has %d)", idx, len(run.Snapshots))
	}
	return idx, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	idx, err := pickSnapshot(run)
	if err != nil {
		return err
	}
	snap := run.Snapshots[idx]

	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Printf("scenario: %s (%s)\n", run.Meta.Scenario, run.Meta.Scheme)
	fmt.Printf("snapshot: step %d, t=%.5g, energy %.6g\n\n", snap.Step, snap.Time, snap.Energy)

	caption := fmt.Sprintf("u(x) at t=%.5g", snap.Time)
	fmt.Println(viz.PlotField(snap.Field, 80, 14, caption))

	for i, tr := range run.Traces {
		fmt.Println()
		fmt.Println(viz.PlotTrace(tr, run.Meta.Dt, run.TraceDOFs[i], 80, 10))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	idx, err := pickSnapshot(run)
	if err != nil {
		return err
	}

	amp := 0.0
	for _, s := range run.Snapshots {
		if a := s.Field.MaxAbs(); a > amp {
			amp = a
		}
	}
	svg := export.FieldSVG(run.Coords, run.Snapshots[idx].Field, svgWidth, svgHeight, amp)
	if svg == "" {
		return fmt.Errorf("run %s: nothing to export", run.Meta.ID)
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(run.Traces) == 0 {
		return fmt.Errorf("run %s has no receiver traces; rerun with --receivers", run.Meta.ID)
	}
	if traceIdx < 0 || traceIdx >= len(run.Traces) {
		return fmt.Errorf("receiver %d out of range (run has %d)", traceIdx, len(run.Traces))
	}

	trace := run.Traces[traceIdx]
	freq, power := analysis.Spectrum(trace, run.Meta.Dt)
	if len(power) == 0 {
		return fmt.Errorf("trace too short for analysis")
	}

	fmt.Printf("frequency analysis: %s\n", run.Meta.ID)
	fmt.Printf("receiver dof: %d (%d samples, dt=%.4g)\n\n",
		run.TraceDOFs[traceIdx], len(trace), run.Meta.Dt)

	// the interesting part of the band sits well below nyquist
	quarter := len(power) / 4
	if quarter < 2 {
		quarter = len(power)
	}
	fmt.Println(viz.PlotSpectrum(freq[:quarter], power[:quarter], 80, 14))

	if f := analysis.DominantFrequency(trace, run.Meta.Dt); f > 0 {
		fmt.Printf("\ndominant frequency: %.4g hz (period %.4g s)\n", f, 1/f)
	}
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if len(run.Snapshots) == 0 {
		return fmt.Errorf("run %s has no snapshots to replay", run.Meta.ID)
	}

	p := tea.NewProgram(viz.NewPlayer(run.Meta.ID, run.Coords, run.Snapshots, frameRate))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepOrders) == 0 {
		return fmt.Errorf("no orders to sweep")
	}

	fmt.Printf("sweeping %s over orders %v\n\n", cfg.Scenario, sweepOrders)
	results := scenario.Sweep(context.Background(), cfg, sweepOrders)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tDOFS\tDT\tSTEPS\tPEAK\tFINAL_ENERGY")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%d\terror: %v\n", r.Order, r.Err)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%.4g\t%d\t%.4g\t%.6g\n",
			r.Order, r.DOFs, r.Dt, r.Steps, r.PeakField, r.FinalEnergy)
	}
	return w.Flush()
}

func plotWavelet(cmd *cobra.Command, args []string) error {
	w, err := source.ParseWavelet(args[0])
	if err != nil {
		return err
	}
	series, err := source.Generate(w, dt, period, 1)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("%s wavelet (period %.4g, dt %.4g)", args[0], period, dt)
	fmt.Println(viz.PlotField(series, 80, 14, caption))

	freq, power := analysis.Spectrum(series, dt)
	quarter := len(power) / 4
	if quarter >= 2 {
		fmt.Println()
		fmt.Println(viz.PlotSpectrum(freq[:quarter], power[:quarter], 80, 10))
	}
	return nil
}
