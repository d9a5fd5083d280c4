package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/multisim/internal/backend"
	"github.com/san-kum/multisim/internal/compare"
	"github.com/san-kum/multisim/internal/config"
	"github.com/san-kum/multisim/internal/export"
	"github.com/san-kum/multisim/internal/logging"
	"github.com/san-kum/multisim/internal/multi"
	"github.com/san-kum/multisim/internal/params"
	"github.com/san-kum/multisim/internal/scenario"
	"github.com/san-kum/multisim/internal/store"
	"github.com/san-kum/multisim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	backends  []string
	duration  float64
	steps     int
	neurons   int
	stim      string
	amplitude float64
	rate      float64
	pConnect  float64
	weight    float64
	seed      int64

	configFile string
	preset     string
	exportOut  string

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepNum   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "multisim",
		Short: "run the same neural model on several simulator engines",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".multisim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console|json)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a model across backends",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-backend membrane traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [run_id]",
		Short: "score stored traces against the reference backend",
		Args:  cobra.ExactArgs(1),
		RunE:  compareRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export stored traces as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default <run_id>.svg)")

	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "list simulator engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := backend.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDT\tDESCRIPTION")
			for _, name := range reg.List() {
				spec, err := reg.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.3f ms\t%s\n", spec.Name, spec.Dt, spec.Description)
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one parameter across backends",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "amplitude", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "sweep range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 3.0, "sweep range end")
	sweepCmd.Flags().IntVar(&sweepNum, "values", 6, "number of sweep values")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run with a live per-backend view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, compareCmd, exportCmd, backendsCmd, presetsCmd, scenarioCmd, sweepCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&backends, "backends", []string{"euler", "rk4", "expeuler"}, "simulator engines")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated time (ms)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "run steps")
	cmd.Flags().IntVar(&neurons, "neurons", config.DefaultNeurons, "population size")
	cmd.Flags().StringVar(&stim, "stimulus", "constant", "stimulus (constant|pulse|poisson)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 2.0, "stimulus current (nA)")
	cmd.Flags().Float64Var(&rate, "rate", 400.0, "poisson event rate (Hz)")
	cmd.Flags().Float64Var(&pConnect, "p-connect", 0.1, "connection probability")
	cmd.Flags().Float64Var(&weight, "weight", 0.5, "synaptic weight (nA)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "connectivity and stimulus seed")
}

func newLogger() (zerolog.Logger, error) {
	return logging.New(logLevel, logFormat)
}

// buildConfig resolves preset, config file and flags (flags win) into one
// run configuration.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("backends") || len(cfg.Backends) == 0 {
		cfg.Backends = backends
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]any)
	}
	setIfChanged := func(flag, param string, value any) {
		if cmd.Flags().Changed(flag) {
			cfg.Params[param] = value
		} else if _, ok := cfg.Params[param]; !ok {
			cfg.Params[param] = value
		}
	}
	setIfChanged("neurons", "n_neurons", neurons)
	setIfChanged("stimulus", "stimulus", stim)
	setIfChanged("amplitude", "amplitude", amplitude)
	setIfChanged("rate", "rate", rate)
	setIfChanged("p-connect", "p_connect", pConnect)
	setIfChanged("weight", "weight", weight)
	setIfChanged("seed", "seed", int(seed))

	return cfg, cfg.Validate()
}

func buildSim(cfg *config.Config, log zerolog.Logger) (*multi.Sim, error) {
	return multi.New(cfg.Backends, backend.ModelFactory(backend.NewRegistry()), params.New(cfg.ModelParams()), log)
}

func runModel(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ms, err := buildSim(cfg, log)
	if err != nil {
		return err
	}

	log.Info().Str("model", cfg.Model).Strs("backends", cfg.Backends).
		Float64("duration", cfg.Duration).Int("steps", cfg.Steps).Msg("starting run")
	start := time.Now()

	step := 0
	progress := func() {
		step++
		log.Debug().Int("step", step).Int("total", cfg.Steps).Msg("step complete")
	}
	if err := ms.Run(cfg.Duration, cfg.Steps, progress); err != nil {
		return err
	}
	elapsed := time.Since(start)

	report, err := compare.Run(ms)
	if err != nil {
		return err
	}

	traces, err := collectTraces(ms)
	if err != nil {
		return err
	}
	if err := ms.End(); err != nil {
		return err
	}

	meta := store.RunMetadata{
		Model:    cfg.Model,
		Backends: cfg.Backends,
		Duration: cfg.Duration,
		Steps:    cfg.Steps,
		Params:   cfg.Params,
		Metrics:  metricsFromReport(report),
	}
	runID, err := st.Save(meta, traces)
	if err != nil {
		return err
	}

	log.Info().Dur("elapsed", elapsed).Str("run_id", runID).Msg("run complete")
	printReport(report)
	return nil
}

func collectTraces(ms *multi.Sim) (map[string]store.Trace, error) {
	voltages, err := ms.Invoke("trace")
	if err != nil {
		return nil, err
	}
	times, err := ms.Invoke("time")
	if err != nil {
		return nil, err
	}
	traces := make(map[string]store.Trace, len(voltages))
	for name, v := range voltages {
		vs := v.([]float64)
		total := times[name].(float64)
		ts := make([]float64, len(vs))
		for i := 1; i < len(vs); i++ {
			ts[i] = total * float64(i) / float64(len(vs)-1)
		}
		traces[name] = store.Trace{Times: ts, Voltages: vs}
	}
	return traces, nil
}

func metricsFromReport(report *compare.Report) map[string]map[string]float64 {
	metrics := make(map[string]map[string]float64, len(report.Rows))
	for _, row := range report.Rows {
		metrics[row.Backend] = map[string]float64{
			"spike_count":   float64(row.SpikeCount),
			"rate":          row.Rate,
			"trace_rmse":    row.TraceRMSE,
			"max_volt_diff": row.MaxVoltDiff,
		}
	}
	return metrics
}

func printReport(report *compare.Report) {
	fmt.Printf("\nagreement vs %s:\n", report.Reference)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tSPIKES\tRATE (Hz)\tRMSE (mV)\tMAX DIFF (mV)")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.4f\t%.4f\n",
			row.Backend, row.SpikeCount, row.Rate, row.TraceRMSE, row.MaxVoltDiff)
	}
	w.Flush()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tSTEPS\tBACKENDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f ms\t%d\t%v\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Steps,
			run.Backends,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nmodel: %s\n\n", meta.ID, meta.Model)
	for _, name := range meta.Backends {
		trace, err := st.LoadTrace(runID, name)
		if err != nil {
			return err
		}
		if len(trace.Voltages) == 0 {
			continue
		}
		graph := asciigraph.Plot(trace.Voltages,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: membrane potential (mV)", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func compareRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if len(meta.Backends) == 0 {
		return fmt.Errorf("run %s has no backends", runID)
	}

	ref, err := st.LoadTrace(runID, meta.Backends[0])
	if err != nil {
		return err
	}

	fmt.Printf("agreement vs %s:\n", meta.Backends[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tRMSE (mV)\tMAX DIFF (mV)")
	for _, name := range meta.Backends {
		trace, err := st.LoadTrace(runID, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", name,
			compare.RMSE(ref.Voltages, trace.Voltages),
			compare.MaxAbsDiff(ref.Voltages, trace.Voltages))
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traces := make(map[string]store.Trace, len(meta.Backends))
	for _, name := range meta.Backends {
		trace, err := st.LoadTrace(runID, name)
		if err != nil {
			return err
		}
		traces[name] = *trace
	}

	out := exportOut
	if out == "" {
		out = runID + ".svg"
	}
	svg := export.TracesToSVG(traces, meta.Backends, 800, 400)
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}

	results, err := scenario.Run(sc, backend.NewRegistry(), log)
	for _, res := range results {
		fmt.Printf("\n[%s] %s\n", res.Name, res.Model)
		printReport(res.Report)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	points, err := scenario.RunSweep(&scenario.Sweep{
		Model:     cfg.Model,
		Backends:  cfg.Backends,
		ParamName: sweepParam,
		Min:       sweepMin,
		Max:       sweepMax,
		Values:    sweepNum,
		Duration:  cfg.Duration,
		Steps:     cfg.Steps,
		Base:      cfg.Params,
	}, backend.NewRegistry(), log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s", sweepParam)
	for _, name := range cfg.Backends {
		fmt.Fprintf(w, "\t%s (Hz)", name)
	}
	fmt.Fprintln(w)
	for _, point := range points {
		fmt.Fprintf(w, "%.4f", point.Value)
		for _, name := range cfg.Backends {
			fmt.Fprintf(w, "\t%.2f", point.Rates[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ms, err := buildSim(cfg, log)
	if err != nil {
		return err
	}
	return tui.RunLive(ms, cfg.Model, cfg.Duration, cfg.Steps)
}
