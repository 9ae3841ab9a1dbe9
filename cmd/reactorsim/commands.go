package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/export"
	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/storage"
	"github.com/san-kum/reactorsim/internal/trace"
	"github.com/san-kum/reactorsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	provider, err := cfg.Provider()
	if err != nil {
		return err
	}
	core, law, err := cfg.Build()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim := reactor.NewSimulator(provider, law, reactor.WithLogger(log))
	for _, m := range metrics.Standard(cfg.TrackingNominal()) {
		sim.AddMetric(m)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Printf("running %g s at dt=%g s (%s control)...\n", core.Duration, core.Dt, cfg.Control.Mode)
	start := time.Now()
	tr, err := sim.Run(ctx, core)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Name:        name(runName, preset, "run"),
		Description: cfg.Description,
		Control:     string(cfg.Control.Mode),
		Core:        core,
	}, tr, stride)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	printSummary(tr)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	provider, err := cfg.Provider()
	if err != nil {
		return err
	}
	sweep, err := cfg.ControlSweep()
	if err != nil {
		return err
	}
	sweep.Log = log

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Printf("scanning %d insertions for %.4g W...\n", len(sweep.Candidates), sweep.Target)
	res, err := sweep.Run(ctx, provider, cfg.Core)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIGMA_TH\tMEAN POWER\tDIFF\t")
	for _, e := range res.Entries {
		mark := ""
		if e == res.Best {
			mark = "*"
		}
		fmt.Fprintf(w, "%.4g\t%.4g\t%.4g\t%s\n", e.Thermal, e.MeanPower, e.Diff, mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest sigma_ctrl_thermal: %.4g 1/s (mean power %.4g W)\n", res.Best.Thermal, res.Best.MeanPower)

	if res.Final == nil {
		return nil
	}
	st := storage.New(dataDir)
	core := cfg.Core
	core.Duration = sweep.FinalTime
	runID, err := st.Save(storage.RunMetadata{
		Name:        name(runName, preset, "sweep"),
		Description: fmt.Sprintf("best insertion %.4g 1/s for target %.4g W", res.Best.Thermal, sweep.Target),
		Control:     string(config.ModeFixed),
		Core:        core,
	}, res.Final, stride)
	if err != nil {
		return err
	}
	fmt.Printf("final run id: %s\n", runID)
	printSummary(res.Final)
	return nil
}

func name(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func printSummary(tr *trace.Trace) {
	fmt.Printf("samples: %d\n", tr.Len())
	fmt.Printf("final power: %.6g W\n", tr.Last(trace.Power))
	if tr.Has(trace.KEff) {
		fmt.Printf("final k_eff: %.6f\n", tr.Last(trace.KEff))
	}
	fmt.Println("\nmetrics:")
	for _, m := range slices.Sorted(maps.Keys(tr.Metrics)) {
		fmt.Printf("  %s: %.6g\n", m, tr.Metrics[m])
	}
	for _, d := range tr.Diagnostics {
		fmt.Printf("warning: %s\n", d.Error())
	}
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
	fmt.Fprintln(w, "ID\tCONTROL\tTIME\tDURATION\tSAMPLES\tPEAK POWER")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%gs\t%d\t%.4g\n",
			r.ID, r.Control, r.Timestamp.Format("2006-01-02 15:04"), r.Core.Duration, r.Samples, r.Metrics["peak_power"])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	series, err := tr.Lookup(trace.Quantity(quantity))
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, tr.Quantities())
	}
	fmt.Println(viz.Plot(series, width, height, fmt.Sprintf("%s - %s", args[0], quantity)))

	s := metrics.Summarize(series)
	fmt.Printf("\nmin %.6g  max %.6g  mean %.6g  std %.6g  final %.6g\n", s.Min, s.Max, s.Mean, s.StdDev, s.Final)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if tr.Len() < 2 {
		return analysis.ErrTooShort
	}

	fmt.Printf("analysis: %s\n\n", args[0])
	tau, err := analysis.AsymptoticPeriod(tr, tailFraction)
	switch {
	case err != nil:
		fmt.Printf("period: %v\n", err)
	case math.IsInf(tau, 1):
		fmt.Println("period: infinite (steady power)")
	default:
		fmt.Printf("period: %.4g s (doubling time %.4g s)\n", tau, analysis.DoublingTime(tau))
	}

	power, step, err := analysis.Uniform(tr.Series(trace.Time), tr.Series(trace.Power))
	if err != nil {
		return err
	}
	ps := analysis.PowerSpectrum(power)
	fmt.Println(viz.Plot(ps[1:], 80, 15, "power spectrum (P)"))
	fmt.Println()
	if f := analysis.DominantFrequency(power, step); f > 0 {
		fmt.Printf("dominant frequency: %.4g hz (period %.4g s)\n", f, 1/f)
	}
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	p := tea.NewProgram(viz.NewReplay(tr, args[0]), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// openOutput returns stdout when no output file is set.
func openOutput() (io.WriteCloser, error) {
	if output == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(output)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportWith(runID string, write func(io.Writer, *trace.Trace) error) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	w, err := openOutput()
	if err != nil {
		return err
	}
	if err := write(w, tr); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return exportWith(args[0], func(w io.Writer, tr *trace.Trace) error {
		return export.JSON(w, tr, stride)
	})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return exportWith(args[0], func(w io.Writer, tr *trace.Trace) error {
		return export.CSV(w, tr, stride)
	})
}

func exportChart(cmd *cobra.Command, args []string) error {
	opts := export.DefaultChartOptions()
	opts.Title = args[0]
	if svg {
		opts.Format = export.SVG
	}
	if output == "" {
		output = args[0] + "." + string(opts.Format)
	}
	qs := make([]trace.Quantity, len(quantities))
	for i, q := range quantities {
		qs[i] = trace.Quantity(q)
	}
	return exportWith(args[0], func(w io.Writer, tr *trace.Trace) error {
		return export.Chart(w, tr, qs, opts)
	})
}

func printNuclearData(cmd *cobra.Command, args []string) error {
	var (
		table *nucdata.Table
		err   error
	)
	if dataFile != "" {
		table, err = nucdata.LoadFile(dataFile)
	} else {
		table, err = nucdata.Default()
	}
	if err != nil {
		return err
	}

	fmt.Printf("thermal boundary: %g eV\n\n", table.ThermalBoundary())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUCLIDE\tSIGMA_F TH\tSIGMA_C TH\tSIGMA_F FAST\tSIGMA_C FAST\tHALF-LIFE (s)\tMOLAR MASS (kg/mol)")
	for _, n := range table.Nuclides() {
		fission, _ := table.Groups(n, nucdata.Fission)
		capture, _ := table.Groups(n, nucdata.Capture)
		half := "stable"
		if h, err := table.HalfLife(n, nucdata.BetaMinus); err == nil && !math.IsInf(h, 1) {
			half = fmt.Sprintf("%.4g", h)
		}
		molar := "-"
		if m, err := table.MolarMass(n); err == nil {
			molar = fmt.Sprintf("%.4g", m)
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%s\t%s\n", n, fission.Thermal, capture.Thermal, fission.Fast, capture.Fast, half, molar)
	}
	return w.Flush()
}
