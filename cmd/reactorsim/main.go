package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/logging"
)

var (
	dataDir  string
	logLevel string
	devLog   bool
	// run and sweep
	configFile    string
	preset        string
	runName       string
	dt            float64
	duration      float64
	stride        int
	fuelMass      float64
	u235          float64
	fastReactions bool
	mode          string
	nominal       float64
	fixedThermal  float64
	// sweep
	target    float64
	finalTime float64
	workers   int
	// plot and export
	quantity   string
	quantities []string
	width      int
	height     int
	svg        bool
	output     string
	// analyze
	tailFraction float64
	// nucdata
	dataFile string
	log      = logr.Discard()
)

// main wires the reactorsim commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "reactorsim",
		Short:         "two-group point-kinetics reactor simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return err
			}
			log, err = logging.New(level, viper.GetBool("dev-log"))
			if err != nil {
				return err
			}
			dataDir = viper.GetString("data")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".reactorsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity (info, debug, trace)")
	rootCmd.PersistentFlags().BoolVar(&devLog, "dev-log", false, "human readable log output")
	viper.SetEnvPrefix("reactorsim")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"data", "log-level", "dev-log"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trace",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addCoreFlags(runCmd)
	runCmd.Flags().StringVar(&mode, "mode", "", "control mode (proportional, fixed)")
	runCmd.Flags().Float64Var(&nominal, "nominal", config.DefaultNominalPower, "nominal power in W")
	runCmd.Flags().Float64Var(&fixedThermal, "sigma-thermal", 0, "thermal control insertion in fixed mode (1/s)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "search the fixed thermal insertion that holds a target power",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addCoreFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&target, "target", 1e8, "target power in W")
	sweepCmd.Flags().Float64Var(&finalTime, "final-time", 0, "rerun the best insertion over this horizon and store it")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel candidate runs (default GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&quantity, "quantity", "q", "P", "series to plot")
	plotCmd.Flags().IntVar(&width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 10, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "reactor period and power oscillation analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&tailFraction, "tail", 0.2, "fraction of the run used for the period fit")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "scrub through a stored run interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render stored series to an image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportChart,
	}
	exportPNGCmd.Flags().StringSliceVar(&quantities, "quantities", []string{"P"}, "series to draw")
	exportPNGCmd.Flags().BoolVar(&svg, "svg", false, "write SVG instead of PNG")
	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportPNGCmd} {
		c.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
		c.Flags().IntVar(&stride, "stride", 1, "keep every n-th sample")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-10s %s\n", name, config.GetPreset(name).Description)
			}
			return nil
		},
	}

	nucdataCmd := &cobra.Command{
		Use:   "nucdata",
		Short: "print the nuclear data table",
		Args:  cobra.NoArgs,
		RunE:  printNuclearData,
	}
	nucdataCmd.Flags().StringVar(&dataFile, "file", "", "nuclide table to load instead of the embedded one")

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, viewCmd, exportJSONCmd, exportCSVCmd, exportPNGCmd, presetsCmd, nucdataCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addCoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&runName, "name", "", "run name")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in s")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated time in s")
	cmd.Flags().IntVar(&stride, "stride", 1, "store every n-th sample")
	cmd.Flags().Float64Var(&fuelMass, "fuel-mass", 0, "fuel mass in kg")
	cmd.Flags().Float64Var(&u235, "u235", 0, "U235 enrichment in percent; U238 takes the rest")
	cmd.Flags().BoolVar(&fastReactions, "fast-reactions", false, "include fast-group fission and capture")
}

// loadConfig applies the preset, then the config file on top of it, then
// explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Overlay(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Core.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Core.Duration = duration
	}
	if flags.Changed("fuel-mass") {
		cfg.Core.FuelMass = fuelMass
	}
	if flags.Changed("u235") {
		cfg.Core.Fuel.U235 = u235
		cfg.Core.Fuel.U238 = 100 - u235 - cfg.Core.Fuel.Pu239 - cfg.Core.Fuel.Th232
	}
	if flags.Changed("fast-reactions") {
		cfg.Core.Params.FastReactions = fastReactions
	}
	if flags.Lookup("mode") != nil && flags.Changed("mode") {
		cfg.Control.Mode = config.Mode(mode)
	}
	if flags.Lookup("nominal") != nil && flags.Changed("nominal") {
		cfg.Control.Nominal = nominal
		cfg.Control.Power = nominal
	}
	if flags.Lookup("sigma-thermal") != nil && flags.Changed("sigma-thermal") {
		cfg.Control.Fixed.Thermal = fixedThermal
	}
	if flags.Lookup("target") != nil && flags.Changed("target") {
		cfg.Sweep.Target = target
	}
	if flags.Lookup("final-time") != nil && flags.Changed("final-time") {
		cfg.Sweep.FinalTime = finalTime
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}
	return cfg, nil
}
