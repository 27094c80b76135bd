package cmd

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/results"
	"github.com/warehouse-sim/warehouse-sim/sim/sweep"
)

var (
	// CLI flags for a sweep. Each parameter takes one value or a comma list.
	sweepConfigPath  string
	sweepSeed        int64
	sweepThreads     int
	sweepMetricsFile string
	sweepGroceryRate []float64
	sweepFrozenRate  []float64
	sweepGrocerySvc  []float64
	sweepFrozenSvc   []float64
	sweepGroceryCap  []float64
	sweepFrozenCap   []float64
	sweepWorkers     []float64
	sweepDuration    []float64
)

// sweepCmd runs one simulation per combination of the parameter grid
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a parallel parameter sweep over the Cartesian product of parameter values",
	Run: func(cmd *cobra.Command, args []string) {
		var cfg *SweepConfig
		if sweepConfigPath != "" {
			var err error
			cfg, err = loadSweepConfig(sweepConfigPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		grid, seed, threads := resolveSweep(cmd.Flags(), cfg)

		combos, err := grid.Expand()
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		reg := prometheus.NewRegistry()
		metrics := sweep.NewMetrics(reg)

		startTime := time.Now()
		table, err := sweep.RunParams(cmd.Context(), combos, sweep.Options{
			Threads: threads,
			Seed:    seed,
			Metrics: metrics,
		})
		if err != nil {
			logrus.Fatalf("sweep aborted: %v", err)
		}
		logrus.Infof("Sweep complete in %v", time.Since(startTime))

		if sweepMetricsFile != "" {
			if err := prometheus.WriteToTextfile(sweepMetricsFile, reg); err != nil {
				logrus.Fatalf("writing metrics: %v", err)
			}
		}

		header := results.NewHeader("sweep", seed, threads, len(combos))
		if err := emit(cmd.Context(), cmd.OutOrStdout(), header, table); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// resolveSweep merges the optional config file with the command line.
// A flag set explicitly always wins; a parameter missing from the file
// falls back to the flag default.
func resolveSweep(flags *pflag.FlagSet, cfg *SweepConfig) (sweep.Grid, int64, int) {
	var grid sweep.Grid
	seed, threads := sweepSeed, sweepThreads
	if cfg != nil {
		grid = cfg.Parameters
		if cfg.Seed != nil && !flags.Changed("seed") {
			seed = *cfg.Seed
		}
		if cfg.Threads != nil && !flags.Changed("threads") {
			threads = *cfg.Threads
		}
	}

	pick := func(name string, fromFile *sweep.Values, fromFlag []float64) {
		if flags.Changed(name) || len(*fromFile) == 0 {
			*fromFile = append(sweep.Values(nil), fromFlag...)
		}
	}
	pick("lambda-g", &grid.GroceryRate, sweepGroceryRate)
	pick("lambda-f", &grid.FrozenRate, sweepFrozenRate)
	pick("p-g", &grid.GroceryService, sweepGrocerySvc)
	pick("p-f", &grid.FrozenService, sweepFrozenSvc)
	pick("q-g", &grid.GroceryCapacity, sweepGroceryCap)
	pick("q-f", &grid.FrozenCapacity, sweepFrozenCap)
	pick("n", &grid.Workers, sweepWorkers)
	pick("duration", &grid.Duration, sweepDuration)
	return grid, seed, threads
}

func init() {
	registerSweepFlags(sweepCmd.Flags())
}

// registerSweepFlags binds the sweep flags to fs, resetting them to defaults.
func registerSweepFlags(fs *pflag.FlagSet) {
	fs.StringVar(&sweepConfigPath, "config", "", "YAML sweep file (flags set on the command line override it)")
	fs.Int64Var(&sweepSeed, "seed", sim.DefaultSeed, "Master seed shared by every combination")
	fs.IntVar(&sweepThreads, "threads", runtime.NumCPU(), "Number of worker goroutines")
	fs.StringVar(&sweepMetricsFile, "metrics-file", "", "Write sweep metrics in Prometheus text format to this file")

	fs.Float64SliceVar(&sweepGroceryRate, "lambda-g", []float64{1.0}, "Grocery arrival rates")
	fs.Float64SliceVar(&sweepFrozenRate, "lambda-f", []float64{1.0}, "Frozen arrival rates")
	fs.Float64SliceVar(&sweepGrocerySvc, "p-g", []float64{0.5}, "Mean grocery processing times")
	fs.Float64SliceVar(&sweepFrozenSvc, "p-f", []float64{0.5}, "Mean frozen processing times")
	fs.Float64SliceVar(&sweepGroceryCap, "q-g", []float64{10}, "Grocery queue capacities")
	fs.Float64SliceVar(&sweepFrozenCap, "q-f", []float64{10}, "Frozen queue capacities")
	fs.Float64SliceVar(&sweepWorkers, "n", []float64{2}, "Worker counts")
	fs.Float64SliceVar(&sweepDuration, "duration", []float64{100}, "Simulated time horizons")
}
