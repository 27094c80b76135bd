package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/results"
	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

var (
	// CLI flags for a single simulation. Capacities and worker count are
	// read as floats so that non-integral values surface as config errors.
	runSeed           int64
	runGroceryRate    float64
	runFrozenRate     float64
	runGroceryService float64
	runFrozenService  float64
	runGroceryCap     float64
	runFrozenCap      float64
	runWorkers        float64
	runDuration       float64
	runTraceLevel     string // Decision trace verbosity
)

// runCmd simulates one parameter tuple and prints its result row
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one warehouse simulation",
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(runTraceLevel) {
			logrus.Fatalf("Invalid trace level: %s", runTraceLevel)
		}
		p, err := sim.NewParams(runGroceryRate, runFrozenRate, runGroceryService, runFrozenService,
			runGroceryCap, runFrozenCap, runWorkers, runDuration)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation: %+v, seed=%d", p, runSeed)
		startTime := time.Now()
		run, err := sim.NewRun(p, runSeed)
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		run.EnableTrace(trace.TraceConfig{Level: trace.TraceLevel(runTraceLevel)})
		res := run.Execute()
		logrus.Infof("Simulation complete in %v", time.Since(startTime))

		table := results.NewTable(1)
		table.Append(results.Row{Index: 0, Result: res})
		header := results.NewHeader("simulate", runSeed, 1, 1)
		if err := emit(cmd.Context(), cmd.OutOrStdout(), header, table); err != nil {
			logrus.Fatalf("%v", err)
		}
		if run.Trace != nil {
			trace.Summarize(run.Trace).Print(os.Stderr)
		}
	},
}

func init() {
	runCmd.Flags().Int64Var(&runSeed, "seed", sim.DefaultSeed, "Master seed for arrival and service streams")
	runCmd.Flags().Float64Var(&runGroceryRate, "lambda-g", 1.0, "Grocery arrival rate (shipments per time unit)")
	runCmd.Flags().Float64Var(&runFrozenRate, "lambda-f", 1.0, "Frozen arrival rate (shipments per time unit)")
	runCmd.Flags().Float64Var(&runGroceryService, "p-g", 0.5, "Mean grocery processing time")
	runCmd.Flags().Float64Var(&runFrozenService, "p-f", 0.5, "Mean frozen processing time")
	runCmd.Flags().Float64Var(&runGroceryCap, "q-g", 10, "Grocery queue capacity")
	runCmd.Flags().Float64Var(&runFrozenCap, "q-f", 10, "Frozen queue capacity")
	runCmd.Flags().Float64Var(&runWorkers, "n", 2, "Number of workers")
	runCmd.Flags().Float64Var(&runDuration, "duration", 100, "Simulated time horizon")
	runCmd.Flags().StringVar(&runTraceLevel, "trace", "none", "Decision trace level (none, decisions)")
}
