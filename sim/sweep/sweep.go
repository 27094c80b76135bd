package sweep

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/warehouse-sim/warehouse-sim/sim"
	"github.com/warehouse-sim/warehouse-sim/sim/results"
)

// SimulateFunc runs one simulation. sim.SimulateWithSeed is the default.
type SimulateFunc func(p sim.Params, seed int64) (sim.Result, error)

// Options configures a sweep.
type Options struct {
	// Threads is the number of worker goroutines; <= 0 means runtime.NumCPU().
	Threads int
	// Seed is the master seed shared by every combination.
	Seed int64
	// Metrics is optional.
	Metrics *Metrics
	// OnResult, when set, is called once per finished run. Calls are
	// serialized but arrive in completion order, not index order.
	OnResult func(results.Row)
	// Simulate overrides the per-run simulation.
	Simulate SimulateFunc
}

func (o Options) threads(jobs int) int {
	n := o.Threads
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

// RunError reports the first run that failed. It aborts the whole sweep.
type RunError struct {
	Index  int
	Params sim.Params
	Err    error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("sweep combination %d (%+v): %v", e.Index, e.Params, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Run expands grid and simulates every combination. The returned table has
// exactly one row per combination, ordered by combination index.
func Run(ctx context.Context, grid Grid, opts Options) (*results.Table, error) {
	combos, err := grid.Expand()
	if err != nil {
		return nil, err
	}
	return RunParams(ctx, combos, opts)
}

// RunParams simulates an explicit list of combinations. Workers pull the next
// index as they free up, so long runs do not hold up short ones. The first
// failure cancels the remaining work and is returned as a *RunError.
func RunParams(ctx context.Context, combos []sim.Params, opts Options) (*results.Table, error) {
	simulate := opts.Simulate
	if simulate == nil {
		simulate = sim.SimulateWithSeed
	}
	threads := opts.threads(len(combos))
	logrus.Infof("sweep: %d combinations on %d workers, seed %d", len(combos), threads, opts.Seed)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	next := make(chan int)
	g.Go(func() error {
		defer close(next)
		for i := range combos {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case next <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// Each worker owns one partial slice; nothing is shared until Wait returns.
	partials := make([][]results.Row, threads)
	var callbackMu sync.Mutex
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for i := range next {
				if gctx.Err() != nil {
					continue
				}
				opts.Metrics.started()
				runStart := time.Now()
				row, err := runOne(simulate, i, combos[i], opts.Seed)
				if err != nil {
					opts.Metrics.failed()
					logrus.Errorf("sweep: worker %d: %v", w, err)
					return err
				}
				opts.Metrics.completed(row, time.Since(runStart))
				partials[w] = append(partials[w], row)
				if opts.OnResult != nil {
					callbackMu.Lock()
					opts.OnResult(row)
					callbackMu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := results.NewTable(len(combos))
	for _, rows := range partials {
		table.AppendAll(rows)
	}
	table.SortByIndex()
	logrus.Infof("sweep: %d runs done in %v", table.Len(), time.Since(start).Round(time.Millisecond))
	return table, nil
}

// runOne simulates one combination, turning errors and panics into *RunError.
func runOne(simulate SimulateFunc, idx int, p sim.Params, seed int64) (row results.Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Debugf("sweep: combination %d panicked:\n%s", idx, debug.Stack())
			err = &RunError{Index: idx, Params: p, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	res, err := simulate(p, seed)
	if err != nil {
		return results.Row{}, &RunError{Index: idx, Params: p, Err: err}
	}
	return results.Row{Index: idx, Result: res}, nil
}
