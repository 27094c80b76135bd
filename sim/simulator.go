// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// DefaultSeed is the master seed used by Simulate.
const DefaultSeed int64 = 42

// Run is one simulation: an engine, the warehouse state and the worker pool
// for a single parameter tuple. A Run is used once and then discarded.
type Run struct {
	Params    Params
	Engine    *Engine
	Warehouse *Warehouse
	Workers   []*Worker
	Streams   *Streams
	Trace     *trace.SimulationTrace // nil unless EnableTrace was called

	executed bool
	result   Result
}

// NewRun validates p and wires up the engine, warehouse and n workers.
// Arrival processes and workers are scheduled but nothing has run yet.
func NewRun(p Params, seed int64) (*Run, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := NewEngine()
	streams := NewStreams(seed)
	wh := NewWarehouse(e, streams, p)

	workers := make([]*Worker, p.Workers)
	for i := range workers {
		workers[i] = NewWorker(i, wh, streams.Service(i), p)
		workers[i].Start(e)
	}
	if p.Workers == 0 {
		logrus.Warnf("simulation with zero workers: every accepted shipment stays queued")
	}

	return &Run{
		Params:    p,
		Engine:    e,
		Warehouse: wh,
		Workers:   workers,
		Streams:   streams,
	}, nil
}

// EnableTrace turns on decision tracing for this run. It must be called
// before Execute; a disabled config leaves tracing off.
func (r *Run) EnableTrace(cfg trace.TraceConfig) {
	if !cfg.Enabled() || r.executed {
		return
	}
	r.Trace = trace.NewSimulationTrace(cfg)
	r.Warehouse.EnableTrace(r.Trace)
}

// Execute runs the engine to the horizon, finalizes workers and queues and
// returns the result row. Calling it again returns the same row.
func (r *Run) Execute() Result {
	if r.executed {
		return r.result
	}
	logrus.Debugf("simulating %+v", r.Params)

	r.Engine.RunUntil(r.Params.Duration)
	now := r.Engine.Now()
	for _, w := range r.Workers {
		w.Finalize(now)
	}
	r.Warehouse.Finalize()

	r.result = r.collect()
	r.executed = true
	logrus.Debugf("simulation done at t=%v: finished %d/%d, rejected %d/%d",
		now, r.result.FinishedGrocery, r.result.FinishedFrozen, r.result.RejectsGrocery, r.result.RejectsFrozen)
	return r.result
}

func (r *Run) collect() Result {
	res := newResult(r.Params)
	horizon := r.Params.Duration
	wh := r.Warehouse

	g, f := wh.Queue(Grocery), wh.Queue(Frozen)
	res.RejectsGrocery = g.RejectedCount()
	res.RejectsFrozen = f.RejectedCount()
	res.FinishedGrocery = len(wh.Completed(Grocery))
	res.FinishedFrozen = len(wh.Completed(Frozen))

	res.WorkerUtil = utilization(r.Workers, horizon)
	res.AvgWaitGrocery = meanWait(wh.Completed(Grocery))
	res.AvgWaitFrozen = meanWait(wh.Completed(Frozen))

	res.FullRateGrocery = fraction(g.FullTime(), horizon)
	res.FullRateFrozen = fraction(f.FullTime(), horizon)
	res.EmptyRateGrocery = fraction(g.EmptyTime(), horizon)
	res.EmptyRateFrozen = fraction(f.EmptyTime(), horizon)
	return res
}

// Simulate runs one simulation of p with DefaultSeed.
func Simulate(p Params) (Result, error) {
	return SimulateWithSeed(p, DefaultSeed)
}

// SimulateWithSeed runs one simulation of p with the given master seed.
// Identical parameters and seed always produce the identical row.
func SimulateWithSeed(p Params, seed int64) (Result, error) {
	run, err := NewRun(p, seed)
	if err != nil {
		return Result{}, err
	}
	return run.Execute(), nil
}
