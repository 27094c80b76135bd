// Aggregates one simulation run into a single result row:
// rejections, completions, utilization, waits and queue dwell rates.

package sim

import "math"

// Result is the result row of one simulation run.
type Result struct {
	GroceryRate     float64 `json:"λ_g" yaml:"lambda_g"`
	FrozenRate      float64 `json:"λ_f" yaml:"lambda_f"`
	GroceryService  float64 `json:"p_g" yaml:"p_g"`
	FrozenService   float64 `json:"p_f" yaml:"p_f"`
	GroceryCapacity int     `json:"Q_g" yaml:"q_g"`
	FrozenCapacity  int     `json:"Q_f" yaml:"q_f"`
	Workers         int     `json:"n" yaml:"n"`
	Duration        float64 `json:"duration" yaml:"duration"`

	RejectsGrocery  int `json:"rejects_g" yaml:"rejects_g"`
	RejectsFrozen   int `json:"rejects_f" yaml:"rejects_f"`
	FinishedGrocery int `json:"finished_g" yaml:"finished_g"`
	FinishedFrozen  int `json:"finished_f" yaml:"finished_f"`

	// WorkerUtil is the mean fraction of the horizon each worker spent processing.
	WorkerUtil float64 `json:"worker_util" yaml:"worker_util"`
	// Mean waits are 0 for a lane with no completions.
	AvgWaitGrocery float64 `json:"avg_wait_g" yaml:"avg_wait_g"`
	AvgWaitFrozen  float64 `json:"avg_wait_f" yaml:"avg_wait_f"`
	// Fractions of the horizon each queue spent at capacity and empty.
	FullRateGrocery  float64 `json:"full_rate_g" yaml:"full_rate_g"`
	FullRateFrozen   float64 `json:"full_rate_f" yaml:"full_rate_f"`
	EmptyRateGrocery float64 `json:"empty_rate_g" yaml:"empty_rate_g"`
	EmptyRateFrozen  float64 `json:"empty_rate_f" yaml:"empty_rate_f"`
}

// Params returns the input parameters recorded in the row.
func (r Result) Params() Params {
	return Params{
		GroceryRate:     r.GroceryRate,
		FrozenRate:      r.FrozenRate,
		GroceryService:  r.GroceryService,
		FrozenService:   r.FrozenService,
		GroceryCapacity: r.GroceryCapacity,
		FrozenCapacity:  r.FrozenCapacity,
		Workers:         r.Workers,
		Duration:        r.Duration,
	}
}

// newResult copies the input parameters into an otherwise empty row.
func newResult(p Params) Result {
	return Result{
		GroceryRate:     p.GroceryRate,
		FrozenRate:      p.FrozenRate,
		GroceryService:  p.GroceryService,
		FrozenService:   p.FrozenService,
		GroceryCapacity: p.GroceryCapacity,
		FrozenCapacity:  p.FrozenCapacity,
		Workers:         p.Workers,
		Duration:        p.Duration,
	}
}

// meanWait averages start-minus-arrival over completions; 0 for none.
func meanWait(completed []Completion) float64 {
	if len(completed) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range completed {
		total += c.Shipment.Wait()
	}
	return total / float64(len(completed))
}

// utilization is the mean over workers of working time divided by horizon.
func utilization(workers []*Worker, horizon float64) float64 {
	if len(workers) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range workers {
		total += w.WorkingTime()
	}
	return fraction(total/float64(len(workers)), horizon)
}

// fraction divides part by whole, clamped to [0, 1] against rounding drift.
func fraction(part, whole float64) float64 {
	return math.Min(1, math.Max(0, part/whole))
}
