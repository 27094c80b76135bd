package results

import (
	"fmt"
	"io"
)

// Summary aggregates statistics across the rows of a Table.
type Summary struct {
	Runs            int
	TotalFinished   int
	TotalRejects    int
	MeanUtilization float64
	MaxUtilization  float64
	MeanFullRate    float64 // averaged over both lanes
	MeanEmptyRate   float64 // averaged over both lanes
	RejectingRuns   int     // runs with at least one rejection
}

// Summarize computes aggregate statistics from a Table.
// Safe for nil or empty tables (returns zero-value fields).
func Summarize(t *Table) *Summary {
	s := &Summary{}
	if t == nil {
		return s
	}
	rows := t.Rows()
	s.Runs = len(rows)
	if s.Runs == 0 {
		return s
	}
	var util, full, empty float64
	for _, r := range rows {
		s.TotalFinished += r.FinishedGrocery + r.FinishedFrozen
		rejects := r.RejectsGrocery + r.RejectsFrozen
		s.TotalRejects += rejects
		if rejects > 0 {
			s.RejectingRuns++
		}
		util += r.WorkerUtil
		if r.WorkerUtil > s.MaxUtilization {
			s.MaxUtilization = r.WorkerUtil
		}
		full += (r.FullRateGrocery + r.FullRateFrozen) / 2
		empty += (r.EmptyRateGrocery + r.EmptyRateFrozen) / 2
	}
	n := float64(s.Runs)
	s.MeanUtilization = util / n
	s.MeanFullRate = full / n
	s.MeanEmptyRate = empty / n
	return s
}

// Print writes the summary in a human-readable block.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Warehouse Simulation Summary ===")
	fmt.Fprintf(w, "Runs                 : %d\n", s.Runs)
	fmt.Fprintf(w, "Shipments Finished   : %d\n", s.TotalFinished)
	fmt.Fprintf(w, "Shipments Rejected   : %d (in %d runs)\n", s.TotalRejects, s.RejectingRuns)
	if s.Runs > 0 {
		fmt.Fprintf(w, "Mean Utilization     : %.4f\n", s.MeanUtilization)
		fmt.Fprintf(w, "Max Utilization      : %.4f\n", s.MaxUtilization)
		fmt.Fprintf(w, "Mean Full Rate       : %.4f\n", s.MeanFullRate)
		fmt.Fprintf(w, "Mean Empty Rate      : %.4f\n", s.MeanEmptyRate)
	}
}
