package trace

import (
	"fmt"
	"io"
	"sort"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalChoices     int
	TieBreaks        int            // choices made with equal queue lengths
	ChoicesByLane    map[string]int // lane → times chosen
	TotalRejections  int
	RejectionsByLane map[string]int // lane → shipments turned away
	FirstRejection   float64        // clock of the earliest rejection; -1 if none
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ChoicesByLane:    make(map[string]int),
		RejectionsByLane: make(map[string]int),
		FirstRejection:   -1,
	}
	if st == nil {
		return summary
	}

	summary.TotalChoices = len(st.Choices)
	for _, c := range st.Choices {
		summary.ChoicesByLane[c.Chosen]++
		if c.Tie() {
			summary.TieBreaks++
		}
	}

	summary.TotalRejections = len(st.Rejections)
	for _, r := range st.Rejections {
		summary.RejectionsByLane[r.Lane]++
		if summary.FirstRejection < 0 || r.Clock < summary.FirstRejection {
			summary.FirstRejection = r.Clock
		}
	}
	return summary
}

// Print writes the summary in a human-readable block, lanes in name order.
func (s *TraceSummary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Lane choices         : %d (%d tie-breaks)\n", s.TotalChoices, s.TieBreaks)
	for _, lane := range sortedKeys(s.ChoicesByLane) {
		fmt.Fprintf(w, "  chose %-13s: %d\n", lane, s.ChoicesByLane[lane])
	}
	fmt.Fprintf(w, "Rejections           : %d\n", s.TotalRejections)
	for _, lane := range sortedKeys(s.RejectionsByLane) {
		fmt.Fprintf(w, "  rejected %-10s: %d\n", lane, s.RejectionsByLane[lane])
	}
	if s.FirstRejection >= 0 {
		fmt.Fprintf(w, "First rejection at   : %.4f\n", s.FirstRejection)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
