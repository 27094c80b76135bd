// Package results holds the result table produced by simulation runs and
// parameter sweeps, and its export formats (CSV with a YAML header, SQLite).
package results

import (
	"fmt"
	"sort"
	"sync"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

// Row is one simulation result together with the index of the parameter
// combination that produced it.
type Row struct {
	Index int
	sim.Result
}

// Columns lists the result columns in export order.
var Columns = []string{
	"λ_g", "λ_f", "p_g", "p_f", "Q_g", "Q_f", "n", "duration",
	"rejects_g", "rejects_f", "finished_g", "finished_f",
	"worker_util", "avg_wait_g", "avg_wait_f",
	"full_rate_g", "full_rate_f", "empty_rate_g", "empty_rate_f",
}

// columnAliases maps ASCII spellings to canonical column names.
var columnAliases = map[string]string{
	"lambda_g": "λ_g",
	"lambda_f": "λ_f",
	"q_g":      "Q_g",
	"q_f":      "Q_f",
}

// CanonicalColumn resolves aliases and reports whether name is a known column.
func CanonicalColumn(name string) (string, bool) {
	if alias, ok := columnAliases[name]; ok {
		name = alias
	}
	for _, c := range Columns {
		if c == name {
			return c, true
		}
	}
	return "", false
}

// Value returns the row's value for a column as float64.
func (r Row) Value(column string) (float64, error) {
	name, ok := CanonicalColumn(column)
	if !ok {
		return 0, fmt.Errorf("unknown column %q", column)
	}
	switch name {
	case "λ_g":
		return r.GroceryRate, nil
	case "λ_f":
		return r.FrozenRate, nil
	case "p_g":
		return r.GroceryService, nil
	case "p_f":
		return r.FrozenService, nil
	case "Q_g":
		return float64(r.GroceryCapacity), nil
	case "Q_f":
		return float64(r.FrozenCapacity), nil
	case "n":
		return float64(r.Workers), nil
	case "duration":
		return r.Duration, nil
	case "rejects_g":
		return float64(r.RejectsGrocery), nil
	case "rejects_f":
		return float64(r.RejectsFrozen), nil
	case "finished_g":
		return float64(r.FinishedGrocery), nil
	case "finished_f":
		return float64(r.FinishedFrozen), nil
	case "worker_util":
		return r.WorkerUtil, nil
	case "avg_wait_g":
		return r.AvgWaitGrocery, nil
	case "avg_wait_f":
		return r.AvgWaitFrozen, nil
	case "full_rate_g":
		return r.FullRateGrocery, nil
	case "full_rate_f":
		return r.FullRateFrozen, nil
	case "empty_rate_g":
		return r.EmptyRateGrocery, nil
	default:
		return r.EmptyRateFrozen, nil
	}
}

// Table collects result rows (goroutine-safe).
type Table struct {
	mu   sync.Mutex
	rows []Row
}

// NewTable creates an empty table with room for n rows.
func NewTable(n int) *Table {
	return &Table{rows: make([]Row, 0, n)}
}

// Append adds one row.
func (t *Table) Append(r Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, r)
}

// AppendAll adds a batch of rows under a single lock.
func (t *Table) AppendAll(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// SortByIndex orders rows by combination index.
func (t *Table) SortByIndex() {
	t.mu.Lock()
	defer t.mu.Unlock()
	sort.SliceStable(t.rows, func(i, j int) bool { return t.rows[i].Index < t.rows[j].Index })
}

// Column returns one column's values in row order.
func (t *Table) Column(name string) ([]float64, error) {
	rows := t.Rows()
	vals := make([]float64, len(rows))
	for i, r := range rows {
		v, err := r.Value(name)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// XY returns two columns as paired series, the input a plotting consumer needs.
func (t *Table) XY(x, y string) ([]float64, []float64, error) {
	xs, err := t.Column(x)
	if err != nil {
		return nil, nil, err
	}
	ys, err := t.Column(y)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// Count returns how many rows have the given value in a column.
func (t *Table) Count(column string, value float64) (int, error) {
	vals, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range vals {
		if v == value {
			n++
		}
	}
	return n, nil
}
