// Package sweep expands Cartesian grids of warehouse parameters and runs one
// independent simulation per combination across a pool of goroutines.
package sweep

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

// Limits on sweep size. A grid past these is a config mistake, not a workload.
const (
	MaxAxisValues   = 1_000_000
	MaxCombinations = 1_000_000
)

// Values is the set of values one parameter takes in a sweep. A scalar is a
// single-element Values, so grid expansion has a single code path.
type Values []float64

// Scalar wraps one value.
func Scalar(v float64) Values {
	return Values{v}
}

// Range returns start, start+step, ... up to and including stop.
func Range(start, stop, step float64) (Values, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("range bounds must be finite, got start=%v stop=%v step=%v", start, stop, step)
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("range step must be positive, got %v", step)
	}
	if stop < start {
		return nil, fmt.Errorf("range stop %v is below start %v", stop, start)
	}
	count := math.Floor((stop-start)/step+1e-9) + 1
	if math.IsInf(count, 0) || count > MaxAxisValues {
		return nil, fmt.Errorf("range start=%v stop=%v step=%v has more than %d values", start, stop, step, MaxAxisValues)
	}
	vals := make(Values, int(count))
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	return vals, nil
}

// rangeSpec is the mapping form of Values in YAML.
type rangeSpec struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// UnmarshalYAML accepts a scalar, a sequence, or a {start, stop, step} mapping.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = Scalar(f)
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = fs
	case yaml.MappingNode:
		var r rangeSpec
		r.Step = 1
		if err := node.Decode(&r); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		vals, err := Range(r.Start, r.Stop, r.Step)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = vals
	default:
		return fmt.Errorf("line %d: expected a number, a list or a {start, stop, step} range", node.Line)
	}
	return nil
}

// Grid holds the values of each of the eight parameters.
type Grid struct {
	GroceryRate     Values `yaml:"lambda_g"`
	FrozenRate      Values `yaml:"lambda_f"`
	GroceryService  Values `yaml:"p_g"`
	FrozenService   Values `yaml:"p_f"`
	GroceryCapacity Values `yaml:"q_g"`
	FrozenCapacity  Values `yaml:"q_f"`
	Workers         Values `yaml:"n"`
	Duration        Values `yaml:"duration"`
}

// axisNames follows the fixed enumeration order of the product.
var axisNames = []string{"λ_g", "λ_f", "p_g", "p_f", "Q_g", "Q_f", "n", "duration"}

func (g Grid) axes() []Values {
	return []Values{
		g.GroceryRate, g.FrozenRate, g.GroceryService, g.FrozenService,
		g.GroceryCapacity, g.FrozenCapacity, g.Workers, g.Duration,
	}
}

// Size returns the number of combinations in the grid, saturating at
// math.MaxInt when the product overflows.
func (g Grid) Size() int {
	n := 1
	for _, axis := range g.axes() {
		if len(axis) == 0 {
			return 0
		}
		if n > math.MaxInt/len(axis) {
			return math.MaxInt
		}
		n *= len(axis)
	}
	return n
}

// Expand returns every combination in lexicographic product order: λ_g varies
// slowest and duration fastest. Every combination is validated before
// anything runs, so a bad value fails the whole sweep up front.
func (g Grid) Expand() ([]sim.Params, error) {
	axes := g.axes()
	for i, axis := range axes {
		if len(axis) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", axisNames[i])
		}
	}

	size := g.Size()
	if size > MaxCombinations {
		return nil, fmt.Errorf("grid has more than %d combinations", MaxCombinations)
	}

	combos := make([]sim.Params, 0, size)
	idx := make([]int, len(axes))
	for {
		v := make([]float64, len(axes))
		for i, axis := range axes {
			v[i] = axis[idx[i]]
		}
		p, err := sim.NewParams(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
		if err != nil {
			return nil, fmt.Errorf("combination %d: %w", len(combos), err)
		}
		combos = append(combos, p)

		// Odometer increment, last axis first.
		i := len(axes) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(axes[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return combos, nil
		}
	}
}
