package sim

import "math"

// Params is one parameter tuple of the warehouse model.
type Params struct {
	GroceryRate     float64 // λ_g: grocery arrivals per time unit
	FrozenRate      float64 // λ_f: frozen arrivals per time unit
	GroceryService  float64 // p_g: mean grocery processing time
	FrozenService   float64 // p_f: mean frozen processing time
	GroceryCapacity int     // Q_g: grocery queue capacity (must be > 0)
	FrozenCapacity  int     // Q_f: frozen queue capacity (must be > 0)
	Workers         int     // n: size of the shared worker pool (may be 0)
	Duration        float64 // simulation horizon
}

// NewParams builds Params from raw numeric values, in the order
// λ_g, λ_f, p_g, p_f, Q_g, Q_f, n, duration. Capacities and the worker count
// must be integral; everything is then checked by Validate.
func NewParams(lambdaG, lambdaF, pG, pF, qG, qF, n, duration float64) (Params, error) {
	capG, err := count("Q_g", qG)
	if err != nil {
		return Params{}, err
	}
	capF, err := count("Q_f", qF)
	if err != nil {
		return Params{}, err
	}
	workers, err := count("n", n)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		GroceryRate:     lambdaG,
		FrozenRate:      lambdaF,
		GroceryService:  pG,
		FrozenService:   pF,
		GroceryCapacity: capG,
		FrozenCapacity:  capF,
		Workers:         workers,
		Duration:        duration,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// count converts a non-negative integral float to int.
func count(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, newConfigError(field, v, "must be an integer")
	}
	if v < 0 {
		return 0, newConfigError(field, v, "must be non-negative")
	}
	if v > math.MaxInt32 {
		return 0, newConfigError(field, v, "is too large")
	}
	return int(v), nil
}

// Validate checks that every parameter is usable. It returns a *ConfigError.
func (p Params) Validate() error {
	positives := []struct {
		field string
		val   float64
	}{
		{"λ_g", p.GroceryRate},
		{"λ_f", p.FrozenRate},
		{"p_g", p.GroceryService},
		{"p_f", p.FrozenService},
		{"duration", p.Duration},
	}
	for _, f := range positives {
		if err := validateFinitePositive(f.field, f.val); err != nil {
			return err
		}
	}
	if p.GroceryCapacity <= 0 {
		return newConfigError("Q_g", float64(p.GroceryCapacity), "must be positive")
	}
	if p.FrozenCapacity <= 0 {
		return newConfigError("Q_f", float64(p.FrozenCapacity), "must be positive")
	}
	if p.Workers < 0 {
		return newConfigError("n", float64(p.Workers), "must be non-negative")
	}
	return nil
}

func validateFinitePositive(field string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return newConfigError(field, val, "must be a finite number")
	}
	if val <= 0 {
		return newConfigError(field, val, "must be positive")
	}
	return nil
}

// Rate returns the arrival rate of a lane.
func (p Params) Rate(l Lane) float64 {
	if l == Grocery {
		return p.GroceryRate
	}
	return p.FrozenRate
}

// Service returns the mean processing time of a lane.
func (p Params) Service(l Lane) float64 {
	if l == Grocery {
		return p.GroceryService
	}
	return p.FrozenService
}

// Capacity returns the queue capacity of a lane.
func (p Params) Capacity(l Lane) int {
	if l == Grocery {
		return p.GroceryCapacity
	}
	return p.FrozenCapacity
}
