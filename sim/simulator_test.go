package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

func baseParams() Params {
	return Params{
		GroceryRate:     1.0,
		FrozenRate:      0.8,
		GroceryService:  0.6,
		FrozenService:   0.9,
		GroceryCapacity: 5,
		FrozenCapacity:  4,
		Workers:         2,
		Duration:        200,
	}
}

func TestSimulate_ResultWithinBounds(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Params)
	}{
		{"moderate load", func(p *Params) {}},
		{"single worker", func(p *Params) { p.Workers = 1 }},
		{"many workers", func(p *Params) { p.Workers = 16 }},
		{"tiny queues", func(p *Params) { p.GroceryCapacity, p.FrozenCapacity = 1, 1 }},
		{"short horizon", func(p *Params) { p.Duration = 0.5 }},
		{"heavy load", func(p *Params) { p.GroceryRate, p.FrozenRate = 20, 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.modify(&p)

			res, err := Simulate(p)
			require.NoError(t, err)

			for name, v := range map[string]float64{
				"worker_util":  res.WorkerUtil,
				"full_rate_g":  res.FullRateGrocery,
				"full_rate_f":  res.FullRateFrozen,
				"empty_rate_g": res.EmptyRateGrocery,
				"empty_rate_f": res.EmptyRateFrozen,
			} {
				assert.GreaterOrEqual(t, v, 0.0, name)
				assert.LessOrEqual(t, v, 1.0, name)
			}
			assert.GreaterOrEqual(t, res.AvgWaitGrocery, 0.0)
			assert.GreaterOrEqual(t, res.AvgWaitFrozen, 0.0)
			assert.LessOrEqual(t, res.FullRateGrocery+res.EmptyRateGrocery, 1.0+1e-9)
			assert.LessOrEqual(t, res.FullRateFrozen+res.EmptyRateFrozen, 1.0+1e-9)
			assert.Equal(t, p, res.Params(), "input parameters are echoed in the row")
		})
	}
}

func TestRun_EveryShipmentIsAccountedFor(t *testing.T) {
	// GIVEN a loaded run that both rejects and leaves work in flight
	p := baseParams()
	p.GroceryRate, p.FrozenRate = 4, 3
	run, err := NewRun(p, 11)
	require.NoError(t, err)

	// WHEN it executes
	res := run.Execute()

	// THEN generated = finished + rejected + queued + in service, per lane
	inService := map[Lane]int{}
	for _, w := range run.Workers {
		if s := w.Current(); s != nil {
			inService[s.Lane]++
		}
	}
	finished := map[Lane]int{Grocery: res.FinishedGrocery, Frozen: res.FinishedFrozen}
	rejected := map[Lane]int{Grocery: res.RejectsGrocery, Frozen: res.RejectsFrozen}
	for _, lane := range Lanes {
		wh := run.Warehouse
		generated := wh.Arrivals(lane).Generated()
		assert.Greater(t, generated, 0, lane.String())
		assert.Equal(t, generated,
			finished[lane]+rejected[lane]+wh.Queue(lane).Len()+inService[lane], lane.String())
	}
	assert.Greater(t, res.RejectsGrocery+res.RejectsFrozen, 0, "load is high enough to reject")
}

func TestRun_CompletionTimestampsAreOrdered(t *testing.T) {
	run, err := NewRun(baseParams(), DefaultSeed)
	require.NoError(t, err)
	run.Execute()

	for _, lane := range Lanes {
		for _, c := range run.Warehouse.Completed(lane) {
			s := c.Shipment
			assert.Equal(t, lane, s.Lane)
			assert.LessOrEqual(t, s.ArrivalTime, s.StartProcessing)
			assert.LessOrEqual(t, s.StartProcessing, s.EndProcessing)
			assert.LessOrEqual(t, s.EndProcessing, run.Params.Duration)
			assert.Equal(t, c.Time, s.EndProcessing)
		}
		for _, s := range run.Warehouse.Queue(lane).Rejected() {
			assert.False(t, s.Started(), "rejected shipments are never processed")
		}
	}
}

func TestRun_UtilizationMatchesWorkerTime(t *testing.T) {
	run, err := NewRun(baseParams(), 3)
	require.NoError(t, err)
	res := run.Execute()

	total := 0.0
	for _, w := range run.Workers {
		assert.LessOrEqual(t, w.WorkingTime(), run.Params.Duration+1e-9)
		total += w.WorkingTime()
	}
	want := total / float64(len(run.Workers)) / run.Params.Duration
	assert.InDelta(t, want, res.WorkerUtil, 1e-12)
}

func TestSimulate_NearZeroArrivals_QueuesStayEmpty(t *testing.T) {
	// GIVEN arrival rates so low nothing arrives within the horizon
	p := baseParams()
	p.GroceryRate, p.FrozenRate = 1e-9, 1e-9

	res, err := Simulate(p)
	require.NoError(t, err)

	// THEN the queues were empty the whole time and nothing happened
	assert.InDelta(t, 1.0, res.EmptyRateGrocery, 1e-9)
	assert.InDelta(t, 1.0, res.EmptyRateFrozen, 1e-9)
	assert.Equal(t, 0.0, res.FullRateGrocery)
	assert.Equal(t, 0.0, res.FullRateFrozen)
	assert.Zero(t, res.RejectsGrocery+res.RejectsFrozen)
	assert.Zero(t, res.FinishedGrocery+res.FinishedFrozen)
	assert.Equal(t, 0.0, res.WorkerUtil)
	assert.Equal(t, 0.0, res.AvgWaitGrocery, "no completions means zero mean wait")
}

func TestSimulate_Overload_QueuesStayFull(t *testing.T) {
	// GIVEN arrivals far beyond what one slow worker can serve
	p := Params{
		GroceryRate: 100, FrozenRate: 100,
		GroceryService: 10, FrozenService: 10,
		GroceryCapacity: 5, FrozenCapacity: 5,
		Workers: 1, Duration: 100,
	}

	res, err := Simulate(p)
	require.NoError(t, err)

	// THEN both queues are full almost all the time and reject heavily
	assert.Greater(t, res.FullRateGrocery, 0.9)
	assert.Greater(t, res.FullRateFrozen, 0.9)
	assert.Less(t, res.EmptyRateGrocery, 0.05)
	assert.Less(t, res.EmptyRateFrozen, 0.05)
	assert.Greater(t, res.RejectsGrocery, 1000)
	assert.Greater(t, res.RejectsFrozen, 1000)
	assert.Greater(t, res.WorkerUtil, 0.9)
}

func TestSimulate_ZeroWorkers(t *testing.T) {
	p := baseParams()
	p.Workers = 0
	p.GroceryRate, p.FrozenRate = 5, 5

	res, err := Simulate(p)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.WorkerUtil)
	assert.Zero(t, res.FinishedGrocery+res.FinishedFrozen)
	assert.Equal(t, 0.0, res.AvgWaitGrocery)
	assert.Equal(t, 0.0, res.AvgWaitFrozen)
	assert.Greater(t, res.RejectsGrocery, 0)
	assert.Greater(t, res.RejectsFrozen, 0)
}

func TestSimulate_ServiceTimeIsAMean(t *testing.T) {
	// Shorter mean processing time must let the same pool finish more work.
	fast, slow := baseParams(), baseParams()
	fast.GroceryService, fast.FrozenService = 0.05, 0.05
	slow.GroceryService, slow.FrozenService = 2, 2

	rf, err := Simulate(fast)
	require.NoError(t, err)
	rs, err := Simulate(slow)
	require.NoError(t, err)

	assert.Greater(t, rf.FinishedGrocery+rf.FinishedFrozen, rs.FinishedGrocery+rs.FinishedFrozen)
	assert.Less(t, rf.WorkerUtil, rs.WorkerUtil)
}

func TestSimulateWithSeed_IsDeterministic(t *testing.T) {
	p := baseParams()

	a, err := SimulateWithSeed(p, 99)
	require.NoError(t, err)
	b, err := SimulateWithSeed(p, 99)
	require.NoError(t, err)
	c, err := SimulateWithSeed(p, 100)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed, same row")
	assert.NotEqual(t, a, c, "different seed, different row")
}

func TestSimulate_UsesDefaultSeed(t *testing.T) {
	a, err := Simulate(baseParams())
	require.NoError(t, err)
	b, err := SimulateWithSeed(baseParams(), DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_Execute_IsIdempotent(t *testing.T) {
	run, err := NewRun(baseParams(), 5)
	require.NoError(t, err)
	first := run.Execute()
	second := run.Execute()
	assert.Equal(t, first, second)
}

func TestNewParams_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		vals  [8]float64
		field string
	}{
		{"non-integral Q_g", [8]float64{1, 1, 1, 1, 2.5, 3, 2, 10}, "Q_g"},
		{"negative Q_f", [8]float64{1, 1, 1, 1, 3, -1, 2, 10}, "Q_f"},
		{"zero Q_g", [8]float64{1, 1, 1, 1, 0, 3, 2, 10}, "Q_g"},
		{"non-integral n", [8]float64{1, 1, 1, 1, 3, 3, 1.5, 10}, "n"},
		{"negative n", [8]float64{1, 1, 1, 1, 3, 3, -2, 10}, "n"},
		{"zero λ_g", [8]float64{0, 1, 1, 1, 3, 3, 2, 10}, "λ_g"},
		{"negative λ_f", [8]float64{1, -1, 1, 1, 3, 3, 2, 10}, "λ_f"},
		{"zero p_g", [8]float64{1, 1, 0, 1, 3, 3, 2, 10}, "p_g"},
		{"infinite p_f", [8]float64{1, 1, 1, math.Inf(1), 3, 3, 2, 10}, "p_f"},
		{"zero duration", [8]float64{1, 1, 1, 1, 3, 3, 2, 0}, "duration"},
		{"NaN duration", [8]float64{1, 1, 1, 1, 3, 3, 2, math.NaN()}, "duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.vals
			_, err := NewParams(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
			require.Error(t, err)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %T", err)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.False(t, errors.Is(err, ErrQueueFull))
		})
	}
}

func TestNewParams_AcceptsIntegralFloats(t *testing.T) {
	p, err := NewParams(1.5, 2, 0.5, 0.25, 5.0, 3.0, 0, 60)
	require.NoError(t, err)
	assert.Equal(t, 5, p.GroceryCapacity)
	assert.Equal(t, 3, p.FrozenCapacity)
	assert.Equal(t, 0, p.Workers)
}

func TestSimulate_InvalidParams_ReturnsConfigErrorWithoutRunning(t *testing.T) {
	p := baseParams()
	p.FrozenCapacity = 0

	_, err := Simulate(p)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Q_f", cfgErr.Field)
	assert.Contains(t, err.Error(), "invalid config: Q_f=0")
}

func TestRun_TraceRecordsEveryDecision(t *testing.T) {
	// GIVEN a loaded run with decision tracing
	p := baseParams()
	p.GroceryRate, p.FrozenRate = 4, 3
	run, err := NewRun(p, 11)
	require.NoError(t, err)
	run.EnableTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})

	// WHEN it executes
	res := run.Execute()

	// THEN every rejection and every lane choice is on record
	require.NotNil(t, run.Trace)
	summary := trace.Summarize(run.Trace)
	assert.Equal(t, res.RejectsGrocery, summary.RejectionsByLane["grocery"])
	assert.Equal(t, res.RejectsFrozen, summary.RejectionsByLane["frozen"])

	inService := 0
	for _, w := range run.Workers {
		if w.Current() != nil {
			inService++
		}
	}
	assert.Equal(t, res.FinishedGrocery+res.FinishedFrozen+inService, summary.TotalChoices)

	// AND ties always went to frozen
	for _, c := range run.Trace.Choices {
		if c.Tie() {
			assert.Equal(t, "frozen", c.Chosen)
		} else if c.GroceryLen > c.FrozenLen {
			assert.Equal(t, "grocery", c.Chosen)
		}
	}
}

func TestRun_TraceDoesNotChangeResults(t *testing.T) {
	plain, err := SimulateWithSeed(baseParams(), 4)
	require.NoError(t, err)

	run, err := NewRun(baseParams(), 4)
	require.NoError(t, err)
	run.EnableTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})

	assert.Equal(t, plain, run.Execute())
}

func TestRun_TraceNoneLeavesTracingOff(t *testing.T) {
	run, err := NewRun(baseParams(), 4)
	require.NoError(t, err)
	run.EnableTrace(trace.TraceConfig{Level: trace.TraceLevelNone})
	run.Execute()
	assert.Nil(t, run.Trace)
}
