package sim

import (
	"math/rand"
)

// action adapts a plain function into a Process.
type action func(e *Engine)

func (a action) Resume(e *Engine) { a(e) }

// at schedules f to run at absolute time t.
func at(e *Engine, t float64, f func(e *Engine)) {
	e.ScheduleAfter(t-e.Now(), action(f))
}

// fixedDelay is a DelaySampler that always returns the same delay.
type fixedDelay float64

func (d fixedDelay) Sample(*rand.Rand) float64 { return float64(d) }

// recorder logs the times at which it was resumed.
type recorder struct {
	name  string
	times []float64
	log   *[]string
}

func (r *recorder) Resume(e *Engine) {
	r.times = append(r.times, e.Now())
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

// quietParams has arrival rates so low that no shipment arrives on its own
// within the horizon, leaving the test in control of every Put.
func quietParams(workers int, service float64) Params {
	return Params{
		GroceryRate:     1e-12,
		FrozenRate:      1e-12,
		GroceryService:  service,
		FrozenService:   service,
		GroceryCapacity: 10,
		FrozenCapacity:  10,
		Workers:         workers,
		Duration:        100,
	}
}

// newTestWarehouse builds an engine and warehouse for quietParams and returns
// a helper that enqueues a shipment and signals availability.
func newTestWarehouse(p Params) (*Engine, *Warehouse, func(l Lane)) {
	e := NewEngine()
	wh := NewWarehouse(e, NewStreams(7), p)
	put := func(l Lane) {
		if err := wh.Queue(l).Put(NewShipment(l, e.Now())); err != nil {
			panic(err)
		}
		wh.Available.Release()
	}
	return e, wh, put
}

// newFixedWorker creates a started worker whose service time is always d.
func newFixedWorker(e *Engine, wh *Warehouse, id int, d float64) *Worker {
	w := NewWorker(id, wh, rand.New(rand.NewSource(int64(id))), quietParams(1, d))
	w.service[Grocery] = fixedDelay(d)
	w.service[Frozen] = fixedDelay(d)
	w.Start(e)
	return w
}
