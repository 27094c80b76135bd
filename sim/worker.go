package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

type workerState int

const (
	awaitingShipment workerState = iota // blocked on the warehouse-wide signal
	choosingLane                        // holds a permit, lane not yet chosen
	takingShipment                      // waiting on the chosen lane's queue
	processing                          // holding for the service time
)

// Worker is one member of the shared worker pool. It loops forever: wait for
// any available shipment, pick a lane, take a shipment from it, hold for the
// sampled service time, record the completion.
type Worker struct {
	id        int
	warehouse *Warehouse
	rng       *rand.Rand
	service   map[Lane]DelaySampler

	state       workerState
	lane        Lane
	current     *Shipment
	workingTime float64
	processed   int
	finalized   bool
}

// NewWorker creates a worker bound to wh. Service times are exponential with
// mean p.Service(lane).
func NewWorker(id int, wh *Warehouse, rng *rand.Rand, p Params) *Worker {
	return &Worker{
		id:        id,
		warehouse: wh,
		rng:       rng,
		service: map[Lane]DelaySampler{
			Grocery: NewExponentialFromMean(p.GroceryService),
			Frozen:  NewExponentialFromMean(p.FrozenService),
		},
	}
}

// Start schedules the worker's first resumption at the current time.
func (w *Worker) Start(e *Engine) {
	e.ScheduleAfter(0, w)
}

// Resume advances the worker's state machine until its next suspension point.
func (w *Worker) Resume(e *Engine) {
	for {
		switch w.state {
		case awaitingShipment:
			// A process resumed by the semaphore already holds its permit.
			w.state = choosingLane
			if !w.warehouse.Available.Acquire(w) {
				return
			}
		case choosingLane:
			w.lane = w.warehouse.chooseLaneFor(w.id, e.Now())
			w.state = takingShipment
		case takingShipment:
			s, ok := w.warehouse.Queue(w.lane).Take(w)
			if !ok {
				return
			}
			s.StartProcessing = e.Now()
			w.current = s
			w.state = processing
			e.ScheduleAfter(w.service[w.lane].Sample(w.rng), w)
			return
		case processing:
			s := w.current
			s.EndProcessing = e.Now()
			w.workingTime += s.EndProcessing - s.StartProcessing
			w.warehouse.complete(s, e.Now())
			w.current = nil
			w.processed++
			w.state = awaitingShipment
			logrus.Tracef("[t=%.6f] worker %d finished %s shipment", e.Now(), w.id, s.Lane)
		}
	}
}

// Finalize credits the partial processing time of an in-flight shipment up to
// now. Only the first call has an effect.
func (w *Worker) Finalize(now float64) {
	if w.finalized {
		return
	}
	w.finalized = true
	if w.current != nil {
		w.workingTime += now - w.current.StartProcessing
	}
}

// ID returns the worker's index in the pool.
func (w *Worker) ID() int { return w.id }

// Current returns the shipment being processed, or nil when idle.
func (w *Worker) Current() *Shipment { return w.current }

// WorkingTime returns the accumulated processing time.
func (w *Worker) WorkingTime() float64 { return w.workingTime }

// Processed returns the number of shipments the worker completed.
func (w *Worker) Processed() int { return w.processed }
