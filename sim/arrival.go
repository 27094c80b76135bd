package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/warehouse-sim/warehouse-sim/sim/trace"
)

// ArrivalProcess generates shipments for one lane. Each resumption creates a
// shipment stamped with the current time, offers it to the lane's queue and
// suspends for the next exponential inter-arrival delay. It runs until the
// engine stops resuming it at the horizon.
type ArrivalProcess struct {
	lane      Lane
	queue     *ShipmentQueue
	available *Semaphore
	rng       *rand.Rand
	iat       DelaySampler
	generated int
	trace     *trace.SimulationTrace
}

// NewArrivalProcess creates an arrival process feeding queue at queue.Rate().
func NewArrivalProcess(queue *ShipmentQueue, available *Semaphore, rng *rand.Rand) *ArrivalProcess {
	return &ArrivalProcess{
		lane:      queue.Lane(),
		queue:     queue,
		available: available,
		rng:       rng,
		iat:       NewExponentialFromRate(queue.Rate()),
	}
}

// Start schedules the first arrival.
func (a *ArrivalProcess) Start(e *Engine) {
	e.ScheduleAfter(a.iat.Sample(a.rng), a)
}

// Resume handles one arrival and schedules the next one.
func (a *ArrivalProcess) Resume(e *Engine) {
	s := NewShipment(a.lane, e.Now())
	a.generated++

	if a.queue.IsFull() {
		a.queue.Reject(s)
		if a.trace != nil {
			a.trace.RecordRejection(trace.RejectionRecord{Lane: a.lane.String(), Clock: e.Now(), Capacity: a.queue.Capacity()})
		}
		logrus.Tracef("[t=%.6f] %s shipment rejected (%d total)", e.Now(), a.lane, a.queue.RejectedCount())
	} else {
		if err := a.queue.Put(s); err != nil {
			panic(fmt.Sprintf("%s arrival: put after capacity check failed: %v", a.lane, err))
		}
		a.available.Release()
	}

	e.ScheduleAfter(a.iat.Sample(a.rng), a)
}

// Generated returns the number of shipments created so far.
func (a *ArrivalProcess) Generated() int {
	return a.generated
}
