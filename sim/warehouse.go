package sim

import "github.com/warehouse-sim/warehouse-sim/sim/trace"

// Warehouse owns the two lane queues, the warehouse-wide "shipment available"
// signal and the completed-shipment records. Constructing it starts both
// arrival processes.
type Warehouse struct {
	engine    *Engine
	queues    map[Lane]*ShipmentQueue
	arrivals  map[Lane]*ArrivalProcess
	completed map[Lane][]Completion
	trace     *trace.SimulationTrace // nil unless tracing is enabled

	// Available counts shipments queued across both lanes. Workers acquire
	// a permit before choosing a lane.
	Available *Semaphore
}

// NewWarehouse creates the lane queues for p and starts their arrival
// processes on e, drawing inter-arrival times from streams.
func NewWarehouse(e *Engine, streams *Streams, p Params) *Warehouse {
	wh := &Warehouse{
		engine:    e,
		queues:    make(map[Lane]*ShipmentQueue, len(Lanes)),
		arrivals:  make(map[Lane]*ArrivalProcess, len(Lanes)),
		completed: make(map[Lane][]Completion, len(Lanes)),
		Available: NewSemaphore(e),
	}
	for _, lane := range Lanes {
		q := NewShipmentQueue(e, lane, p.Rate(lane), p.Capacity(lane))
		a := NewArrivalProcess(q, wh.Available, streams.Arrivals(lane))
		wh.queues[lane] = q
		wh.arrivals[lane] = a
		a.Start(e)
	}
	return wh
}

// ChooseLane applies the tie-break rule: groceries only when the grocery queue
// is strictly longer than the frozen queue, frozen otherwise (ties included).
func (wh *Warehouse) ChooseLane() Lane {
	if wh.queues[Grocery].Len() > wh.queues[Frozen].Len() {
		return Grocery
	}
	return Frozen
}

// EnableTrace starts recording lane choices and rejections into st.
func (wh *Warehouse) EnableTrace(st *trace.SimulationTrace) {
	wh.trace = st
	for _, a := range wh.arrivals {
		a.trace = st
	}
}

// chooseLaneFor picks a lane for worker id and records the decision.
func (wh *Warehouse) chooseLaneFor(id int, now float64) Lane {
	lane := wh.ChooseLane()
	if wh.trace != nil {
		wh.trace.RecordChoice(trace.LaneChoiceRecord{
			Worker:     id,
			Clock:      now,
			GroceryLen: wh.queues[Grocery].Len(),
			FrozenLen:  wh.queues[Frozen].Len(),
			Chosen:     lane.String(),
		})
	}
	return lane
}

func (wh *Warehouse) complete(s *Shipment, now float64) {
	wh.completed[s.Lane] = append(wh.completed[s.Lane], Completion{Shipment: s, Time: now})
}

// Queue returns the queue of a lane.
func (wh *Warehouse) Queue(l Lane) *ShipmentQueue {
	return wh.queues[l]
}

// Arrivals returns the arrival process of a lane.
func (wh *Warehouse) Arrivals(l Lane) *ArrivalProcess {
	return wh.arrivals[l]
}

// Completed returns the shipments fully processed in a lane, in completion
// order. Callers must not modify the slice.
func (wh *Warehouse) Completed(l Lane) []Completion {
	return wh.completed[l]
}

// Finalize closes the dwell intervals of both queues.
func (wh *Warehouse) Finalize() {
	for _, lane := range Lanes {
		wh.queues[lane].Finalize()
	}
}
