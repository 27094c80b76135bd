// Implements the ShipmentQueue, the bounded buffer in front of each lane.
// Shipments are enqueued by the lane's arrival process and taken by workers.

package sim

import (
	"fmt"
)

// interval tracks an open dwell period. The zero value is "not tracking".
type interval struct {
	start float64
	open  bool
}

func (iv *interval) begin(now float64) {
	if iv.open {
		return
	}
	iv.start = now
	iv.open = true
}

// end closes the interval and returns its length; 0 when nothing was open.
func (iv *interval) end(now float64) float64 {
	if !iv.open {
		return 0
	}
	iv.open = false
	return now - iv.start
}

// ShipmentQueue is a capacity-limited FIFO of shipments for one lane.
// Besides its contents it keeps the lane's rejected shipments and the
// cumulative time the queue spent full and empty.
//
// The empty interval opens at construction. The full interval opens at the
// first rejected put while the queue is at capacity and closes on the next take.
type ShipmentQueue struct {
	engine   *Engine
	lane     Lane
	rate     float64 // arrival rate λ of the lane feeding this queue
	capacity int

	queue    []*Shipment
	rejected []*Shipment
	takers   []Process // processes suspended in Take

	fullTime  float64
	emptyTime float64
	full      interval
	empty     interval
}

// NewShipmentQueue creates an empty queue; its empty interval starts at e.Now().
// Panics if capacity is not positive.
func NewShipmentQueue(e *Engine, lane Lane, rate float64, capacity int) *ShipmentQueue {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewShipmentQueue: capacity must be > 0, got %d", capacity))
	}
	q := &ShipmentQueue{
		engine:   e,
		lane:     lane,
		rate:     rate,
		capacity: capacity,
		queue:    make([]*Shipment, 0, capacity),
	}
	q.empty.begin(e.Now())
	return q
}

// Put appends s to the back of the queue. When the queue is at capacity the
// shipment is recorded as rejected and a *QueueFullError is returned.
func (q *ShipmentQueue) Put(s *Shipment) error {
	if q.IsFull() {
		q.Reject(s)
		return &QueueFullError{Lane: q.lane, Capacity: q.capacity}
	}
	if len(q.queue) == 0 {
		q.emptyTime += q.empty.end(q.engine.Now())
	}
	q.queue = append(q.queue, s)
	q.wakeTaker()
	return nil
}

// Reject records s as turned away and starts the full interval if it is not
// already running. Arrival processes call it after checking IsFull.
func (q *ShipmentQueue) Reject(s *Shipment) {
	q.full.begin(q.engine.Now())
	q.rejected = append(q.rejected, s)
}

// Take removes the shipment at the front of the queue. When the queue is
// empty p is suspended and false is returned; p is resumed after the next Put
// and must call Take again, since another process may have emptied the queue
// in the meantime.
func (q *ShipmentQueue) Take(p Process) (*Shipment, bool) {
	if len(q.queue) == 0 {
		q.takers = append(q.takers, p)
		return nil, false
	}
	now := q.engine.Now()
	if q.IsFull() {
		q.fullTime += q.full.end(now)
	}
	s := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	if len(q.queue) == 0 {
		q.empty.begin(now)
	}
	return s, true
}

func (q *ShipmentQueue) wakeTaker() {
	if len(q.takers) == 0 {
		return
	}
	next := q.takers[0]
	q.takers[0] = nil
	q.takers = q.takers[1:]
	q.engine.ScheduleAfter(0, next)
}

// Finalize closes any open full or empty interval at the current time so the
// accumulated dwell times cover the run up to its horizon.
func (q *ShipmentQueue) Finalize() {
	now := q.engine.Now()
	q.fullTime += q.full.end(now)
	q.emptyTime += q.empty.end(now)
}

// Len returns the number of queued shipments.
func (q *ShipmentQueue) Len() int {
	return len(q.queue)
}

// IsFull reports whether the queue is at capacity.
func (q *ShipmentQueue) IsFull() bool {
	return len(q.queue) == q.capacity
}

// IsEmpty reports whether the queue holds no shipments.
func (q *ShipmentQueue) IsEmpty() bool {
	return len(q.queue) == 0
}

// Lane returns the lane this queue serves.
func (q *ShipmentQueue) Lane() Lane { return q.lane }

// Rate returns the arrival rate of the lane.
func (q *ShipmentQueue) Rate() float64 { return q.rate }

// Capacity returns the maximum number of queued shipments.
func (q *ShipmentQueue) Capacity() int { return q.capacity }

// Rejected returns the rejected shipments. Callers must not modify the slice.
func (q *ShipmentQueue) Rejected() []*Shipment { return q.rejected }

// RejectedCount returns the number of rejected shipments.
func (q *ShipmentQueue) RejectedCount() int { return len(q.rejected) }

// FullTime returns the accumulated time spent at capacity over closed intervals.
func (q *ShipmentQueue) FullTime() float64 { return q.fullTime }

// EmptyTime returns the accumulated time spent empty over closed intervals.
func (q *ShipmentQueue) EmptyTime() float64 { return q.emptyTime }

// FullOpen reports whether a full interval is currently being tracked.
func (q *ShipmentQueue) FullOpen() bool { return q.full.open }

// EmptyOpen reports whether an empty interval is currently being tracked.
func (q *ShipmentQueue) EmptyOpen() bool { return q.empty.open }
