package sim

import "fmt"

// Lane identifies one of the two goods categories handled by the warehouse.
type Lane int

const (
	Grocery Lane = iota
	Frozen
)

// Lanes lists every lane in a fixed order.
var Lanes = []Lane{Grocery, Frozen}

func (l Lane) String() string {
	switch l {
	case Grocery:
		return "grocery"
	case Frozen:
		return "frozen"
	default:
		return fmt.Sprintf("lane(%d)", int(l))
	}
}

// unset marks a timestamp that has not been recorded yet.
const unset = -1.0

// Shipment is a passive entity carrying the timestamps of its trip through
// the warehouse. Identity is by pointer.
type Shipment struct {
	Lane            Lane
	ArrivalTime     float64
	StartProcessing float64 // unset until a worker takes the shipment
	EndProcessing   float64 // unset until the worker finishes
}

// NewShipment creates a shipment arriving at the given time.
func NewShipment(lane Lane, arrival float64) *Shipment {
	return &Shipment{
		Lane:            lane,
		ArrivalTime:     arrival,
		StartProcessing: unset,
		EndProcessing:   unset,
	}
}

// Started reports whether a worker has begun processing the shipment.
func (s *Shipment) Started() bool {
	return s.StartProcessing != unset
}

// Finished reports whether processing is complete.
func (s *Shipment) Finished() bool {
	return s.EndProcessing != unset
}

// Wait returns the time spent queued before processing began.
// Only meaningful once Started is true.
func (s *Shipment) Wait() float64 {
	return s.StartProcessing - s.ArrivalTime
}

// Completion pairs a processed shipment with the simulation time it finished.
type Completion struct {
	Shipment *Shipment
	Time     float64
}
