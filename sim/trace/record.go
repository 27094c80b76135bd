// Package trace records the decisions taken during one warehouse simulation run.
// It stores plain data and does not depend on sim/.
package trace

// LaneChoiceRecord captures one worker picking the lane to serve next.
type LaneChoiceRecord struct {
	Worker     int
	Clock      float64
	GroceryLen int    // grocery queue length when the choice was made
	FrozenLen  int    // frozen queue length when the choice was made
	Chosen     string // lane name
}

// Tie reports whether both queues were equally long, so the tie-break decided.
func (r LaneChoiceRecord) Tie() bool {
	return r.GroceryLen == r.FrozenLen
}

// RejectionRecord captures one shipment turned away at a full queue.
type RejectionRecord struct {
	Lane     string
	Clock    float64
	Capacity int
}
