package sim

import (
	"errors"
	"fmt"
)

// ErrQueueFull is matched by errors.Is for every QueueFullError.
var ErrQueueFull = errors.New("queue full")

// ConfigError reports a simulation parameter that cannot be used.
// It is returned before any engine is constructed.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s=%v %s", e.Field, e.Value, e.Reason)
}

func newConfigError(field string, value float64, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// QueueFullError is returned by ShipmentQueue.Put when the lane is at capacity.
// It is an expected outcome: the arrival process counts it as a rejection.
type QueueFullError struct {
	Lane     Lane
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("%s queue full (capacity %d)", e.Lane, e.Capacity)
}

// Is lets errors.Is(err, ErrQueueFull) match any QueueFullError.
func (e *QueueFullError) Is(target error) bool {
	return target == ErrQueueFull
}
