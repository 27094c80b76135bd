package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Process is a logical simulation process (arrival generator, worker) that the
// Engine resumes at scheduled virtual times. Resume runs the process until its
// next suspension point and must return without blocking; a process suspends
// either by calling Engine.ScheduleAfter on itself or by registering with a
// Semaphore or ShipmentQueue that will reschedule it.
type Process interface {
	Resume(e *Engine)
}

// wakeup is a pending resumption of a process.
type wakeup struct {
	time    float64
	seq     uint64 // insertion order, breaks timestamp ties deterministically
	process Process
}

// eventHeap implements heap.Interface ordered by time then insertion sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []wakeup

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(wakeup))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// Engine holds the virtual clock and the ordered list of pending wakeups.
//
// Processes woken at the same timestamp run in the order they were scheduled.
// That order is an implementation detail: callers must only rely on every
// wakeup for an instant running before the clock advances again.
//
// Thread-safety: NOT thread-safe. One Engine belongs to one simulation run.
type Engine struct {
	clock   float64
	events  eventHeap
	nextSeq uint64
}

// NewEngine creates an engine with the clock at zero and no pending events.
func NewEngine() *Engine {
	e := &Engine{events: make(eventHeap, 0)}
	heap.Init(&e.events)
	return e
}

// Now returns the current virtual time.
func (e *Engine) Now() float64 {
	return e.clock
}

// Pending returns the number of scheduled wakeups.
func (e *Engine) Pending() int {
	return e.events.Len()
}

// ScheduleAfter arranges for p to be resumed at Now()+delay.
// Panics if delay is negative or NaN.
func (e *Engine) ScheduleAfter(delay float64, p Process) {
	if p == nil {
		panic("ScheduleAfter: process must not be nil")
	}
	if math.IsNaN(delay) || delay < 0 {
		panic(fmt.Sprintf("ScheduleAfter: delay must be >= 0, got %v", delay))
	}
	e.nextSeq++
	heap.Push(&e.events, wakeup{time: e.clock + delay, seq: e.nextSeq, process: p})
}

// RunUntil advances the clock event by event, resuming every process scheduled
// for each instant, and stops before the first wakeup later than horizon.
// The clock is then set to horizon. Suspended processes are left in place with
// whatever state they last recorded; nothing is cancelled.
func (e *Engine) RunUntil(horizon float64) {
	for e.events.Len() > 0 {
		if e.events[0].time > horizon {
			break
		}
		w := heap.Pop(&e.events).(wakeup)
		if w.time < e.clock {
			panic(fmt.Sprintf("clock went backwards: %v < %v", w.time, e.clock))
		}
		e.clock = w.time
		logrus.Tracef("[t=%.6f] resuming %T", e.clock, w.process)
		w.process.Resume(e)
	}
	if horizon > e.clock {
		e.clock = horizon
	}
}
