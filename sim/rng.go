package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Streams hands out the random streams of one run. Each stream is seeded
// with seed XOR fnv1a64(name), where the name identifies a lane's arrivals
// or one worker's service times, so changing the worker count never shifts
// the arrival sequence of either lane.
//
// Not safe for concurrent use; a run lives on one goroutine.
type Streams struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewStreams returns the stream set for seed.
func NewStreams(seed int64) *Streams {
	return &Streams{seed: seed, streams: make(map[string]*rand.Rand)}
}

// Seed is the master seed the streams derive from.
func (s *Streams) Seed() int64 { return s.seed }

// Arrivals is the inter-arrival stream of lane.
func (s *Streams) Arrivals(lane Lane) *rand.Rand {
	return s.named(arrivalStream(lane))
}

// Service is the service-time stream of worker id.
func (s *Streams) Service(id int) *rand.Rand {
	return s.named(serviceStream(id))
}

// named returns the cached stream for name, creating it on first use.
func (s *Streams) named(name string) *rand.Rand {
	if r, ok := s.streams[name]; ok {
		return r
	}
	r := rand.New(rand.NewSource(s.seed ^ fnv1a64(name)))
	s.streams[name] = r
	return r
}

func arrivalStream(lane Lane) string { return "arrival_" + lane.String() }

func serviceStream(id int) string { return fmt.Sprintf("worker_%d", id) }

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
