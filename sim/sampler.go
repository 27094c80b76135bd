package sim

import "math/rand"

// DelaySampler draws a non-negative delay in virtual time units.
type DelaySampler interface {
	Sample(rng *rand.Rand) float64
}

// ExponentialSampler draws exponentially distributed delays with the given mean.
type ExponentialSampler struct {
	mean float64
}

// NewExponentialFromRate creates a sampler with mean 1/rate (inter-arrival times).
func NewExponentialFromRate(rate float64) *ExponentialSampler {
	return &ExponentialSampler{mean: 1 / rate}
}

// NewExponentialFromMean creates a sampler with the given mean (service times).
func NewExponentialFromMean(mean float64) *ExponentialSampler {
	return &ExponentialSampler{mean: mean}
}

// Mean returns the distribution mean.
func (s *ExponentialSampler) Mean() float64 {
	return s.mean
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}
