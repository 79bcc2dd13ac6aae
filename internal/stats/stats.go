package stats

import "math"

// Accumulator computes running mean and variance over a stream of samples
// using Welford's update, so zonal reductions never hold the pixel values.
type Accumulator struct {
	count int
	mean  float64
	m2    float64
	min   float64
	max   float64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{min: math.Inf(1), max: math.Inf(-1)}
}

// Add feeds one sample. NaN samples are ignored so masked pixels can be
// streamed without filtering first.
func (a *Accumulator) Add(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.count++
	delta := v - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (v - a.mean)
	if v < a.min {
		a.min = v
	}
	if v > a.max {
		a.max = v
	}
}

func (a *Accumulator) Count() int {
	return a.count
}

func (a *Accumulator) Mean() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.mean
}

// Variance is the population variance.
func (a *Accumulator) Variance() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.m2 / float64(a.count)
}

func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

func (a *Accumulator) Min() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.min
}

func (a *Accumulator) Max() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.max
}

// Summary is the reduced form of an accumulator, suitable for serialization.
type Summary struct {
	Count  int     `json:"count" csv:"count"`
	Mean   float64 `json:"mean" csv:"mean"`
	StdDev float64 `json:"std_dev" csv:"std_dev"`
	Min    float64 `json:"min" csv:"min"`
	Max    float64 `json:"max" csv:"max"`
}

func (a *Accumulator) Summary() Summary {
	return Summary{
		Count:  a.Count(),
		Mean:   a.Mean(),
		StdDev: a.StdDev(),
		Min:    a.Min(),
		Max:    a.Max(),
	}
}
