package domain

import (
	"fmt"
	"math"
)

type Point struct {
	X float64
	Y float64
}

// Toolpath is an ordered sequence of 2-D machine coordinates.
type Toolpath []Point

// Aggregate computes the per-point Euclidean error between an expected and an
// actual toolpath plus the arithmetic mean of those errors. Ordering is
// preserved: errs[i] belongs to expected[i] and actual[i].
func Aggregate(expected, actual Toolpath) (float64, []float64, error) {
	if len(expected) == 0 || len(actual) == 0 {
		return 0, nil, fmt.Errorf("%w: empty toolpath", ErrShape)
	}

	if len(expected) != len(actual) {
		return 0, nil, fmt.Errorf("%w: %d expected points vs %d actual points",
			ErrShape, len(expected), len(actual))
	}

	errs := make([]float64, len(expected))

	var sum float64
	for i := range expected {
		errs[i] = math.Hypot(actual[i].X-expected[i].X, actual[i].Y-expected[i].Y)
		sum += errs[i]
	}

	return sum / float64(len(errs)), errs, nil
}

type Stats struct {
	Max float64
	Min float64
	Std float64
}

// ErrorStats derives summary statistics from a per-point error sequence as
// produced by Aggregate. Std is the population standard deviation.
func ErrorStats(errs []float64) Stats {
	if len(errs) == 0 {
		return Stats{}
	}

	stats := Stats{Max: errs[0], Min: errs[0]}

	var sum float64
	for _, e := range errs {
		sum += e
		stats.Max = math.Max(stats.Max, e)
		stats.Min = math.Min(stats.Min, e)
	}

	mean := sum / float64(len(errs))

	var variance float64
	for _, e := range errs {
		variance += (e - mean) * (e - mean)
	}
	stats.Std = math.Sqrt(variance / float64(len(errs)))

	return stats
}
