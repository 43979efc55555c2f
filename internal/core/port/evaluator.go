package port

import "sigeval/internal/core/domain"

type Evaluator interface {
	// CompareImages normalizes both inputs and returns their similarity
	// score in [0, 1].
	CompareImages(original, reproduced domain.RawImageInput) (float64, error)
	// Smoothness normalizes the input and returns its line smoothness
	// score in [0, 1].
	Smoothness(input domain.RawImageInput) (float64, error)
	// ExecutionError returns the mean and per-point Euclidean error between
	// an expected and an actual toolpath.
	ExecutionError(expected, actual domain.Toolpath) (float64, []float64, error)
}
