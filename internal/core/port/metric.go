package port

type SimilarityScorer interface {
	// Score compares the canonical images at the two paths and returns a
	// similarity score in [0, 1].
	Score(originalPath, reproducedPath string) (float64, error)
}

type SmoothnessScorer interface {
	// Score rates the line smoothness of the canonical image at path,
	// returning a score in [0, 1].
	Score(path string) (float64, error)
}
