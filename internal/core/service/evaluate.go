package service

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"sigeval/internal/core/domain"
	"sigeval/internal/core/port"
)

// Evaluator runs the evaluation operations on top of the ingestion pipeline.
// Every artifact an operation materializes is released before the operation
// returns, on success and on every error path.
type Evaluator struct {
	pipeline   *Pipeline
	store      port.ArtifactStore
	similarity port.SimilarityScorer
	smoothness port.SmoothnessScorer
}

func NewEvaluator(pipeline *Pipeline, store port.ArtifactStore,
	similarity port.SimilarityScorer, smoothness port.SmoothnessScorer) *Evaluator {
	return &Evaluator{
		pipeline:   pipeline,
		store:      store,
		similarity: similarity,
		smoothness: smoothness,
	}
}

func (e *Evaluator) CompareImages(original, reproduced domain.RawImageInput) (float64, error) {
	var artifacts []*domain.TemporaryArtifact
	defer func() {
		for _, a := range artifacts {
			e.store.Release(a)
		}
	}()

	originalArtifact, err := e.pipeline.Resolve(original)
	if err != nil {
		return 0, err
	}
	artifacts = append(artifacts, originalArtifact)

	reproducedArtifact, err := e.pipeline.Resolve(reproduced)
	if err != nil {
		return 0, err
	}
	artifacts = append(artifacts, reproducedArtifact)

	score, err := e.similarity.Score(originalArtifact.Path, reproducedArtifact.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: similarity metric: %v", domain.ErrProcessing, err)
	}

	if err := checkScore(score); err != nil {
		return 0, err
	}

	log.Info().Float64("score", score).Msg("similarity calculated")

	return score, nil
}

func (e *Evaluator) Smoothness(input domain.RawImageInput) (float64, error) {
	artifact, err := e.pipeline.Resolve(input)
	if err != nil {
		return 0, err
	}
	defer e.store.Release(artifact)

	score, err := e.smoothness.Score(artifact.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: smoothness metric: %v", domain.ErrProcessing, err)
	}

	if err := checkScore(score); err != nil {
		return 0, err
	}

	log.Info().Float64("score", score).Msg("smoothness calculated")

	return score, nil
}

func (e *Evaluator) ExecutionError(expected, actual domain.Toolpath) (float64, []float64, error) {
	mean, errs, err := domain.Aggregate(expected, actual)
	if err != nil {
		return 0, nil, err
	}

	log.Info().Float64("meanError", mean).Int("points", len(errs)).Msg("execution error calculated")

	return mean, errs, nil
}

// Metric functions are opaque collaborators; a score outside the contract is
// an internal fault, never surfaced to the client unmodified.
func checkScore(score float64) error {
	if math.IsNaN(score) || score < 0 || score > 1 {
		return fmt.Errorf("%w: metric returned out-of-range score %v", domain.ErrProcessing, score)
	}

	return nil
}
