package port

import "sigeval/internal/core/domain"

type ArtifactStore interface {
	// Materialize encodes a canonical image into a uniquely named on-disk
	// artifact and returns its handle.
	Materialize(img *domain.CanonicalImage) (*domain.TemporaryArtifact, error)
	// Release removes the artifact. It never fails; cleanup problems are
	// logged and swallowed so they cannot mask the caller's own result.
	Release(artifact *domain.TemporaryArtifact)
}
