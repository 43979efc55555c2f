package artifact

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"

	"sigeval/internal/core/domain"
)

// Store materializes canonical images as uniquely named PNG files. Unique
// names are the only coordination between concurrent requests; there is no
// locking.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, defaulting to the system temp
// directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = os.TempDir()
	}

	return &Store{dir: dir}
}

// Materialize encodes the canonical image into the store's canonical
// container format and returns the artifact handle.
func (s *Store) Materialize(img *domain.CanonicalImage) (*domain.TemporaryArtifact, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generating artifact name: %w", err)
	}

	path := filepath.Join(s.dir, id.String()+".png")

	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("creating artifact file: %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer f.Close()

	if err := png.Encode(f, img.Pixels); err != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			log.Warn().Err(removeErr).Str("path", path).Msg("could not remove partial artifact")
		}
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}

	log.Debug().
		Str("path", path).
		Str("layout", string(img.Layout)).
		Msg("created artifact")

	return &domain.TemporaryArtifact{Path: path}, nil
}

// Read returns the encoded bytes of a materialized artifact.
func (s *Store) Read(artifact *domain.TemporaryArtifact) ([]byte, error) {
	buf, err := os.ReadFile(artifact.Path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	return buf, nil
}

// Release removes the artifact file. Cleanup is best-effort: failures are
// logged as warnings and never propagated.
func (s *Store) Release(artifact *domain.TemporaryArtifact) {
	if artifact == nil || artifact.Path == "" {
		return
	}

	if err := os.Remove(artifact.Path); err != nil {
		log.Warn().Str("path", artifact.Path).Err(err).Msg("could not clean up artifact")
		return
	}

	log.Debug().Str("path", artifact.Path).Msg("cleaned up artifact")
}
