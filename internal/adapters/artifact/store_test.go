package artifact

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigeval/internal/core/domain"
)

func testImage() *domain.CanonicalImage {
	return &domain.CanonicalImage{
		Pixels: image.NewRGBA(image.Rect(0, 0, 2, 2)),
		Layout: domain.LayoutTruecolor,
	}
}

func TestMaterialize(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	a, err := store.Materialize(testImage())
	require.NoError(t, err)
	defer store.Release(a)

	assert.Equal(t, dir, filepath.Dir(a.Path))
	assert.True(t, strings.HasSuffix(a.Path, ".png"))

	raw, err := store.Read(a)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPNG, domain.DetectFormat(raw))
}

func TestMaterializeGrayscale(t *testing.T) {
	store := NewStore(t.TempDir())

	a, err := store.Materialize(&domain.CanonicalImage{
		Pixels: image.NewGray(image.Rect(0, 0, 3, 3)),
		Layout: domain.LayoutGrayscale,
	})
	require.NoError(t, err)
	defer store.Release(a)

	raw, err := store.Read(a)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPNG, domain.DetectFormat(raw))
}

func TestMaterializeUniqueNames(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.Materialize(testImage())
	require.NoError(t, err)
	defer store.Release(first)

	second, err := store.Materialize(testImage())
	require.NoError(t, err)
	defer store.Release(second)

	assert.NotEqual(t, first.Path, second.Path)
}

func TestRelease(t *testing.T) {
	store := NewStore(t.TempDir())

	a, err := store.Materialize(testImage())
	require.NoError(t, err)

	store.Release(a)

	_, err = os.Stat(a.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestReleaseIsBestEffort(t *testing.T) {
	store := NewStore(t.TempDir())

	a, err := store.Materialize(testImage())
	require.NoError(t, err)

	// Releasing twice, a nil artifact, or an empty handle must never panic
	// or surface an error.
	store.Release(a)
	store.Release(a)
	store.Release(nil)
	store.Release(&domain.TemporaryArtifact{})
}

func TestMaterializeFailsOnMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := store.Materialize(testImage())
	require.Error(t, err)
}
