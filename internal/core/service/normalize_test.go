package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"sigeval/internal/core/domain"
)

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}

	return img
}

func TestNormalizeGrayStaysGray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}

	n := NewNormalizer()

	canonical, err := n.Normalize(pngBytes(t, gray))
	require.NoError(t, err)

	assert.Equal(t, domain.LayoutGrayscale, canonical.Layout)
	assert.Equal(t, 4, canonical.Width())
	assert.Equal(t, 4, canonical.Height())
}

func TestNormalizeCompositesAlphaOverWhite(t *testing.T) {
	// Fully transparent pixels must come out opaque white.
	transparent := solidNRGBA(2, 2, color.NRGBA{R: 255, A: 0})

	n := NewNormalizer()

	canonical, err := n.Normalize(pngBytes(t, transparent))
	require.NoError(t, err)

	assert.Equal(t, domain.LayoutTruecolor, canonical.Layout)

	r, g, b, a := canonical.Pixels.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestNormalizeHalfTransparentRedBlendsWithWhite(t *testing.T) {
	half := solidNRGBA(2, 2, color.NRGBA{R: 255, A: 128})

	n := NewNormalizer()

	canonical, err := n.Normalize(pngBytes(t, half))
	require.NoError(t, err)

	r, g, b, a := canonical.Pixels.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	// Red stays near full, green and blue land near the white half.
	assert.Greater(t, r, uint32(0xf000))
	assert.InDelta(t, 0x7fff, int(g), 640)
	assert.InDelta(t, 0x7fff, int(b), 640)
}

func TestNormalizeJPEGBecomesTruecolor(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	n := NewNormalizer()

	canonical, err := n.Normalize(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, domain.LayoutTruecolor, canonical.Layout)
}

func TestNormalizeBMP(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	require.NoError(t, bmp.Encode(&buf, src))

	n := NewNormalizer()

	canonical, err := n.Normalize(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, domain.LayoutTruecolor, canonical.Layout)
	assert.Equal(t, 3, canonical.Width())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	n := NewNormalizer()

	_, err := n.Normalize([]byte("definitely not an image at all"))
	require.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestNormalizeRejectsTruncatedStream(t *testing.T) {
	data := pngBytes(t, image.NewRGBA(image.Rect(0, 0, 32, 32)))

	n := NewNormalizer()

	_, err := n.Normalize(data[:len(data)/2])
	require.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestCanonicalizeRejectsZeroSizeImages(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{
			name: "zero width",
			img:  image.NewRGBA(image.Rect(0, 0, 0, 5)),
		},
		{
			name: "zero height",
			img:  image.NewGray(image.Rect(0, 0, 5, 0)),
		},
		{
			name: "empty rectangle",
			img:  image.NewRGBA(image.Rect(0, 0, 0, 0)),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := canonicalize(tc.img)
			require.ErrorIs(t, err, domain.ErrInvalidImage)
		})
	}
}

func TestCanonicalizeAcceptsSmallestImage(t *testing.T) {
	canonical, err := canonicalize(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)

	assert.Equal(t, 1, canonical.Width())
	assert.Equal(t, 1, canonical.Height())
}
