package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/rs/zerolog/log"

	"sigeval/internal/core/domain"
)

// Decoders registered above define the accepted raster set. WEBP is
// deliberately absent: the sniffer recognizes it, the pipeline rejects it.
var supportedDecodeFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
}

// Normalizer decodes raster bytes and converts them to the canonical channel
// layout: grayscale stays single-channel, alpha is flattened onto opaque
// white, everything else becomes truecolor. Decoding is strict: the stdlib
// decoders are all-or-nothing, so truncated or corrupt streams are always
// rejected.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Normalize(data []byte) (*domain.CanonicalImage, error) {
	// Integrity pass over the full stream, so truncated or corrupt data is
	// caught before any pixels are touched.
	_, formatName, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	if !supportedDecodeFormats[formatName] {
		return nil, fmt.Errorf("%w: decoded as %s", domain.ErrInvalidImage, formatName)
	}

	// Fresh decode for pixel access; the verify pass consumed its reader.
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	canonical, err := canonicalize(img)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("format", formatName).
		Str("layout", string(canonical.Layout)).
		Int("width", canonical.Width()).
		Int("height", canonical.Height()).
		Msg("normalized raster")

	return canonical, nil
}

// canonicalize validates decoded pixels and applies the channel policy. Both
// the raster and the vector path go through it, so a zero-area image is
// rejected no matter where it came from.
func canonicalize(img image.Image) (*domain.CanonicalImage, error) {
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, fmt.Errorf("%w: zero-size image", domain.ErrInvalidImage)
	}

	return flattenChannels(img), nil
}

// flattenChannels applies the channel policy shared by the raster and vector
// paths. The white canvas plus source-over compositing resolves any alpha, so
// no downstream consumer ever observes a transparent pixel.
func flattenChannels(img image.Image) *domain.CanonicalImage {
	if gray, ok := img.(*image.Gray); ok {
		return &domain.CanonicalImage{Pixels: gray, Layout: domain.LayoutGrayscale}
	}

	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)

	return &domain.CanonicalImage{Pixels: canvas, Layout: domain.LayoutTruecolor}
}
