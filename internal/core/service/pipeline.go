package service

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	"strings"

	"github.com/rs/zerolog/log"

	"sigeval/internal/core/domain"
	"sigeval/internal/core/port"
)

type PipelineOptions struct {
	// Target raster size for vector input. Zero values fall back to the
	// domain defaults.
	SVGWidth  int
	SVGHeight int
}

// Pipeline turns heterogeneous image submissions into canonical on-disk
// artifacts. Format is determined from content only; filenames and declared
// media types are never trusted.
type Pipeline struct {
	renderer   port.VectorRenderer
	fallback   port.VectorRenderer
	normalizer *Normalizer
	store      port.ArtifactStore
	svgWidth   int
	svgHeight  int
}

// NewPipeline wires the ingestion pipeline. renderer is the preferred vector
// backend and may be nil; fallback is the degraded renderer and must be set.
func NewPipeline(renderer, fallback port.VectorRenderer, store port.ArtifactStore,
	opts PipelineOptions) *Pipeline {
	if opts.SVGWidth <= 0 {
		opts.SVGWidth = domain.DefaultSVGWidth
	}
	if opts.SVGHeight <= 0 {
		opts.SVGHeight = domain.DefaultSVGHeight
	}

	return &Pipeline{
		renderer:   renderer,
		fallback:   fallback,
		normalizer: NewNormalizer(),
		store:      store,
		svgWidth:   opts.SVGWidth,
		svgHeight:  opts.SVGHeight,
	}
}

// Resolve dispatches on the input variant exactly once.
func (p *Pipeline) Resolve(input domain.RawImageInput) (*domain.TemporaryArtifact, error) {
	if input.Kind() == domain.InputEncodedText {
		return p.FromEncodedText(input.EncodedText())
	}

	return p.FromBytes(input.Bytes())
}

// FromBytes sniffs raw file content and routes it through the vector renderer
// or the raster normalizer, materializing the canonical result.
func (p *Pipeline) FromBytes(data []byte) (*domain.TemporaryArtifact, error) {
	format := domain.DetectFormat(data)

	l := log.With().
		Str("format", string(format)).
		Int("bytes", len(data)).
		Logger()

	switch format {
	case domain.FormatUnknown:
		// Header bytes stay out of the returned error; they are logged
		// here for diagnosis instead.
		l.Debug().Str("header", headerHex(data)).Msg("unrecognized image header")
		return nil, domain.ErrUnknownFormat
	case domain.FormatWEBP:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	case domain.FormatSVG:
		img, err := p.renderSVG(data)
		if err != nil {
			return nil, err
		}

		canonical, err := canonicalize(img)
		if err != nil {
			return nil, err
		}

		l.Debug().Msg("rasterized vector input")
		return p.store.Materialize(canonical)
	default:
		canonical, err := p.normalizer.Normalize(data)
		if err != nil {
			return nil, err
		}

		return p.store.Materialize(canonical)
	}
}

// FromEncodedText strips an optional media-type header, strictly decodes the
// base64 payload and continues as FromBytes.
func (p *Pipeline) FromEncodedText(text string) (*domain.TemporaryArtifact, error) {
	payload := strings.TrimSpace(text)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty encoded text", domain.ErrEncoding)
	}

	// Everything before the first comma is a declared media-type header in
	// the data-URL convention. Its shape is honored, its content ignored.
	if i := strings.Index(payload, ","); i >= 0 {
		log.Debug().Str("header", payload[:i]).Msg("discarding media type header")
		payload = payload[i+1:]
	}

	payload = strings.Join(strings.Fields(payload), "")
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload after cleaning", domain.ErrEncoding)
	}

	data, err := base64.StdEncoding.Strict().DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: decoded payload is empty", domain.ErrEncoding)
	}

	return p.FromBytes(data)
}

// renderSVG prefers the configured backend and degrades to the fallback
// renderer on any backend failure. Only a fallback failure is fatal.
func (p *Pipeline) renderSVG(svg []byte) (image.Image, error) {
	if p.renderer != nil {
		img, err := p.renderer.Render(svg, p.svgWidth, p.svgHeight)
		if err == nil {
			return img, nil
		}

		log.Warn().Err(err).Msg("svg backend failed, degrading to fallback renderer")
	}

	return p.fallback.Render(svg, p.svgWidth, p.svgHeight)
}

func headerHex(data []byte) string {
	if len(data) > 32 {
		data = data[:32]
	}

	return hex.EncodeToString(data)
}
