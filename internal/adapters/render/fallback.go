package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"sigeval/internal/core/domain"
)

// Fallback is the degraded vector renderer: it reads only the declared
// width/height of the root element and synthesizes an opaque white canvas of
// that size. The vector content itself is lost; availability is traded for
// accuracy so a valid SVG document never hard-fails the pipeline.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) Render(svg []byte, width, height int) (image.Image, error) {
	w, h, err := declaredSize(svg, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	log.Warn().
		Int("width", w).
		Int("height", h).
		Msg("svg rendered as blank canvas, no rasterizer backend produced output")

	return img, nil
}

// declaredSize parses the markup only far enough to reach the root element
// and read its width/height attributes. Markup that fails XML parsing before
// that point is a hard error.
func declaredSize(svg []byte, defaultW, defaultH int) (int, int, error) {
	decoder := xml.NewDecoder(bytes.NewReader(svg))

	for {
		tok, err := decoder.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("parsing svg markup: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		w, h := defaultW, defaultH
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				if v, ok := parsePixels(attr.Value); ok {
					w = v
				}
			case "height":
				if v, ok := parsePixels(attr.Value); ok {
					h = v
				}
			}
		}

		return w, h, nil
	}
}

// parsePixels accepts numeric attribute values with or without a px suffix.
func parsePixels(value string) (int, bool) {
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(strings.TrimSuffix(value, "px"))

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, false
	}

	return int(f), true
}
