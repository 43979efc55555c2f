package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// SVGRasterizer renders vector markup with the oksvg backend. It draws at the
// document's native size and resamples to the requested target with a
// high-quality kernel when the two differ.
type SVGRasterizer struct{}

func NewSVGRasterizer() *SVGRasterizer {
	return &SVGRasterizer{}
}

func (r *SVGRasterizer) Render(svg []byte, width, height int) (img image.Image, err error) {
	// oksvg panics on some malformed path data; a failed backend must
	// surface as an error so the pipeline can degrade to the fallback.
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("svg backend panic: %v", rec)
		}
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = width, height
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	if w == width && h == height {
		return canvas, nil
	}

	log.Debug().
		Int("nativeWidth", w).
		Int("nativeHeight", h).
		Int("targetWidth", width).
		Int("targetHeight", height).
		Msg("resampling rendered svg to target size")

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)

	return scaled, nil
}
