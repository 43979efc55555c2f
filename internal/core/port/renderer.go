package port

import "image"

type VectorRenderer interface {
	// Render rasterizes SVG markup to the given target size in pixels.
	Render(svg []byte, width, height int) (image.Image, error)
}
