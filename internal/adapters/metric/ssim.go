package metric

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	_ "image/png"
)

// Stabilization constants from the standard SSIM definition, for an 8-bit
// dynamic range.
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// SSIM scores structural similarity between two canonical images on their
// grayscale luminance, as a single global window.
type SSIM struct{}

func NewSSIM() *SSIM {
	return &SSIM{}
}

func (s *SSIM) Score(originalPath, reproducedPath string) (float64, error) {
	original, err := loadGray(originalPath)
	if err != nil {
		return 0, err
	}

	reproduced, err := loadGray(reproducedPath)
	if err != nil {
		return 0, err
	}

	if original.Bounds().Size() != reproduced.Bounds().Size() {
		return 0, fmt.Errorf("image dimensions differ: %v vs %v",
			original.Bounds().Size(), reproduced.Bounds().Size())
	}

	meanA := mean(original.Pix)
	meanB := mean(reproduced.Pix)

	var varA, varB, cov float64
	for i := range original.Pix {
		da := float64(original.Pix[i]) - meanA
		db := float64(reproduced.Pix[i]) - meanB
		varA += da * da
		varB += db * db
		cov += da * db
	}

	n := float64(len(original.Pix))
	varA /= n
	varB /= n
	cov /= n

	score := ((2*meanA*meanB + ssimC1) * (2*cov + ssimC2)) /
		((meanA*meanA + meanB*meanB + ssimC1) * (varA + varB + ssimC2))

	// SSIM can dip below zero for anticorrelated content; the reported
	// scale is [0, 1].
	return math.Max(0, math.Min(1, score)), nil
}

func mean(pix []uint8) float64 {
	var sum float64
	for _, p := range pix {
		sum += float64(p)
	}

	return sum / float64(len(pix))
}

func loadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	if gray, ok := img.(*image.Gray); ok {
		return gray, nil
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)

	return gray, nil
}
