package metric

import (
	"math"
)

// GradientSmoothness rates line smoothness from local gradient statistics:
// jagged strokes produce many abrupt intensity transitions, smooth strokes
// few. The score is 1 for a flat image and approaches 0 as the mean absolute
// gradient grows.
type GradientSmoothness struct{}

func NewGradientSmoothness() *GradientSmoothness {
	return &GradientSmoothness{}
}

func (g *GradientSmoothness) Score(path string) (float64, error) {
	img, err := loadGray(path)
	if err != nil {
		return 0, err
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w < 2 || h < 2 {
		return 1, nil
	}

	var total float64
	var count int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(img.Pix[y*img.Stride+x])
			if x+1 < w {
				total += math.Abs(float64(img.Pix[y*img.Stride+x+1]) - v)
				count++
			}
			if y+1 < h {
				total += math.Abs(float64(img.Pix[(y+1)*img.Stride+x]) - v)
				count++
			}
		}
	}

	meanGradient := total / float64(count)

	return math.Max(0, math.Min(1, 1-meanGradient/255)), nil
}
