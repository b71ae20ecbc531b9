package field

import (
	"image"
	"image/color"
	"math"
)

// Diverging maps values to a blue-white-red image, scaled so the largest
// magnitude reaches full saturation. A zero scalar field renders white.
func Diverging(values []float64, rows, cols int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	scale := 0.0
	for _, v := range values {
		scale = math.Max(scale, math.Abs(v))
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := 0.0
			if scale > 0 {
				t = values[r*cols+c] / scale
			}
			img.SetRGBA(c, r, divergingColor(t))
		}
	}
	return img
}

// divergingColor maps t in [-1, 1] from blue through white to red.
func divergingColor(t float64) color.RGBA {
	t = math.Max(-1, math.Min(1, t))
	fade := uint8(math.Round(255 * (1 - math.Abs(t))))
	if t < 0 {
		return color.RGBA{fade, fade, 255, 255}
	}
	return color.RGBA{255, fade, fade, 255}
}
