package domain

import "math"

// TargetSize returns the output size for a source of w x h pixels: fixed
// TargetWidth, height scaled to keep the aspect ratio, never below one pixel.
func TargetSize(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return TargetWidth, 1
	}

	height := int(math.Round(float64(h) * TargetWidth / float64(w)))
	if height < 1 {
		height = 1
	}

	return TargetWidth, height
}
