// Package colorutil provides pure-Go color-space helpers. Nothing else in
// this module imports it; segmentation converts colors through gocv.
package colorutil

import "math"

// RGBToHSV converts RGB (0-255) to HSV using OpenCV's convention
// (H 0-180, S 0-255, V 0-255) rather than the usual H 0-360, so its output
// can be compared directly against the segment package's HSV thresholds
// without going through gocv.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}
