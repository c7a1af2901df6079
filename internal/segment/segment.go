// Package segment isolates the red annotation pixels in a raster image,
// producing the binary masks the polygon extractor turns into candidate
// shapes. Red wraps around hue 0 in HSV space, so each mask is the union
// of two hue windows rather than a single InRange call.
package segment

import (
	"image"

	"gocv.io/x/gocv"
)

var kernelSize = image.Point{X: 3, Y: 3}

// HSVWindow is one bound of an HSV range: pixels with LowH<=H<=HighH (and
// likewise for S, V) pass.
type HSVWindow struct {
	LowH, HighH int
	LowS, HighS int
	LowV, HighV int
}

// Thresholds configures the two hue windows a red mask is the union of.
// Red straddles hue 0 in OpenCV's 0-180 hue space, so one window covers
// the low end and the other the high end.
type Thresholds struct {
	Window1 HSVWindow
	Window2 HSVWindow
}

// ThickBorderThresholds returns the HSV ranges matching a hand-drawn thick
// red outline: saturated, mid-to-bright red.
func ThickBorderThresholds() Thresholds {
	return Thresholds{
		Window1: HSVWindow{LowH: 0, HighH: 10, LowS: 120, HighS: 255, LowV: 120, HighV: 255},
		Window2: HSVWindow{LowH: 170, HighH: 180, LowS: 120, HighS: 255, LowV: 120, HighV: 255},
	}
}

// FilledAreaThresholds returns the HSV ranges matching a pale red filled
// region: lower saturation, higher value than the thick border style.
func FilledAreaThresholds() Thresholds {
	return Thresholds{
		Window1: HSVWindow{LowH: 0, HighH: 10, LowS: 30, HighS: 120, LowV: 180, HighV: 255},
		Window2: HSVWindow{LowH: 170, HighH: 180, LowS: 30, HighS: 120, LowV: 180, HighV: 255},
	}
}

// Mask builds the binary mask for the given thresholds: pixels in either
// hue window are white (255), everything else black. Callers own the
// returned Mat and must Close it.
func Mask(img gocv.Mat, t Thresholds) gocv.Mat {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	mask1 := gocv.NewMat()
	defer mask1.Close()
	gocv.InRangeWithScalar(hsv, windowLow(t.Window1), windowHigh(t.Window1), &mask1)

	mask2 := gocv.NewMat()
	defer mask2.Close()
	gocv.InRangeWithScalar(hsv, windowLow(t.Window2), windowHigh(t.Window2), &mask2)

	mask := gocv.NewMat()
	gocv.BitwiseOr(mask1, mask2, &mask)
	return mask
}

func windowLow(w HSVWindow) gocv.Scalar {
	return gocv.NewScalar(float64(w.LowH), float64(w.LowS), float64(w.LowV), 0)
}

func windowHigh(w HSVWindow) gocv.Scalar {
	return gocv.NewScalar(float64(w.HighH), float64(w.HighS), float64(w.HighV), 0)
}

// CleanupThick removes speckle noise and closes small gaps along a thick
// border mask: a CLOSE pass bridges stroke gaps, then an OPEN pass strips
// single-pixel noise, then a DILATE pass thickens the stroke back toward
// its drawn width so FindContours sees a continuous ring.
func CleanupThick(mask gocv.Mat) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, kernelSize)
	defer kernel.Close()

	cleaned := gocv.NewMat()
	gocv.MorphologyEx(mask, &cleaned, gocv.MorphClose, kernel)
	gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphOpen, kernel)
	gocv.Dilate(cleaned, &cleaned, kernel)

	return cleaned
}

// CleanupFilled removes speckle noise from a filled-area mask without the
// extra dilation a thin-stroke border needs.
func CleanupFilled(mask gocv.Mat) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, kernelSize)
	defer kernel.Close()

	cleaned := gocv.NewMat()
	gocv.MorphologyEx(mask, &cleaned, gocv.MorphClose, kernel)
	gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphOpen, kernel)

	return cleaned
}
