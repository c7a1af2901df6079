// Package raster provides the Raster type consumed by the color segmenter
// and the glue for obtaining one from an already-decoded image.Image or
// from a file on disk. Rasterizing a PDF page into this form is an
// external collaborator's job; this package only ingests the result.
package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Raster is an immutable RGB8 image buffer in row-major order.
type Raster struct {
	Width  int
	Height int
	// Pix holds interleaved R,G,B bytes, len == Width*Height*3.
	Pix []byte
}

// FromImage converts a decoded image.Image into a Raster.
func FromImage(img image.Image) Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			pix[i+0] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
		}
	}

	return Raster{Width: w, Height: h, Pix: pix}
}

// Load decodes a raster image file (PNG, JPEG, GIF, or TIFF) from disk.
func Load(path string) (Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Raster{}, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Raster{}, fmt.Errorf("decode raster: %w", err)
	}

	return FromImage(img), nil
}

// ToMat converts the Raster into a BGR gocv.Mat, the layout OpenCV's
// color-conversion and contour routines expect. Callers own the returned
// Mat and must Close it.
func (r Raster) ToMat() gocv.Mat {
	mat := gocv.NewMatWithSize(r.Height, r.Width, gocv.MatTypeCV8UC3)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			i := (y*r.Width + x) * 3
			red, green, blue := r.Pix[i+0], r.Pix[i+1], r.Pix[i+2]
			mat.SetUCharAt(y, x*3+0, blue)
			mat.SetUCharAt(y, x*3+1, green)
			mat.SetUCharAt(y, x*3+2, red)
		}
	}
	return mat
}
