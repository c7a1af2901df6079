package raster

import (
	"image"
	"image/color"
	"testing"
)

// fillRect draws a solid color into img within [x0,y0)-[x1,y1).
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestFromImageDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	fillRect(img, 0, 0, 20, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	r := FromImage(img)
	if r.Width != 20 || r.Height != 10 {
		t.Fatalf("got %dx%d, want 20x10", r.Width, r.Height)
	}
	if len(r.Pix) != 20*10*3 {
		t.Fatalf("len(Pix) = %d, want %d", len(r.Pix), 20*10*3)
	}
}

func TestFromImagePixelValues(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fillRect(img, 0, 0, 2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	r := FromImage(img)
	for px := 0; px < 4; px++ {
		i := px * 3
		if r.Pix[i] != 10 || r.Pix[i+1] != 20 || r.Pix[i+2] != 30 {
			t.Fatalf("pixel %d = (%d,%d,%d), want (10,20,30)", px, r.Pix[i], r.Pix[i+1], r.Pix[i+2])
		}
	}
}

func TestToMatSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 3))
	fillRect(img, 0, 0, 5, 3, color.RGBA{R: 200, G: 0, B: 0, A: 255})

	r := FromImage(img)
	mat := r.ToMat()
	defer mat.Close()

	if mat.Rows() != 3 || mat.Cols() != 5 {
		t.Fatalf("mat size = %dx%d, want 3x5", mat.Rows(), mat.Cols())
	}
}
