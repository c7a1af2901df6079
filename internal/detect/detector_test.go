package detect

import (
	"image"
	"image/color"
	"testing"

	imgpkg "image/draw"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/annotation"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/polygon"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/raster"
	"github.com/y-nomura-cosmoroot/mapannotate/pkg/geometry"
)

func defaultParams() Params {
	return Params{
		Polygon: polygon.Params{
			MinArea:      500,
			MinPerimeter: 50,
			EpsilonFrac:  0.01,
			MinVertices:  3,
			MaxVertices:  50,
			MinCompact:   0.01,
		},
		DedupIoU: 0.5,
	}
}

func solidRaster(w, h int, bg color.RGBA) raster.Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	imgpkg.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, imgpkg.Src)
	return raster.FromImage(img)
}

func drawRect(r raster.Raster, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := (y*r.Width + x) * 3
			r.Pix[i+0] = c.R
			r.Pix[i+1] = c.G
			r.Pix[i+2] = c.B
		}
	}
}

func TestDetectSingleFilledBox(t *testing.T) {
	r := solidRaster(300, 300, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// pale red, matches FilledAreaThresholds
	drawRect(r, 50, 50, 150, 150, color.RGBA{R: 240, G: 200, B: 200, A: 255})

	d := New(defaultParams())
	polys := d.Detect(r)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
}

func TestDetectEmptyImageYieldsNoPolygons(t *testing.T) {
	r := solidRaster(200, 200, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	d := New(defaultParams())
	polys := d.Detect(r)
	if len(polys) != 0 {
		t.Fatalf("got %d polygons, want 0 for a blank image", len(polys))
	}
}

func TestDetectDedupsOverlappingBranches(t *testing.T) {
	r := solidRaster(300, 300, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	// A saturated red border drawn as a ring around a pale red fill will
	// produce overlapping candidates from both branches; dedup should keep
	// only the larger one.
	drawRect(r, 40, 40, 160, 160, color.RGBA{R: 220, G: 20, B: 20, A: 255})
	drawRect(r, 55, 55, 145, 145, color.RGBA{R: 240, G: 200, B: 200, A: 255})

	d := New(defaultParams())
	polys := d.Detect(r)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1 survivor after deduping the nested thick-border and filled-area candidates", len(polys))
	}
	seen := make(map[string]bool)
	for _, p := range polys {
		if seen[p.ID] {
			t.Fatalf("duplicate polygon ID %q in result", p.ID)
		}
		seen[p.ID] = true
	}
}

// TestDedupMergesHighOverlapCandidates exercises the dedup function
// directly against two rectangles whose IoU is about 72%, above the
// default 0.5 threshold: both are 120x120, so the stable area sort keeps
// the first and the second must not survive alongside it.
func TestDedupMergesHighOverlapCandidates(t *testing.T) {
	a := annotation.Polygon{
		ID: "a",
		Corners: []geometry.Point2D{
			{X: 40, Y: 40}, {X: 160, Y: 40}, {X: 160, Y: 160}, {X: 40, Y: 160},
		},
	}
	b := annotation.Polygon{
		ID: "b",
		Corners: []geometry.Point2D{
			{X: 50, Y: 50}, {X: 170, Y: 50}, {X: 170, Y: 170}, {X: 50, Y: 170},
		},
	}

	iou := geometry.PolygonIoU(a.Corners, b.Corners)
	if iou < 0.65 || iou > 0.8 {
		t.Fatalf("test fixture IoU = %v, want ~0.72", iou)
	}

	kept := dedup([]annotation.Polygon{a, b}, 0.5)
	if len(kept) != 1 {
		t.Fatalf("got %d polygons, want 1 survivor above the dedup IoU threshold", len(kept))
	}
}
