// Package polygon turns a binary mask into a set of simplified annotation
// polygons: find contours, approximate each to a small vertex count, and
// discard anything too small, too sliver-shaped, or too complex to be a
// hand-drawn map annotation.
package polygon

import (
	"fmt"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/annotation"
	"github.com/y-nomura-cosmoroot/mapannotate/pkg/geometry"
)

// Params bounds what counts as a plausible annotation polygon.
type Params struct {
	MinArea      float64
	MinPerimeter float64
	EpsilonFrac  float64
	MinVertices  int
	MaxVertices  int
	MinCompact   float64
}

// Extract finds contours in mask and returns the ones that survive the
// simplification and shape filters as annotation.Polygon values of the
// given kind. idPrefix labels the generated polygon IDs so callers can
// tell thick-border candidates from filled-area candidates at a glance;
// uniqueness comes from a UUID suffix, matching the opaque-ID convention
// detected boxes use upstream.
func Extract(mask gocv.Mat, kind annotation.Kind, p Params, idPrefix string) []annotation.Polygon {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var polys []annotation.Polygon
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		perimeter := gocv.ArcLength(contour, true)
		if perimeter < p.MinPerimeter {
			continue
		}

		epsilon := p.EpsilonFrac * perimeter
		approx := gocv.ApproxPolyDP(contour, epsilon, true)

		n := approx.Size()
		if n < p.MinVertices || n > p.MaxVertices {
			continue
		}

		corners := make([]geometry.Point2D, n)
		for j := 0; j < n; j++ {
			pt := approx.At(j)
			corners[j] = geometry.Point2D{X: float64(pt.X), Y: float64(pt.Y)}
		}

		area := geometry.ShoelaceArea(corners)
		if area < p.MinArea {
			continue
		}

		poly := annotation.Polygon{
			ID:           fmt.Sprintf("%s-%s", idPrefix, uuid.NewString()),
			Kind:         kind,
			Corners:      corners,
			Center:       geometry.Centroid(corners),
			RawPerimeter: perimeter,
		}
		if poly.Compactness() < p.MinCompact {
			continue
		}

		polys = append(polys, poly)
	}

	return polys
}
