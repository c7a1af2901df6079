package georef

import (
	"github.com/y-nomura-cosmoroot/mapannotate/internal/annotation"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
)

// Apply transforms a detected pixel-space polygon into geographic space
// using a fitted affine transform, carrying its ID forward.
func Apply(transform geo.Affine2D, poly annotation.Polygon) (geo.Polygon, error) {
	if len(poly.Corners) < 3 {
		return geo.Polygon{}, newError(geo.KindInvalidPolygon,
			"polygon %s has %d corners, need at least 3", poly.ID, len(poly.Corners))
	}

	corners := make([]geo.Point, len(poly.Corners))
	for i, c := range poly.Corners {
		corners[i] = transform.Apply(c)
	}

	return geo.Polygon{
		ID:      poly.ID,
		Corners: corners,
		Center:  transform.Apply(poly.Center),
	}, nil
}

// ApplyAll transforms a batch of polygons, skipping (and not failing on)
// any individual polygon that's degenerate. It also reports, as a single
// aggregate warning, whether any transformed corner or center fell
// outside the WGS84 domain (spec.md §4.4.4 #2) — a sign the fitted
// transform or the tie points behind it are miscalibrated.
func ApplyAll(transform geo.Affine2D, polys []annotation.Polygon) ([]geo.Polygon, []string) {
	out := make([]geo.Polygon, 0, len(polys))
	outOfRange := false
	for _, p := range polys {
		transformed, err := Apply(transform, p)
		if err != nil {
			continue
		}
		if !transformed.Center.InRange() {
			outOfRange = true
		}
		for _, c := range transformed.Corners {
			if !c.InRange() {
				outOfRange = true
			}
		}
		out = append(out, transformed)
	}

	var warnings []string
	if outOfRange {
		warnings = append(warnings,
			"a transformed polygon corner or center falls outside the WGS84 latitude/longitude range; check the tie points and fitted transform")
	}
	return out, warnings
}
