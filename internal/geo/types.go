// Package geo holds the geographic-space types produced by the
// georeferencing engine: tie points, the fitted affine transform, and the
// transformed annotation polygons and scale estimate derived from it.
package geo

import "github.com/y-nomura-cosmoroot/mapannotate/pkg/geometry"

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// InRange reports whether p falls within the WGS84 domain: latitude in
// [-90, 90], longitude in [-180, 180]. A transformed point outside this
// domain indicates a grossly miscalibrated tie point.
func (p Point) InRange() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// TiePoint links a pixel-space location on the raster to a known
// geographic coordinate.
type TiePoint struct {
	ID    string           `json:"id"`
	Pixel geometry.Point2D `json:"pixel"`
	Geo   Point            `json:"geo"`
}

// Affine2D is a 2D affine transform from pixel space to geographic space:
//
//	lon = A*x + B*y + C
//	lat = D*x + E*y + F
//
// Kept distinct from geometry's pixel-space primitives because mixing
// pixel-to-pixel and pixel-to-geographic transforms under one type invites
// sign-flip bugs between the two axis conventions.
type Affine2D struct {
	A, B, C float64
	D, E, F float64
}

// Apply maps a pixel-space point into geographic space.
func (t Affine2D) Apply(p geometry.Point2D) Point {
	return Point{
		Lon: t.A*p.X + t.B*p.Y + t.C,
		Lat: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Polygon is an annotation polygon after its corners and center have been
// transformed into geographic space.
type Polygon struct {
	ID      string
	Corners []Point
	Center  Point
}

// ScaleResult is the nominal map scale inferred from the tie points, as a
// representative fraction denominator: one unit of distance on the printed
// map corresponds to Denominator of the same unit on the ground.
type ScaleResult struct {
	Denominator float64
	// Warnings lists non-fatal conditions the caller should be aware of:
	// an excessive tie-point back-projection residual, a transformed
	// coordinate outside the WGS84 domain, or tie points clustered in too
	// small a fraction of the raster.
	Warnings []string
}
