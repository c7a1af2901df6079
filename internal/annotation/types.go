// Package annotation holds the shared detection types produced by the
// segmentation/extraction stages and consumed by the detector and
// georeferencer.
package annotation

import (
	"math"

	"github.com/y-nomura-cosmoroot/mapannotate/pkg/geometry"
)

// Kind identifies which red-annotation style a polygon was detected from.
type Kind int

const (
	// ThickBorder is a hand-drawn thick red outline.
	ThickBorder Kind = iota
	// FilledArea is a pale red filled region.
	FilledArea
)

func (k Kind) String() string {
	switch k {
	case ThickBorder:
		return "thick_border"
	case FilledArea:
		return "filled_area"
	default:
		return "unknown"
	}
}

// Polygon is a detected annotation in pixel space.
type Polygon struct {
	ID      string
	Kind    Kind
	Corners []geometry.Point2D
	Center  geometry.Point2D
	// RawPerimeter is the contour's arc length before Douglas-Peucker
	// simplification, as set by the extraction stage. Compactness uses it
	// when present so that κ=4πA/P² is computed against the same P the
	// Pmin and epsilon_frac filters already used, rather than one that
	// shifts after simplification smooths out waviness. Zero means the
	// caller built the polygon directly and Perimeter() is used instead.
	RawPerimeter float64
}

// Area returns the shoelace area of the polygon's corners.
func (p Polygon) Area() float64 {
	return geometry.ShoelaceArea(p.Corners)
}

// Perimeter returns the closed-loop perimeter of the polygon's corners.
func (p Polygon) Perimeter() float64 {
	return geometry.Perimeter(p.Corners)
}

// Compactness returns the isoperimetric ratio 4*pi*A/P^2, which is 1 for a
// circle and shrinks toward 0 for elongated shapes. Returns 0 for a
// degenerate (zero-perimeter) polygon.
func (p Polygon) Compactness() float64 {
	perim := p.RawPerimeter
	if perim == 0 {
		perim = p.Perimeter()
	}
	if perim == 0 {
		return 0
	}
	return 4 * math.Pi * p.Area() / (perim * perim)
}
