package geometry

import "math"

// ShoelaceArea returns the unsigned area of a simple polygon via the
// shoelace formula.
func ShoelaceArea(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the closed-loop perimeter of a polygon (sum of
// consecutive segment lengths, including the closing edge back to the
// first vertex).
func Perimeter(polygon []Point2D) float64 {
	n := len(polygon)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += polygon[i].Distance(polygon[j])
	}
	return total
}

// IntersectPolygons computes the intersection of two convex polygons using
// the Sutherland-Hodgman algorithm. clip must be convex; subject may be
// any simple polygon. Returns nil if there is no intersection or if inputs
// are invalid.
func IntersectPolygons(subject, clip []Point2D) []Point2D {
	if len(subject) < 3 || len(clip) < 3 {
		return nil
	}

	output := make([]Point2D, len(subject))
	copy(output, subject)

	// Clip against each edge of the clip polygon
	for i := 0; i < len(clip); i++ {
		if len(output) == 0 {
			return nil
		}

		edgeStart := clip[i]
		edgeEnd := clip[(i+1)%len(clip)]
		output = clipPolygonByEdge(output, edgeStart, edgeEnd)
	}

	if len(output) < 3 {
		return nil
	}

	return output
}

// PolygonIoU returns the intersection-over-union of two polygons' areas.
// Either winding order is accepted: both polygons are brought to the
// counter-clockwise order the clipper expects before intersecting.
// A bounding-box prefilter short-circuits to 0 when the boxes don't
// overlap, avoiding the cost of exact clipping for the common
// far-apart-candidates case.
func PolygonIoU(a, b []Point2D) float64 {
	if len(a) < 3 || len(b) < 3 {
		return 0
	}
	ccw := func(poly []Point2D) []Point2D {
		var signed float64
		for i := range poly {
			j := (i + 1) % len(poly)
			signed += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		}
		if signed >= 0 {
			return poly
		}
		rev := make([]Point2D, len(poly))
		for i, p := range poly {
			rev[len(poly)-1-i] = p
		}
		return rev
	}
	a, b = ccw(a), ccw(b)
	if !BoundingBox(a).Intersects(BoundingBox(b)) {
		return 0
	}

	areaA := ShoelaceArea(a)
	areaB := ShoelaceArea(b)
	if areaA == 0 || areaB == 0 {
		return 0
	}

	inter := IntersectPolygons(a, b)
	if inter == nil {
		// clip (b) may be non-convex; fall back to treating a as the clip.
		inter = IntersectPolygons(b, a)
		if inter == nil {
			return 0
		}
	}
	areaI := ShoelaceArea(inter)
	union := areaA + areaB - areaI
	if union <= 0 {
		return 0
	}
	return areaI / union
}

// clipPolygonByEdge clips a polygon against a single edge using
// the Sutherland-Hodgman algorithm.
func clipPolygonByEdge(polygon []Point2D, edgeStart, edgeEnd Point2D) []Point2D {
	var clipped []Point2D

	for i := 0; i < len(polygon); i++ {
		current := polygon[i]
		next := polygon[(i+1)%len(polygon)]

		currentInside := isInsideEdge(current, edgeStart, edgeEnd)
		nextInside := isInsideEdge(next, edgeStart, edgeEnd)

		if currentInside {
			clipped = append(clipped, current)
			if !nextInside {
				// Exiting: add intersection point
				if intersection, ok := lineIntersection(current, next, edgeStart, edgeEnd); ok {
					clipped = append(clipped, intersection)
				}
			}
		} else if nextInside {
			// Entering: add intersection point
			if intersection, ok := lineIntersection(current, next, edgeStart, edgeEnd); ok {
				clipped = append(clipped, intersection)
			}
		}
	}

	return clipped
}

// isInsideEdge checks if a point is on the inside (left side) of the directed edge.
// The clip polygon is assumed to be in counter-clockwise order.
func isInsideEdge(p, edgeStart, edgeEnd Point2D) bool {
	return (edgeEnd.X-edgeStart.X)*(p.Y-edgeStart.Y)-
		(edgeEnd.Y-edgeStart.Y)*(p.X-edgeStart.X) >= 0
}

// lineIntersection computes the intersection point of line segment p1-p2
// with line segment e1-e2. Returns the point and true if they intersect.
func lineIntersection(p1, p2, e1, e2 Point2D) (Point2D, bool) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := e1.X, e1.Y
	x4, y4 := e2.X, e2.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-10 {
		// Lines are parallel
		return Point2D{}, false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom

	return Point2D{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}, true
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}
