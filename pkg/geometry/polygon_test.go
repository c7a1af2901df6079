package geometry

import (
	"math"
	"testing"
)

func square(x, y, side float64) []Point2D {
	return []Point2D{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

func TestShoelaceArea(t *testing.T) {
	area := ShoelaceArea(square(0, 0, 10))
	if math.Abs(area-100) > 1e-9 {
		t.Fatalf("area = %v, want 100", area)
	}
}

func TestPerimeter(t *testing.T) {
	p := Perimeter(square(0, 0, 10))
	if math.Abs(p-40) > 1e-9 {
		t.Fatalf("perimeter = %v, want 40", p)
	}
}

func TestPolygonIoUIdentical(t *testing.T) {
	a := square(0, 0, 10)
	iou := PolygonIoU(a, a)
	if math.Abs(iou-1) > 1e-9 {
		t.Fatalf("IoU(a,a) = %v, want 1", iou)
	}
}

func TestPolygonIoUNoOverlap(t *testing.T) {
	a := square(0, 0, 10)
	b := square(100, 100, 10)
	if iou := PolygonIoU(a, b); iou != 0 {
		t.Fatalf("IoU = %v, want 0", iou)
	}
}

func TestPolygonIoUPartialOverlap(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10) // overlap is a 5x10 strip, area 50
	// union = 100 + 100 - 50 = 150, iou = 50/150 = 1/3
	iou := PolygonIoU(a, b)
	if math.Abs(iou-1.0/3.0) > 1e-9 {
		t.Fatalf("IoU = %v, want 1/3", iou)
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := square(0, 0, 10)
	if !PointInPolygon(Point2D{X: 5, Y: 5}, poly) {
		t.Fatal("expected center to be inside square")
	}
	if PointInPolygon(Point2D{X: 50, Y: 50}, poly) {
		t.Fatal("expected far point to be outside square")
	}
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	poly := square(2, 3, 4)
	box := BoundingBox(poly)
	if box.X != 2 || box.Y != 3 || box.Width != 4 || box.Height != 4 {
		t.Fatalf("unexpected bounding box: %+v", box)
	}
	c := Centroid(poly)
	if math.Abs(c.X-4) > 1e-9 || math.Abs(c.Y-5) > 1e-9 {
		t.Fatalf("unexpected centroid: %+v", c)
	}
}
