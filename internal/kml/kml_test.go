package kml

import (
	"strings"
	"testing"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
)

func TestWriteProducesValidStructure(t *testing.T) {
	polys := []geo.Polygon{
		{
			ID: "box-1",
			Corners: []geo.Point{
				{Lat: 1, Lon: 1}, {Lat: 1, Lon: 2}, {Lat: 2, Lon: 2}, {Lat: 2, Lon: 1},
			},
			Center: geo.Point{Lat: 1.5, Lon: 1.5},
		},
	}

	var buf strings.Builder
	if err := Write(&buf, polys); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<kml", "<Placemark>", "<name>box-1</name>", "<coordinates>", "1.000000,1.000000,0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSkipsDegeneratePolygons(t *testing.T) {
	polys := []geo.Polygon{
		{ID: "deg", Corners: []geo.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}},
	}

	var buf strings.Builder
	if err := Write(&buf, polys); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if strings.Contains(buf.String(), "<Placemark>") {
		t.Fatal("expected degenerate polygon to be skipped")
	}
}
