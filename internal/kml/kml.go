// Package kml serializes georeferenced annotation polygons to KML 2.2.
// No pure-Go KML library appears anywhere in the surrounding dependency
// stack, so this writer goes straight to encoding/xml against the handful
// of elements the output actually needs.
package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
)

type kmlRoot struct {
	XMLName xml.Name `xml:"kml"`
	Xmlns   string   `xml:"xmlns,attr"`
	Doc     kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name    string     `xml:"name"`
	Polygon kmlPolygon `xml:"Polygon"`
}

type kmlPolygon struct {
	OuterBoundaryIs kmlBoundary `xml:"outerBoundaryIs"`
}

type kmlBoundary struct {
	LinearRing kmlRing `xml:"LinearRing"`
}

type kmlRing struct {
	Coordinates string `xml:"coordinates"`
}

// Write serializes polygons as a KML Document with one Placemark per
// polygon, and writes the result to w.
func Write(w io.Writer, polygons []geo.Polygon) error {
	doc := kmlRoot{
		Xmlns: "http://www.opengis.net/kml/2.2",
		Doc:   kmlDocument{Placemarks: make([]kmlPlacemark, 0, len(polygons))},
	}

	for _, p := range polygons {
		if len(p.Corners) < 3 {
			continue
		}
		doc.Doc.Placemarks = append(doc.Doc.Placemarks, kmlPlacemark{
			Name: p.ID,
			Polygon: kmlPolygon{
				OuterBoundaryIs: kmlBoundary{
					LinearRing: kmlRing{Coordinates: ringCoordinates(p.Corners)},
				},
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write kml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode kml: %w", err)
	}
	return nil
}

// ringCoordinates renders a polygon's corners as a closed KML coordinate
// string (lon,lat,0 triples, space-separated, with the first point
// repeated at the end to close the ring).
func ringCoordinates(corners []geo.Point) string {
	var b strings.Builder
	for _, c := range corners {
		fmt.Fprintf(&b, "%f,%f,0 ", c.Lon, c.Lat)
	}
	first := corners[0]
	fmt.Fprintf(&b, "%f,%f,0", first.Lon, first.Lat)
	return b.String()
}
